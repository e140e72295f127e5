package dashboard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboard(t *testing.T) (http.Handler, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	apiSrv := httptest.NewServer(api.handler())
	t.Cleanup(apiSrv.Close)

	client := NewClient(apiSrv.URL, time.Minute)
	return NewServer(client, zap.NewNop()), api
}

func TestIndex_RendersPipeline(t *testing.T) {
	handler, _ := newDashboard(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lease Lightning")
	assert.Contains(t, body, "Anya Sharma")
	// 1001 is Decision Ready, so the approval gate shows up
	assert.Contains(t, body, "Final Approve")
}

func TestAddApplicant_RedirectsHome(t *testing.T) {
	handler, api := newDashboard(t)

	form := url.Values{"name": {"Frank Moore"}, "unit": {"610A"}}
	req := httptest.NewRequest(http.MethodPost, "/applicants", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "msg=")
	assert.Equal(t, "/api/applicants", api.lastPath)
	assert.Equal(t, http.MethodPost, api.lastVerb)
}

func TestApproveAction_CallsAPI(t *testing.T) {
	handler, api := newDashboard(t)

	req := httptest.NewRequest(http.MethodPost, "/applicants/1001/approve", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/applicants/1001", api.lastPath)
	assert.Equal(t, http.MethodPatch, api.lastVerb)
}

func TestRunDecisionAction_CallsAPI(t *testing.T) {
	handler, api := newDashboard(t)

	req := httptest.NewRequest(http.MethodPost, "/applicants/1002/run-decision", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/applicants/1002/run-decision", api.lastPath)
}
