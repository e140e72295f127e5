package dashboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// Server renders the dashboard and proxies form actions to the API.
type Server struct {
	client *Client
	log    *zap.Logger
}

func NewServer(client *Client, log *zap.Logger) http.Handler {
	s := &Server{client: client, log: log}
	mux := chi.NewRouter()

	mux.Get("/", s.handleIndex)
	mux.Post("/applicants", s.action(s.actionAdd))
	mux.Route("/applicants/{id}", func(rt chi.Router) {
		rt.Post("/update", s.action(s.actionUpdate))
		rt.Post("/delete", s.action(s.actionDelete))
		rt.Post("/approve", s.action(s.actionApprove))
		rt.Post("/deny", s.action(s.actionOverrideDeny))
		rt.Post("/run-decision", s.action(s.actionRunDecision))
	})

	return mux
}

type viewData struct {
	Summary       Summary
	Applicants    []*domain.Applicant
	Candidate     *domain.Applicant
	StatusOptions []domain.Status
	RiskOptions   []domain.Risk
	APIHealthy    bool
	Message       string
	Error         string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var (
		list    []*domain.Applicant
		healthy = true
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		list, err = s.client.Applicants(ctx)
		return err
	})
	g.Go(func() error {
		if err := s.client.Health(ctx); err != nil {
			healthy = false
		}
		return nil
	})

	data := viewData{
		StatusOptions: StatusOptions(),
		RiskOptions:   RiskOptions(),
		Message:       r.URL.Query().Get("msg"),
		Error:         r.URL.Query().Get("err"),
	}
	if err := g.Wait(); err != nil {
		s.log.Error("fetching applicants", zap.Error(err))
		data.Error = "cannot reach the applicant API: " + err.Error()
	}

	data.Applicants = list
	data.Summary = Summarize(list)
	data.Candidate = ApprovalCandidate(list)
	data.APIHealthy = healthy

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log.Error("rendering dashboard", zap.Error(err))
	}
}

type actionFunc func(ctx context.Context, r *http.Request) (string, error)

// action wraps a form handler: run it, drop the cache, redirect home
// with a flash message. Every action is followed by a full refresh.
func (s *Server) action(fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			s.redirect(w, r, "", "invalid form submission")
			return
		}

		msg, err := fn(r.Context(), r)
		s.client.Invalidate()
		if err != nil {
			s.log.Warn("dashboard action failed", zap.String("path", r.URL.Path), zap.Error(err))
			s.redirect(w, r, "", err.Error())
			return
		}
		s.redirect(w, r, msg, "")
	}
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, msg, errMsg string) {
	q := url.Values{}
	if msg != "" {
		q.Set("msg", msg)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}
	target := "/"
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func formID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func (s *Server) actionAdd(ctx context.Context, r *http.Request) (string, error) {
	name := r.FormValue("name")
	unit := r.FormValue("unit")
	if err := s.client.Create(ctx, name, unit); err != nil {
		return "", err
	}
	return "applicant added", nil
}

func (s *Server) actionUpdate(ctx context.Context, r *http.Request) (string, error) {
	id, err := formID(r)
	if err != nil {
		return "", err
	}
	payload := UpdatePayload{}
	if v := r.FormValue("status"); v != "" {
		payload.Status = &v
	}
	if v := r.FormValue("risk"); v != "" {
		payload.Risk = &v
	}
	if err := s.client.Update(ctx, id, payload); err != nil {
		return "", err
	}
	return "applicant updated", nil
}

func (s *Server) actionDelete(ctx context.Context, r *http.Request) (string, error) {
	id, err := formID(r)
	if err != nil {
		return "", err
	}
	if err := s.client.Delete(ctx, id); err != nil {
		return "", err
	}
	return "applicant deleted", nil
}

func (s *Server) actionApprove(ctx context.Context, r *http.Request) (string, error) {
	id, err := formID(r)
	if err != nil {
		return "", err
	}
	if err := s.client.Approve(ctx, id); err != nil {
		return "", err
	}
	return "lease approved and sent", nil
}

func (s *Server) actionOverrideDeny(ctx context.Context, r *http.Request) (string, error) {
	id, err := formID(r)
	if err != nil {
		return "", err
	}
	if err := s.client.OverrideDeny(ctx, id); err != nil {
		return "", err
	}
	return "decision overridden: denied", nil
}

func (s *Server) actionRunDecision(ctx context.Context, r *http.Request) (string, error) {
	id, err := formID(r)
	if err != nil {
		return "", err
	}
	if err := s.client.RunDecision(ctx, id); err != nil {
		return "", err
	}
	return "decision agent queued", nil
}
