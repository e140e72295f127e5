package applicants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// stubRepo is an in-memory Repository for service tests.
type stubRepo struct {
	records map[int]*domain.Applicant
	nextID  int

	updates []domain.Patch
}

func newStubRepo(records ...*domain.Applicant) *stubRepo {
	r := &stubRepo{records: make(map[int]*domain.Applicant), nextID: 1001}
	for _, a := range records {
		r.records[a.ID] = a
	}
	return r
}

func (r *stubRepo) List(ctx context.Context) ([]*domain.Applicant, error) {
	out := make([]*domain.Applicant, 0, len(r.records))
	for _, a := range r.records {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubRepo) Get(ctx context.Context, id int) (*domain.Applicant, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubRepo) Create(ctx context.Context, a *domain.Applicant) (*domain.Applicant, error) {
	cp := *a
	cp.ID = r.nextID
	r.nextID++
	r.records[cp.ID] = &cp
	return &cp, nil
}

func (r *stubRepo) Update(ctx context.Context, id int, p domain.Patch) (*domain.Applicant, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.updates = append(r.updates, p)
	p.Apply(a)
	cp := *a
	return &cp, nil
}

func (r *stubRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

// stubEngine returns a canned decision and records whether it ran.
type stubEngine struct {
	decision domain.Decision
	err      error
	ran      bool
}

func (e *stubEngine) Evaluate(ctx context.Context, a *domain.Applicant) (domain.Decision, error) {
	e.ran = true
	return e.decision, e.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(repo *stubRepo, engine *stubEngine) *Service {
	return &Service{
		Repo:   repo,
		Engine: engine,
		Clock:  fixedClock{t: time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)},
		Log:    zap.NewNop(),
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &stubEngine{})

	created, err := svc.Create(context.Background(), CreateApplicantCommand{Name: "Anya Sharma", Unit: "402B"})
	require.NoError(t, err)

	assert.Equal(t, 1001, created.ID)
	assert.Equal(t, "2025-11-20", created.Date)
	assert.Equal(t, domain.StatusSubmitted, created.Status)
	assert.Equal(t, domain.RiskPending, created.Risk)
	assert.Equal(t, "N/A", created.IncomeMatch)
	assert.Equal(t, "N/A", created.ErrorRate)
}

func TestUpdate_ConvertsCommandToPatch(t *testing.T) {
	existing := &domain.Applicant{ID: 1001, Name: "Anya Sharma", Status: domain.StatusSubmitted, Risk: domain.RiskPending}
	repo := newStubRepo(existing)
	svc := newTestService(repo, &stubEngine{})

	status := string(domain.StatusDenied)
	updated, err := svc.Update(context.Background(), 1001, UpdateApplicantCommand{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDenied, updated.Status)
	assert.Equal(t, domain.RiskPending, updated.Risk)
	assert.Equal(t, "Anya Sharma", updated.Name)

	require.Len(t, repo.updates, 1)
	assert.Nil(t, repo.updates[0].Risk)
	assert.Nil(t, repo.updates[0].Name)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := newTestService(newStubRepo(), &stubEngine{})

	name := "Nobody"
	_, err := svc.Update(context.Background(), 42, UpdateApplicantCommand{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunDecision_WritesStatusAndRiskBack(t *testing.T) {
	existing := &domain.Applicant{ID: 1002, Name: "Ben Carter", Status: domain.StatusVerification, Risk: domain.RiskPending}
	repo := newStubRepo(existing)
	engine := &stubEngine{decision: domain.Decision{Status: domain.StatusDecisionReady, Risk: domain.RiskLow}}
	svc := newTestService(repo, engine)

	require.NoError(t, svc.RunDecision(context.Background(), 1002))

	got, err := repo.Get(context.Background(), 1002)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDecisionReady, got.Status)
	assert.Equal(t, domain.RiskLow, got.Risk)

	// the write-back is a partial update touching only status and risk
	require.Len(t, repo.updates, 1)
	assert.Nil(t, repo.updates[0].Name)
	assert.Nil(t, repo.updates[0].IncomeMatch)
}

func TestRunDecision_MissingApplicantIsNoOp(t *testing.T) {
	engine := &stubEngine{decision: domain.Decision{Status: domain.StatusDecisionReady, Risk: domain.RiskLow}}
	svc := newTestService(newStubRepo(), engine)

	require.NoError(t, svc.RunDecision(context.Background(), 9999))
	assert.False(t, engine.ran)
}

type engineFunc func(ctx context.Context, a *domain.Applicant) (domain.Decision, error)

func (f engineFunc) Evaluate(ctx context.Context, a *domain.Applicant) (domain.Decision, error) {
	return f(ctx, a)
}

func TestRunDecision_DeletedMidRunIsNoOp(t *testing.T) {
	existing := &domain.Applicant{ID: 1001, Status: domain.StatusVerification}
	repo := newStubRepo(existing)

	svc := newTestService(repo, &stubEngine{})
	svc.Engine = engineFunc(func(ctx context.Context, a *domain.Applicant) (domain.Decision, error) {
		// applicant disappears while the engine is busy
		require.NoError(t, repo.Delete(ctx, 1001))
		return domain.Decision{Status: domain.StatusDecisionReady, Risk: domain.RiskMedium}, nil
	})

	require.NoError(t, svc.RunDecision(context.Background(), 1001))
	_, err := repo.Get(context.Background(), 1001)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunDecision_EngineErrorPropagates(t *testing.T) {
	existing := &domain.Applicant{ID: 1001, Status: domain.StatusVerification}
	repo := newStubRepo(existing)
	engine := &stubEngine{err: errors.New("engine offline")}
	svc := newTestService(repo, engine)

	err := svc.RunDecision(context.Background(), 1001)
	assert.EqualError(t, err, "engine offline")
	assert.Empty(t, repo.updates)
}
