package applicants

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/leaselightning/lease-lightning/internal/application"
	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// Service implements the use-cases over applicant records.
// Safe for concurrent use; all state lives behind the Repository.
type Service struct {
	Repo   domain.Repository
	Engine domain.DecisionEngine
	Clock  application.Clock
	Log    *zap.Logger
}

//
// ==== USE CASES ====
//

// CreateApplicantCommand carries the fields a caller may supply at create time.
type CreateApplicantCommand struct {
	Name string
	Unit string
}

// UpdateApplicantCommand carries a partial update; nil fields are left untouched.
type UpdateApplicantCommand struct {
	Name        *string
	Unit        *string
	Status      *string
	Risk        *string
	IncomeMatch *string
	ErrorRate   *string
}

func (c UpdateApplicantCommand) patch() domain.Patch {
	p := domain.Patch{
		Name:        c.Name,
		Unit:        c.Unit,
		IncomeMatch: c.IncomeMatch,
		ErrorRate:   c.ErrorRate,
	}
	if c.Status != nil {
		s := domain.Status(*c.Status)
		p.Status = &s
	}
	if c.Risk != nil {
		r := domain.Risk(*c.Risk)
		p.Risk = &r
	}
	return p
}

// List returns the full collection.
func (s *Service) List(ctx context.Context) ([]*domain.Applicant, error) {
	return s.Repo.List(ctx)
}

// Get returns one applicant by id.
func (s *Service) Get(ctx context.Context, id int) (*domain.Applicant, error) {
	return s.Repo.Get(ctx, id)
}

// Create builds a new record with pipeline defaults and persists it.
// The repository assigns the id.
func (s *Service) Create(ctx context.Context, cmd CreateApplicantCommand) (*domain.Applicant, error) {
	a := &domain.Applicant{
		Name:        cmd.Name,
		Unit:        cmd.Unit,
		Date:        s.Clock.Now().Format(domain.DateLayout),
		Status:      domain.StatusSubmitted,
		Risk:        domain.RiskPending,
		IncomeMatch: "N/A",
		ErrorRate:   "N/A",
	}
	return s.Repo.Create(ctx, a)
}

// Update merges the supplied fields into the matching record.
func (s *Service) Update(ctx context.Context, id int, cmd UpdateApplicantCommand) (*domain.Applicant, error) {
	return s.Repo.Update(ctx, id, cmd.patch())
}

// Delete removes the matching record.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// RunDecisionUntilDone runs the decision agent with context.Background()
// so it survives the triggering request. Meant to be called from a
// goroutine in the router.
func (s *Service) RunDecisionUntilDone(id int) error {
	return s.RunDecision(context.Background(), id)
}

// RunDecision evaluates the applicant and writes status/risk back.
// When the applicant no longer exists the run exits without effect.
func (s *Service) RunDecision(ctx context.Context, id int) error {
	a, err := s.Repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		// removed before the run started
		return nil
	}
	if err != nil {
		return err
	}

	dec, err := s.Engine.Evaluate(ctx, a)
	if err != nil {
		return err
	}

	if s.Log != nil {
		s.Log.Info("decision computed",
			zap.Int("applicant_id", id),
			zap.String("risk", string(dec.Risk)),
			zap.String("note", dec.Note),
		)
	}

	_, err = s.Repo.Update(ctx, id, domain.Patch{Status: &dec.Status, Risk: &dec.Risk})
	if errors.Is(err, domain.ErrNotFound) {
		// deleted while the engine was running
		return nil
	}
	return err
}
