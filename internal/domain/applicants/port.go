package applicants

import "context"

// Repository port (interface for persistence)
type Repository interface {
	List(ctx context.Context) ([]*Applicant, error)
	Get(ctx context.Context, id int) (*Applicant, error)
	Create(ctx context.Context, a *Applicant) (*Applicant, error)
	Update(ctx context.Context, id int, p Patch) (*Applicant, error)
	Delete(ctx context.Context, id int) error
}

// DecisionEngine port (interface for the decision agent)
type DecisionEngine interface {
	Evaluate(ctx context.Context, a *Applicant) (Decision, error)
}
