package dashboard

import (
	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// Summary holds the status counts shown at the top of the pipeline view.
type Summary struct {
	Total          int
	DecisionReady  int
	InVerification int
	LeaseGenerated int
	Denied         int
}

// Summarize derives the dashboard counters from a fetched list.
func Summarize(list []*domain.Applicant) Summary {
	var s Summary
	s.Total = len(list)
	for _, a := range list {
		switch a.Status {
		case domain.StatusDecisionReady:
			s.DecisionReady++
		case domain.StatusVerification:
			s.InVerification++
		case domain.StatusDocument:
			s.LeaseGenerated++
		case domain.StatusDenied, domain.StatusDeniedOverridden:
			s.Denied++
		}
	}
	return s
}

// ApprovalCandidate returns the first applicant waiting at the human
// approval gate, or nil when nothing is Decision Ready.
func ApprovalCandidate(list []*domain.Applicant) *domain.Applicant {
	for _, a := range list {
		if a.Status == domain.StatusDecisionReady {
			return a
		}
	}
	return nil
}

// StatusOptions lists the selectable pipeline stages, in order.
func StatusOptions() []domain.Status {
	return []domain.Status{
		domain.StatusSubmitted,
		domain.StatusVerification,
		domain.StatusDecisionReady,
		domain.StatusDocument,
		domain.StatusApproved,
		domain.StatusDenied,
		domain.StatusDeniedOverridden,
	}
}

// RiskOptions lists the selectable risk scores.
func RiskOptions() []domain.Risk {
	return []domain.Risk{
		domain.RiskPending,
		domain.RiskLow,
		domain.RiskMedium,
		domain.RiskHigh,
	}
}
