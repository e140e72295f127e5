package applicants

// Status enum, mirrors the pipeline stages shown on the dashboard
type Status string

const (
	StatusSubmitted        Status = "Submitted/Manual"
	StatusVerification     Status = "Verification Agent"
	StatusDecisionReady    Status = "Decision Ready"
	StatusDocument         Status = "Document Agent"
	StatusApproved         Status = "Approved/Leased"
	StatusDenied           Status = "Denied"
	StatusDeniedOverridden Status = "Denied/Overridden"
)

// Risk enum
type Risk string

const (
	RiskPending Risk = "Pending"
	RiskLow     Risk = "Low"
	RiskMedium  Risk = "Medium"
	RiskHigh    Risk = "High"
)

// DateLayout is the on-disk format for Applicant.Date
const DateLayout = "2006-01-02"

// Aggregate Root: Applicant
type Applicant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Date        string `json:"date"`
	Status      Status `json:"status"`
	Risk        Risk   `json:"risk"`
	IncomeMatch string `json:"income_match"`
	ErrorRate   string `json:"error_rate"`
}

// Patch carries a partial update; only non-nil fields overwrite.
type Patch struct {
	Name        *string
	Unit        *string
	Status      *Status
	Risk        *Risk
	IncomeMatch *string
	ErrorRate   *string
}

// Apply merges the supplied fields into a.
func (p Patch) Apply(a *Applicant) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Unit != nil {
		a.Unit = *p.Unit
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Risk != nil {
		a.Risk = *p.Risk
	}
	if p.IncomeMatch != nil {
		a.IncomeMatch = *p.IncomeMatch
	}
	if p.ErrorRate != nil {
		a.ErrorRate = *p.ErrorRate
	}
}
