package applicants

// Seed returns the fixed sample records used to initialize an empty
// data file. Callers get fresh copies on every call.
func Seed() []*Applicant {
	return []*Applicant{
		{ID: 1001, Name: "Anya Sharma", Unit: "402B", Date: "2025-11-19", Status: StatusDecisionReady, Risk: RiskLow, IncomeMatch: "110%", ErrorRate: "0%"},
		{ID: 1002, Name: "Ben Carter", Unit: "105A", Date: "2025-11-18", Status: StatusVerification, Risk: RiskPending, IncomeMatch: "Pending", ErrorRate: "N/A"},
		{ID: 1003, Name: "Chloe Davis", Unit: "512C", Date: "2025-11-17", Status: StatusDecisionReady, Risk: RiskMedium, IncomeMatch: "85%", ErrorRate: "0%"},
		{ID: 1004, Name: "David Lee", Unit: "201B", Date: "2025-11-15", Status: StatusDocument, Risk: RiskLow, IncomeMatch: "125%", ErrorRate: "0%"},
		{ID: 1005, Name: "Eva Rodriguez", Unit: "308D", Date: "2025-11-14", Status: StatusDenied, Risk: RiskHigh, IncomeMatch: "60%", ErrorRate: "N/A"},
	}
}
