package applicants

// Decision is the outcome of a decision-engine run
type Decision struct {
	Status Status
	Risk   Risk
	Note   string
}
