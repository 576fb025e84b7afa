package types

// Report row types returned by the backend's analytical queries. These are
// read-only projections; none of them is persisted.

// ApplicantRank is one row of the experience ranking report. Rank follows
// SQL RANK() semantics: ties share a rank and the next rank is skipped.
type ApplicantRank struct {
	ApplicantID     string `json:"applicant_id"`
	FullName        string `json:"full_name"`
	YearsExperience int    `json:"years_experience"`
	Rank            int    `json:"rank"`
}

// EmployerBudget is one row of the budget report. Committed is the salary
// sum of the employer's filled positions (0 when none); Remaining is
// Budget - Committed and may be negative when an employer has overcommitted.
type EmployerBudget struct {
	EmployerID string  `json:"employer_id"`
	Name       string  `json:"name"`
	Budget     float64 `json:"budget"`
	Committed  float64 `json:"committed"`
	Remaining  float64 `json:"remaining"`
}

// PositionStatusCount is one row of the open/filled breakdown per employer.
type PositionStatusCount struct {
	EmployerID  string `json:"employer_id"`
	Name        string `json:"name"`
	OpenCount   int    `json:"open_count"`
	FilledCount int    `json:"filled_count"`
}

// SalaryShare is one row of the per-employer salary share report: each
// position's salary alongside the employer's total payroll.
type SalaryShare struct {
	EmployerID    string  `json:"employer_id"`
	EmployerName  string  `json:"employer_name"`
	Title         string  `json:"title"`
	Salary        float64 `json:"salary"`
	EmployerTotal float64 `json:"employer_total"`
}

// Workload is one row of the applicant_workload view: assignment count and
// total hours per applicant, zero for applicants with no assignments.
type Workload struct {
	ApplicantID     string  `json:"applicant_id"`
	FullName        string  `json:"full_name"`
	AssignmentCount int     `json:"assignment_count"`
	TotalHours      float64 `json:"total_hours"`
}
