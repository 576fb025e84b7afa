package types

import "time"

// Applicant represents a job seeker. SkillCount is a derived attribute: the
// backend keeps it equal to the number of skill rows referencing the
// applicant, recomputed inside every skill mutation's transaction. Callers
// never write SkillCount directly.
type Applicant struct {
	ApplicantID     string    // UUID v7, generated on creation.
	FullName        string    // Display name (required, non-empty).
	YearsExperience int       // Total years of experience; never negative.
	DesiredSalary   float64   // Desired salary; never negative.
	SkillCount      int       // Derived: count of skills rows for this applicant.
	CreatedAt       time.Time // Timestamp of creation.
	UpdatedAt       time.Time // Timestamp of last modification.
}

// Validate checks applicant fields before persistence.
func (a *Applicant) Validate() error {
	if a.FullName == "" {
		return ErrInvalidName
	}
	if a.YearsExperience < 0 {
		return ErrNegativeExperience
	}
	if a.DesiredSalary < 0 {
		return ErrNegativeSalary
	}
	return nil
}
