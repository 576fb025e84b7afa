package types

import "time"

// Assignment records an applicant working a number of hours against a
// position. Assignments feed the applicant_workload view and the average
// hours ratio.
type Assignment struct {
	AssignmentID string    // UUID v7, generated on creation.
	PositionID   string    // Position being worked (required).
	ApplicantID  string    // Assigned applicant (required).
	Hours        float64   // Hours worked; never negative.
	CreatedAt    time.Time // Timestamp of creation.
}

// Validate checks assignment fields before persistence.
func (a *Assignment) Validate() error {
	if a.PositionID == "" {
		return ErrPositionRequired
	}
	if a.ApplicantID == "" {
		return ErrApplicantRequired
	}
	if a.Hours < 0 {
		return ErrNegativeHours
	}
	return nil
}
