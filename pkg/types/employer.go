package types

import "time"

// Employer represents a hiring organization with a fixed hiring budget.
type Employer struct {
	EmployerID string    // UUID v7, generated on creation.
	Name       string    // Organization name (required, unique).
	Industry   string    // Free-form industry label (optional).
	Budget     float64   // Hiring budget; must be strictly positive.
	CreatedAt  time.Time // Timestamp of creation.
}

// Validate checks employer fields before persistence.
func (e *Employer) Validate() error {
	if e.Name == "" {
		return ErrInvalidName
	}
	if e.Budget <= 0 {
		return ErrNonPositiveBudget
	}
	return nil
}
