package types

import "time"

// Position statuses. A position is advertised while open and stops being
// advertised once filled.
const (
	PositionOpen   = "open"
	PositionFilled = "filled"
)

// validPositionStatuses is the set of recognized status values.
var validPositionStatuses = map[string]bool{
	PositionOpen:   true,
	PositionFilled: true,
}

// Position represents a job opening advertised by an employer.
type Position struct {
	PositionID string    // UUID v7, generated on creation.
	EmployerID string    // Owning employer (required).
	Title      string    // Advertised title (required, non-empty).
	Salary     float64   // Offered salary; must not be negative.
	Status     string    // One of the Position status constants.
	CreatedAt  time.Time // Timestamp of creation.
}

// Validate checks position fields before persistence.
func (p *Position) Validate() error {
	if p.EmployerID == "" {
		return ErrEmployerRequired
	}
	if p.Title == "" {
		return ErrInvalidName
	}
	if p.Salary < 0 {
		return ErrNegativeSalary
	}
	if p.Status != "" && !validPositionStatuses[p.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// Fill marks an open position as filled.
// Returns ErrInvalidTransition if the position is not open.
func (p *Position) Fill() error {
	if p.Status != PositionOpen {
		return ErrInvalidTransition
	}
	p.Status = PositionFilled
	return nil
}

// Reopen marks a filled position as open again. Idempotent on open positions.
func (p *Position) Reopen() error {
	p.Status = PositionOpen
	return nil
}
