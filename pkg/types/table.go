package types

import "errors"

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)

// Entity validation errors.
var (
	ErrInvalidName        = errors.New("invalid name")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrNonPositiveBudget  = errors.New("budget must be positive")
	ErrNegativeSalary     = errors.New("salary must not be negative")
	ErrNegativeExperience = errors.New("years of experience must not be negative")
	ErrNegativeHours      = errors.New("hours must not be negative")
	ErrInvalidLevel       = errors.New("skill level must be between 1 and 5")
	ErrInvalidStatus      = errors.New("invalid position status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmployerRequired   = errors.New("employer ID must not be empty")
	ErrApplicantRequired  = errors.New("applicant ID must not be empty")
	ErrPositionRequired   = errors.New("position ID must not be empty")
)
