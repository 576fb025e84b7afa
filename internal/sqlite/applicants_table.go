// This file implements the applicants table accessor. The skill_count
// column is derived state owned by the recount machinery: Set never writes
// it (new applicants start at 0, updates preserve the stored value), and
// reads always return whatever the last committed recount produced.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openhrlab/talentdb/pkg/types"
)

// Compile-time interface check: applicantsTable must implement Table.
var _ types.Table = (*applicantsTable)(nil)

// applicantsTable implements the Table interface for the applicants entity type.
type applicantsTable struct {
	backend *Backend
}

// Get retrieves an applicant by ID, including the maintained skill count.
func (at *applicantsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	at.backend.mu.RLock()
	defer at.backend.mu.RUnlock()
	if !at.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := at.backend.db.QueryRow(`
		SELECT applicant_id, full_name, years_experience, desired_salary,
		       skill_count, created_at, updated_at
		FROM applicants WHERE applicant_id = ?`, id)
	return scanApplicantRow(row.Scan)
}

// Set creates or updates an applicant. SkillCount on the passed struct is
// ignored: the column keeps its default (0) on create and its stored value
// on update.
func (at *applicantsTable) Set(id string, data any) (string, error) {
	a, ok := data.(*types.Applicant)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := a.Validate(); err != nil {
		return "", err
	}

	at.backend.mu.Lock()
	defer at.backend.mu.Unlock()
	if !at.backend.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC()
	isCreate := id == "" && a.ApplicantID == ""
	if isCreate {
		a.ApplicantID = newUUID()
		a.CreatedAt = now
		a.SkillCount = 0
	} else if id != "" {
		a.ApplicantID = id
	}
	a.UpdatedAt = now

	_, err := at.backend.db.Exec(`
		INSERT INTO applicants (applicant_id, full_name, years_experience,
		                        desired_salary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(applicant_id) DO UPDATE SET
			full_name = excluded.full_name,
			years_experience = excluded.years_experience,
			desired_salary = excluded.desired_salary,
			updated_at = excluded.updated_at`,
		a.ApplicantID, a.FullName, a.YearsExperience, a.DesiredSalary,
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("upserting applicant: %w", err)
	}
	return a.ApplicantID, nil
}

// Delete removes an applicant together with their skills and assignments.
// No recount is needed: the parent row carrying the count goes away with
// its children.
func (at *applicantsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	at.backend.mu.Lock()
	defer at.backend.mu.Unlock()
	if !at.backend.attached {
		return types.ErrStoreDetached
	}

	var exists int
	err := at.backend.db.QueryRow(
		"SELECT 1 FROM applicants WHERE applicant_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking applicant: %w", err)
	}

	tx, err := at.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning applicant deletion: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM skills WHERE applicant_id = ?", id); err != nil {
		return fmt.Errorf("deleting applicant skills: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM assignments WHERE applicant_id = ?", id); err != nil {
		return fmt.Errorf("deleting applicant assignments: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM applicants WHERE applicant_id = ?", id); err != nil {
		return fmt.Errorf("deleting applicant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing applicant deletion: %w", err)
	}
	return nil
}

// Fetch returns applicants matching the filter, ordered by created_at DESC.
// Supported filter keys: min_years, limit, offset.
func (at *applicantsTable) Fetch(filter map[string]any) ([]any, error) {
	at.backend.mu.RLock()
	defer at.backend.mu.RUnlock()
	if !at.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := `SELECT applicant_id, full_name, years_experience, desired_salary,
	       skill_count, created_at, updated_at
	FROM applicants`
	var conditions []string
	var args []any

	if v, ok := filter["min_years"]; ok {
		years, ok := toInt(v)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "years_experience >= ?")
		args = append(args, years)
	}

	query += whereClause(conditions) + " ORDER BY created_at DESC"

	var err error
	query, err = applyLimitOffset(query, filter)
	if err != nil {
		return nil, err
	}

	rows, err := at.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching applicants: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		a, err := scanApplicantRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

// scanApplicantRow hydrates one applicant row from any Scan-shaped source.
func scanApplicantRow(scan func(dest ...any) error) (*types.Applicant, error) {
	var a types.Applicant
	var createdAt, updatedAt string
	err := scan(&a.ApplicantID, &a.FullName, &a.YearsExperience,
		&a.DesiredSalary, &a.SkillCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning applicant: %w", err)
	}
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing applicant created_at: %w", err)
	}
	a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing applicant updated_at: %w", err)
	}
	return &a, nil
}
