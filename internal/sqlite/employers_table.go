package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openhrlab/talentdb/pkg/types"
)

// Compile-time interface check: employersTable must implement Table.
var _ types.Table = (*employersTable)(nil)

// employersTable implements the Table interface for the employers entity type.
type employersTable struct {
	backend *Backend
}

// Get retrieves an employer by ID.
func (et *employersTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	et.backend.mu.RLock()
	defer et.backend.mu.RUnlock()
	if !et.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var e types.Employer
	var createdAt string
	var industry sql.NullString
	err := et.backend.db.QueryRow(
		"SELECT employer_id, name, industry, budget, created_at FROM employers WHERE employer_id = ?", id).
		Scan(&e.EmployerID, &e.Name, &industry, &e.Budget, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning employer: %w", err)
	}
	if industry.Valid {
		e.Industry = industry.String
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing employer created_at: %w", err)
	}
	return &e, nil
}

// Set creates or updates an employer. Names are unique across employers.
func (et *employersTable) Set(id string, data any) (string, error) {
	e, ok := data.(*types.Employer)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	et.backend.mu.Lock()
	defer et.backend.mu.Unlock()
	if !et.backend.attached {
		return "", types.ErrStoreDetached
	}

	isCreate := id == "" && e.EmployerID == ""
	if isCreate {
		e.EmployerID = newUUID()
		e.CreatedAt = time.Now().UTC()
	} else if id != "" {
		e.EmployerID = id
	}

	var dup int
	err := et.backend.db.QueryRow(
		"SELECT 1 FROM employers WHERE name = ? AND employer_id <> ?",
		e.Name, e.EmployerID).Scan(&dup)
	if err == nil {
		return "", types.ErrDuplicateName
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking employer name: %w", err)
	}

	var industry sql.NullString
	if e.Industry != "" {
		industry = sql.NullString{String: e.Industry, Valid: true}
	}

	_, err = et.backend.db.Exec(`
		INSERT INTO employers (employer_id, name, industry, budget, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employer_id) DO UPDATE SET
			name = excluded.name,
			industry = excluded.industry,
			budget = excluded.budget`,
		e.EmployerID, e.Name, industry, e.Budget,
		e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("upserting employer: %w", err)
	}
	return e.EmployerID, nil
}

// Delete removes an employer together with its positions and the
// assignments referencing those positions.
func (et *employersTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	et.backend.mu.Lock()
	defer et.backend.mu.Unlock()
	if !et.backend.attached {
		return types.ErrStoreDetached
	}

	var exists int
	err := et.backend.db.QueryRow(
		"SELECT 1 FROM employers WHERE employer_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking employer: %w", err)
	}

	tx, err := et.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning employer deletion: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assignments WHERE position_id IN
		(SELECT position_id FROM positions WHERE employer_id = ?)`, id); err != nil {
		return fmt.Errorf("deleting employer assignments: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM positions WHERE employer_id = ?", id); err != nil {
		return fmt.Errorf("deleting employer positions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM employers WHERE employer_id = ?", id); err != nil {
		return fmt.Errorf("deleting employer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing employer deletion: %w", err)
	}
	return nil
}

// Fetch returns employers matching the filter, ordered by name.
// Supported filter keys: industry, limit, offset.
func (et *employersTable) Fetch(filter map[string]any) ([]any, error) {
	et.backend.mu.RLock()
	defer et.backend.mu.RUnlock()
	if !et.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT employer_id, name, industry, budget, created_at FROM employers"
	var conditions []string
	var args []any

	if v, ok := filter["industry"]; ok {
		ind, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "industry = ?")
		args = append(args, ind)
	}

	query += whereClause(conditions) + " ORDER BY name"

	var err error
	query, err = applyLimitOffset(query, filter)
	if err != nil {
		return nil, err
	}

	rows, err := et.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching employers: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		var e types.Employer
		var createdAt string
		var industry sql.NullString
		if err := rows.Scan(&e.EmployerID, &e.Name, &industry, &e.Budget, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning employer: %w", err)
		}
		if industry.Valid {
			e.Industry = industry.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, &e)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}
