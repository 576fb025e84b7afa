package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openhrlab/talentdb/pkg/types"
)

// Compile-time interface check: positionsTable must implement Table.
var _ types.Table = (*positionsTable)(nil)

// positionsTable implements the Table interface for the positions entity type.
type positionsTable struct {
	backend *Backend
}

// Get retrieves a position by ID.
func (pt *positionsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var p types.Position
	var createdAt string
	err := pt.backend.db.QueryRow(
		"SELECT position_id, employer_id, title, salary, status, created_at FROM positions WHERE position_id = ?", id).
		Scan(&p.PositionID, &p.EmployerID, &p.Title, &p.Salary, &p.Status, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning position: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing position created_at: %w", err)
	}
	return &p, nil
}

// Set creates or updates a position. New positions default to open status.
func (pt *positionsTable) Set(id string, data any) (string, error) {
	p, ok := data.(*types.Position)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return "", types.ErrStoreDetached
	}

	isCreate := id == "" && p.PositionID == ""
	if isCreate {
		p.PositionID = newUUID()
		p.CreatedAt = time.Now().UTC()
		if p.Status == "" {
			p.Status = types.PositionOpen
		}
	} else if id != "" {
		p.PositionID = id
	}

	// The owning employer must exist.
	var exists int
	err := pt.backend.db.QueryRow(
		"SELECT 1 FROM employers WHERE employer_id = ?", p.EmployerID).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("employer %s: %w", p.EmployerID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking employer: %w", err)
	}

	_, err = pt.backend.db.Exec(`
		INSERT INTO positions (position_id, employer_id, title, salary, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(position_id) DO UPDATE SET
			employer_id = excluded.employer_id,
			title = excluded.title,
			salary = excluded.salary,
			status = excluded.status`,
		p.PositionID, p.EmployerID, p.Title, p.Salary, p.Status,
		p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("upserting position: %w", err)
	}
	return p.PositionID, nil
}

// Delete removes a position together with its assignments.
func (pt *positionsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return types.ErrStoreDetached
	}

	var exists int
	err := pt.backend.db.QueryRow(
		"SELECT 1 FROM positions WHERE position_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking position: %w", err)
	}

	tx, err := pt.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning position deletion: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM assignments WHERE position_id = ?", id); err != nil {
		return fmt.Errorf("deleting position assignments: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM positions WHERE position_id = ?", id); err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing position deletion: %w", err)
	}
	return nil
}

// Fetch returns positions matching the filter, ordered by created_at DESC.
// Supported filter keys: employer_id, status, limit, offset.
func (pt *positionsTable) Fetch(filter map[string]any) ([]any, error) {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT position_id, employer_id, title, salary, status, created_at FROM positions"
	var conditions []string
	var args []any

	if v, ok := filter["employer_id"]; ok {
		eid, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "employer_id = ?")
		args = append(args, eid)
	}
	if v, ok := filter["status"]; ok {
		status, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "status = ?")
		args = append(args, status)
	}

	query += whereClause(conditions) + " ORDER BY created_at DESC"

	var err error
	query, err = applyLimitOffset(query, filter)
	if err != nil {
		return nil, err
	}

	rows, err := pt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching positions: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		var p types.Position
		var createdAt string
		if err := rows.Scan(&p.PositionID, &p.EmployerID, &p.Title, &p.Salary, &p.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, &p)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}
