package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openhrlab/talentdb/pkg/types"
)

// Compile-time interface check: assignmentsTable must implement Table.
var _ types.Table = (*assignmentsTable)(nil)

// assignmentsTable implements the Table interface for the assignments entity type.
type assignmentsTable struct {
	backend *Backend
}

// Get retrieves an assignment by ID.
func (at *assignmentsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	at.backend.mu.RLock()
	defer at.backend.mu.RUnlock()
	if !at.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var a types.Assignment
	var createdAt string
	err := at.backend.db.QueryRow(
		"SELECT assignment_id, position_id, applicant_id, hours, created_at FROM assignments WHERE assignment_id = ?", id).
		Scan(&a.AssignmentID, &a.PositionID, &a.ApplicantID, &a.Hours, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing assignment created_at: %w", err)
	}
	return &a, nil
}

// Set creates or updates an assignment. Both the position and the
// applicant must exist.
func (at *assignmentsTable) Set(id string, data any) (string, error) {
	a, ok := data.(*types.Assignment)
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

	isCreate := id == "" && a.AssignmentID == ""
	if isCreate {
		a.AssignmentID = newUUID()
		a.CreatedAt = time.Now().UTC()
	} else if id != "" {
		a.AssignmentID = id
	}

	var exists int
	err := at.backend.db.QueryRow(
		"SELECT 1 FROM positions WHERE position_id = ?", a.PositionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("position %s: %w", a.PositionID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking position: %w", err)
	}
	err = at.backend.db.QueryRow(
		"SELECT 1 FROM applicants WHERE applicant_id = ?", a.ApplicantID).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("applicant %s: %w", a.ApplicantID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking applicant: %w", err)
	}

	_, err = at.backend.db.Exec(`
		INSERT INTO assignments (assignment_id, position_id, applicant_id, hours, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(assignment_id) DO UPDATE SET
			position_id = excluded.position_id,
			applicant_id = excluded.applicant_id,
			hours = excluded.hours`,
		a.AssignmentID, a.PositionID, a.ApplicantID, a.Hours,
		a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("upserting assignment: %w", err)
	}
	return a.AssignmentID, nil
}

// Delete removes an assignment by ID.
func (at *assignmentsTable) Delete(id string) error {
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
		"SELECT 1 FROM assignments WHERE assignment_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking assignment: %w", err)
	}

	if _, err := at.backend.db.Exec("DELETE FROM assignments WHERE assignment_id = ?", id); err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}

// Fetch returns assignments matching the filter, ordered by created_at DESC.
// Supported filter keys: applicant_id, position_id, limit, offset.
func (at *assignmentsTable) Fetch(filter map[string]any) ([]any, error) {
	at.backend.mu.RLock()
	defer at.backend.mu.RUnlock()
	if !at.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT assignment_id, position_id, applicant_id, hours, created_at FROM assignments"
	var conditions []string
	var args []any

	if v, ok := filter["applicant_id"]; ok {
		aid, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "applicant_id = ?")
		args = append(args, aid)
	}
	if v, ok := filter["position_id"]; ok {
		pid, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "position_id = ?")
		args = append(args, pid)
	}

	query += whereClause(conditions) + " ORDER BY created_at DESC"

	var err error
	query, err = applyLimitOffset(query, filter)
	if err != nil {
		return nil, err
	}

	rows, err := at.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching assignments: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		var a types.Assignment
		var createdAt string
		if err := rows.Scan(&a.AssignmentID, &a.PositionID, &a.ApplicantID, &a.Hours, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, &a)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}
