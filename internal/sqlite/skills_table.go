// This file implements the skills table accessor. Skills are the child
// relation of the skill-count invariant: there is no unguarded write path
// to the skills table, so every insert, move, or delete recounts the
// affected applicant(s) inside the mutating transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openhrlab/talentdb/pkg/types"
)

// Compile-time interface check: skillsTable must implement Table.
var _ types.Table = (*skillsTable)(nil)

// skillsTable implements the Table interface for the skills entity type.
type skillsTable struct {
	backend *Backend
}

// Get retrieves a skill by ID.
func (st *skillsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	st.backend.mu.RLock()
	defer st.backend.mu.RUnlock()
	if !st.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var s types.Skill
	var createdAt string
	err := st.backend.db.QueryRow(
		"SELECT skill_id, applicant_id, name, level, created_at FROM skills WHERE skill_id = ?", id).
		Scan(&s.SkillID, &s.ApplicantID, &s.Name, &s.Level, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning skill: %w", err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing skill created_at: %w", err)
	}
	return &s, nil
}

// Set creates or updates a skill and recounts the owning applicant inside
// the same transaction. Moving a skill to a different applicant recounts
// both the old and the new owner.
func (st *skillsTable) Set(id string, data any) (string, error) {
	s, ok := data.(*types.Skill)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	st.backend.mu.Lock()
	defer st.backend.mu.Unlock()
	if !st.backend.attached {
		return "", types.ErrStoreDetached
	}

	isCreate := id == "" && s.SkillID == ""
	if isCreate {
		s.SkillID = newUUID()
		s.CreatedAt = time.Now().UTC()
	} else if id != "" {
		s.SkillID = id
	}

	tx, err := st.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning skill transaction: %w", err)
	}
	defer tx.Rollback()

	// The owning applicant must exist.
	var exists int
	err = tx.QueryRow(
		"SELECT 1 FROM applicants WHERE applicant_id = ?", s.ApplicantID).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("applicant %s: %w", s.ApplicantID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking applicant: %w", err)
	}

	// Pre-image: the previous owner, when updating an existing skill.
	var oldApplicant string
	if !isCreate {
		err = tx.QueryRow(
			"SELECT applicant_id FROM skills WHERE skill_id = ?", s.SkillID).Scan(&oldApplicant)
		if err != nil && err != sql.ErrNoRows {
			return "", fmt.Errorf("reading skill pre-image: %w", err)
		}
	}

	// One name per applicant.
	var dup int
	err = tx.QueryRow(
		"SELECT 1 FROM skills WHERE applicant_id = ? AND name = ? AND skill_id <> ?",
		s.ApplicantID, s.Name, s.SkillID).Scan(&dup)
	if err == nil {
		return "", types.ErrDuplicateName
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking skill name: %w", err)
	}

	if err := insertSkillTx(tx, s); err != nil {
		return "", err
	}

	if err := recountApplicantTx(tx, s.ApplicantID); err != nil {
		return "", err
	}
	if oldApplicant != "" && oldApplicant != s.ApplicantID {
		if err := recountApplicantTx(tx, oldApplicant); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing skill: %w", err)
	}
	return s.SkillID, nil
}

// Delete removes a skill and recounts the owning applicant inside the same
// transaction. Deleting the last skill drives the count to exactly 0.
func (st *skillsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	st.backend.mu.Lock()
	defer st.backend.mu.Unlock()
	if !st.backend.attached {
		return types.ErrStoreDetached
	}

	tx, err := st.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning skill deletion: %w", err)
	}
	defer tx.Rollback()

	// Pre-image: the owner whose count the delete invalidates.
	var applicantID string
	err = tx.QueryRow(
		"SELECT applicant_id FROM skills WHERE skill_id = ?", id).Scan(&applicantID)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading skill pre-image: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM skills WHERE skill_id = ?", id); err != nil {
		return fmt.Errorf("deleting skill: %w", err)
	}

	if err := recountApplicantTx(tx, applicantID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing skill deletion: %w", err)
	}
	return nil
}

// Fetch returns skills matching the filter, ordered by name.
// Supported filter keys: applicant_id, min_level.
func (st *skillsTable) Fetch(filter map[string]any) ([]any, error) {
	st.backend.mu.RLock()
	defer st.backend.mu.RUnlock()
	if !st.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT skill_id, applicant_id, name, level, created_at FROM skills"
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
	if v, ok := filter["min_level"]; ok {
		lvl, ok := toInt(v)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "level >= ?")
		args = append(args, lvl)
	}

	query += whereClause(conditions) + " ORDER BY name"

	rows, err := st.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching skills: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		var s types.Skill
		var createdAt string
		if err := rows.Scan(&s.SkillID, &s.ApplicantID, &s.Name, &s.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, &s)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

// insertSkillTx upserts a skill row inside the caller's transaction.
// Shared between the accessor's Set and the bulk import path.
func insertSkillTx(tx *sql.Tx, s *types.Skill) error {
	if s.SkillID == "" {
		s.SkillID = newUUID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := tx.Exec(`
		INSERT INTO skills (skill_id, applicant_id, name, level, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(skill_id) DO UPDATE SET
			applicant_id = excluded.applicant_id,
			name = excluded.name,
			level = excluded.level`,
		s.SkillID, s.ApplicantID, s.Name, s.Level,
		s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting skill: %w", err)
	}
	return nil
}
