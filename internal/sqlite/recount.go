// This file maintains the derived applicant skill_count column. The
// invariant: for every applicant, skill_count equals the number of skills
// rows referencing that applicant, observable after every committed
// mutation. Recomputes always run inside the mutating transaction, so a
// rollback discards the mutation and the recount together.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/openhrlab/talentdb/pkg/types"
)

// recountSQL recomputes skill_count for one applicant from the current
// skills relation. COUNT(*) over an empty set is 0, never NULL, which
// gives the zero floor for applicants whose last skill was deleted.
const recountSQL = `UPDATE applicants
SET skill_count = (SELECT COUNT(*) FROM skills WHERE applicant_id = ?)
WHERE applicant_id = ?`

// recountApplicantTx recomputes skill_count for a single applicant inside
// the caller's transaction. This is the per-row strategy: every
// single-skill insert or delete calls it for the one affected applicant.
func recountApplicantTx(tx *sql.Tx, applicantID string) error {
	res, err := tx.Exec(recountSQL, applicantID, applicantID)
	if err != nil {
		return fmt.Errorf("recounting skills for applicant %s: %w", applicantID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking recount result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recounting applicant %s: %w", applicantID, types.ErrNotFound)
	}
	return nil
}

// recountApplicantsTx recomputes skill_count for an explicit set of
// applicant IDs inside the caller's transaction. This is the per-batch
// strategy used by bulk paths (seeding, imports): a multi-row statement
// recounts each touched applicant exactly once, instead of once per row.
// Duplicate IDs are collapsed; order is irrelevant because each recount
// touches a distinct applicant row.
func recountApplicantsTx(tx *sql.Tx, applicantIDs []string) error {
	seen := make(map[string]bool, len(applicantIDs))
	for _, id := range applicantIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := recountApplicantTx(tx, id); err != nil {
			return err
		}
	}
	return nil
}

// BackfillSkillCounts recomputes skill_count for every applicant from the
// skills relation in one statement. It is the one-time back-fill for data
// loaded before maintenance took over, and it is idempotent: running it
// twice produces identical values.
func (b *Backend) BackfillSkillCounts() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	res, err := b.db.Exec(`UPDATE applicants
SET skill_count = (SELECT COUNT(*) FROM skills
                   WHERE skills.applicant_id = applicants.applicant_id)`)
	if err != nil {
		return 0, fmt.Errorf("backfilling skill counts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking backfill result: %w", err)
	}
	return n, nil
}

// ImportSkills inserts a batch of skills in one transaction and recounts
// each touched applicant once at the end (the per-batch strategy). The
// whole batch is atomic: one bad row aborts every insert and recount.
// Returns the number of skills inserted.
func (b *Backend) ImportSkills(skills []*types.Skill) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}
	if len(skills) == 0 {
		return 0, nil
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	touched := make([]string, 0, len(skills))
	for _, s := range skills {
		if err := s.Validate(); err != nil {
			return 0, err
		}
		var exists int
		err := tx.QueryRow(
			"SELECT 1 FROM applicants WHERE applicant_id = ?", s.ApplicantID).Scan(&exists)
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("importing skill %q: applicant %s: %w", s.Name, s.ApplicantID, types.ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("checking applicant for import: %w", err)
		}

		if err := insertSkillTx(tx, s); err != nil {
			return 0, err
		}
		touched = append(touched, s.ApplicantID)
	}

	if err := recountApplicantsTx(tx, touched); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(skills), nil
}
