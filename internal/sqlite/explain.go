// This file implements the index/EXPLAIN diagnostic session: create an
// index, compare query plans with and without it, drop the index. The
// experiment leaves no persisted effect behind.
package sqlite

import (
	"fmt"

	"github.com/openhrlab/talentdb/pkg/types"
)

// IndexExperiment describes one ad hoc index experiment.
type IndexExperiment struct {
	IndexName string // Name for the temporary index.
	CreateSQL string // Full CREATE INDEX statement.
	Query     string // Query whose plan is inspected.
	Args      []any  // Query parameters.
}

// PlanDiff holds EXPLAIN QUERY PLAN output captured before and after the
// index was created.
type PlanDiff struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// DefaultIndexExperiment exercises a salary range scan over positions,
// which has no covering index in the base schema.
func DefaultIndexExperiment() IndexExperiment {
	return IndexExperiment{
		IndexName: "idx_positions_salary_tmp",
		CreateSQL: "CREATE INDEX idx_positions_salary_tmp ON positions(salary)",
		Query:     "SELECT title FROM positions WHERE salary >= ?",
		Args:      []any{60000.0},
	}
}

// RunIndexExperiment captures the query plan, creates the index, captures
// the plan again, and drops the index. The drop runs even when the second
// plan capture fails, so the experiment never leaves the index behind.
func (b *Backend) RunIndexExperiment(exp IndexExperiment) (*PlanDiff, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if exp.IndexName == "" || exp.CreateSQL == "" || exp.Query == "" {
		return nil, types.ErrInvalidData
	}

	before, err := b.explainQueryPlan(exp.Query, exp.Args...)
	if err != nil {
		return nil, fmt.Errorf("explaining without index: %w", err)
	}

	if _, err := b.db.Exec(exp.CreateSQL); err != nil {
		return nil, fmt.Errorf("creating index %s: %w", exp.IndexName, err)
	}

	after, explainErr := b.explainQueryPlan(exp.Query, exp.Args...)

	if _, err := b.db.Exec("DROP INDEX IF EXISTS " + exp.IndexName); err != nil {
		return nil, fmt.Errorf("dropping index %s: %w", exp.IndexName, err)
	}
	if explainErr != nil {
		return nil, fmt.Errorf("explaining with index: %w", explainErr)
	}

	return &PlanDiff{Before: before, After: after}, nil
}

// explainQueryPlan returns the detail column of EXPLAIN QUERY PLAN output.
func (b *Backend) explainQueryPlan(query string, args ...any) ([]string, error) {
	rows, err := b.db.Query("EXPLAIN QUERY PLAN "+query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plan []string
	for rows.Next() {
		var id, parent, notused int
		var detail string
		if err := rows.Scan(&id, &parent, &notused, &detail); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plan = append(plan, detail)
	}
	return plan, rows.Err()
}
