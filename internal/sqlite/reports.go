// This file implements the read-only analytical query surface: rankings,
// budget comparisons, conditional aggregation, the workload view, and the
// advertised-titles concatenation. All queries run against the live
// relation state; nothing here mutates data.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/openhrlab/talentdb/pkg/types"
)

// RankApplicantsByExperience ranks applicants by years of experience,
// most experienced first. Ties share a rank (SQL RANK semantics).
func (b *Backend) RankApplicantsByExperience() ([]types.ApplicantRank, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`
		SELECT applicant_id, full_name, years_experience,
		       RANK() OVER (ORDER BY years_experience DESC) AS exp_rank
		FROM applicants
		ORDER BY exp_rank, full_name`)
	if err != nil {
		return nil, fmt.Errorf("ranking applicants: %w", err)
	}
	defer rows.Close()

	var out []types.ApplicantRank
	for rows.Next() {
		var r types.ApplicantRank
		if err := rows.Scan(&r.ApplicantID, &r.FullName, &r.YearsExperience, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning rank row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// EmployerBudgets reports each employer's committed payroll (salary sum of
// filled positions, 0 when none) and remaining budget. Remaining may be
// negative for overcommitted employers.
func (b *Backend) EmployerBudgets() ([]types.EmployerBudget, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`
		SELECT e.employer_id, e.name, e.budget,
		       COALESCE(SUM(CASE WHEN p.status = 'filled' THEN p.salary END), 0) AS committed
		FROM employers e
		LEFT JOIN positions p ON p.employer_id = e.employer_id
		GROUP BY e.employer_id, e.name, e.budget
		ORDER BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("querying employer budgets: %w", err)
	}
	defer rows.Close()

	var out []types.EmployerBudget
	for rows.Next() {
		var r types.EmployerBudget
		if err := rows.Scan(&r.EmployerID, &r.Name, &r.Budget, &r.Committed); err != nil {
			return nil, fmt.Errorf("scanning budget row: %w", err)
		}
		r.Remaining = r.Budget - r.Committed
		out = append(out, r)
	}
	return out, rows.Err()
}

// PositionStatusCounts breaks positions down into open and filled counts
// per employer using conditional aggregation. Employers with no positions
// appear with zero counts.
func (b *Backend) PositionStatusCounts() ([]types.PositionStatusCount, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`
		SELECT e.employer_id, e.name,
		       COALESCE(SUM(CASE WHEN p.status = 'open' THEN 1 ELSE 0 END), 0) AS open_count,
		       COALESCE(SUM(CASE WHEN p.status = 'filled' THEN 1 ELSE 0 END), 0) AS filled_count
		FROM employers e
		LEFT JOIN positions p ON p.employer_id = e.employer_id
		GROUP BY e.employer_id, e.name
		ORDER BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	var out []types.PositionStatusCount
	for rows.Next() {
		var r types.PositionStatusCount
		if err := rows.Scan(&r.EmployerID, &r.Name, &r.OpenCount, &r.FilledCount); err != nil {
			return nil, fmt.Errorf("scanning status row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SalaryShares lists each position's salary next to its employer's total
// payroll, computed with a window over a CTE.
func (b *Backend) SalaryShares() ([]types.SalaryShare, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`
		WITH payroll AS (
			SELECT p.position_id, p.employer_id, p.title, p.salary,
			       SUM(p.salary) OVER (PARTITION BY p.employer_id) AS employer_total
			FROM positions p
		)
		SELECT e.employer_id, e.name, pr.title, pr.salary, pr.employer_total
		FROM payroll pr
		JOIN employers e ON e.employer_id = pr.employer_id
		ORDER BY e.name, pr.salary DESC, pr.title`)
	if err != nil {
		return nil, fmt.Errorf("querying salary shares: %w", err)
	}
	defer rows.Close()

	var out []types.SalaryShare
	for rows.Next() {
		var r types.SalaryShare
		if err := rows.Scan(&r.EmployerID, &r.EmployerName, &r.Title, &r.Salary, &r.EmployerTotal); err != nil {
			return nil, fmt.Errorf("scanning share row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AverageOpenSalary returns the mean salary across open positions, 0 when
// there are none.
func (b *Backend) AverageOpenSalary() (float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	var avg float64
	err := b.db.QueryRow(
		"SELECT COALESCE(AVG(salary), 0) FROM positions WHERE status = 'open'").Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("querying average salary: %w", err)
	}
	return avg, nil
}

// AverageAssignedHours returns total hours divided by assignment count for
// one applicant. The division is guarded: an applicant with no assignments
// yields 0, not an error.
func (b *Backend) AverageAssignedHours(applicantID string) (float64, error) {
	if applicantID == "" {
		return 0, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	var avg float64
	err := b.db.QueryRow(`
		SELECT CASE WHEN COUNT(*) = 0 THEN 0
		            ELSE SUM(hours) * 1.0 / COUNT(*) END
		FROM assignments WHERE applicant_id = ?`, applicantID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("querying average hours: %w", err)
	}
	return avg, nil
}

// ApplicantWorkloads reads the applicant_workload view: assignment count
// and total hours per applicant, zeroes for the unassigned.
func (b *Backend) ApplicantWorkloads() ([]types.Workload, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`
		SELECT applicant_id, full_name, assignment_count, total_hours
		FROM applicant_workload
		ORDER BY total_hours DESC, full_name`)
	if err != nil {
		return nil, fmt.Errorf("querying workload view: %w", err)
	}
	defer rows.Close()

	var out []types.Workload
	for rows.Next() {
		var r types.Workload
		if err := rows.Scan(&r.ApplicantID, &r.FullName, &r.AssignmentCount, &r.TotalHours); err != nil {
			return nil, fmt.Errorf("scanning workload row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AdvertisedPositions returns the employer's open position titles joined
// with ", ", ordered alphabetically. An employer with no open positions
// yields the empty string; a single title appears without a separator.
// Returns ErrNotFound for an unknown employer.
func (b *Backend) AdvertisedPositions(employerID string) (string, error) {
	if employerID == "" {
		return "", types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}

	var exists int
	err := b.db.QueryRow(
		"SELECT 1 FROM employers WHERE employer_id = ?", employerID).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("checking employer: %w", err)
	}

	rows, err := b.db.Query(`
		SELECT title FROM positions
		WHERE employer_id = ? AND status = 'open'
		ORDER BY title`, employerID)
	if err != nil {
		return "", fmt.Errorf("querying advertised titles: %w", err)
	}
	defer rows.Close()

	var sb strings.Builder
	first := true
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return "", fmt.Errorf("scanning title: %w", err)
		}
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(title)
		first = false
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
