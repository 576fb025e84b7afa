// This file loads the fixed sample dataset used by the demo commands.
// Seeding runs in one transaction and uses the per-batch recount: every
// applicant touched by the bulk skill insert is recounted exactly once
// before commit.
package sqlite

import (
	"fmt"
	"time"

	"github.com/openhrlab/talentdb/pkg/types"
)

// sampleEmployer describes one employer and its positions to seed.
type sampleEmployer struct {
	name      string
	industry  string
	budget    float64
	positions []samplePosition
}

// samplePosition describes one position to seed.
type samplePosition struct {
	title  string
	salary float64
	status string
}

// sampleApplicant describes one applicant and their skills to seed.
type sampleApplicant struct {
	fullName string
	years    int
	desired  float64
	skills   []sampleSkill
}

// sampleSkill describes one skill to seed.
type sampleSkill struct {
	name  string
	level int
}

// sampleAssignment wires an applicant to a position by index into the
// sample slices.
type sampleAssignment struct {
	applicant int // index into sampleApplicants
	employer  int // index into sampleEmployers
	position  int // index into that employer's positions
	hours     float64
}

var sampleEmployers = []sampleEmployer{
	{
		name:      "Helios Analytics",
		industry:  "consulting",
		budget:    420000,
		positions: []samplePosition{
			{"Data Engineer", 95000, types.PositionFilled},
			{"BI Analyst", 78000, types.PositionOpen},
			{"Platform Architect", 120000, types.PositionOpen},
		},
	},
	{
		name:      "Northgate Logistics",
		industry:  "transport",
		budget:    250000,
		positions: []samplePosition{
			{"Fleet Manager", 67000, types.PositionFilled},
			{"Dispatcher", 52000, types.PositionOpen},
		},
	},
	{
		name:      "Bluewater Media",
		industry:  "media",
		budget:    150000,
		positions: []samplePosition{
			{"Content Producer", 58000, types.PositionOpen},
		},
	},
}

var sampleApplicants = []sampleApplicant{
	{
		fullName: "Mira Kovats",
		years:    8,
		desired:  90000,
		skills:   []sampleSkill{
			{"SQL", 5},
			{"Python", 4},
			{"Data Modeling", 4},
		},
	},
	{
		fullName: "Tomas Brandt",
		years:    5,
		desired:  70000,
		skills:   []sampleSkill{
			{"Logistics Planning", 4},
			{"Excel", 3},
		},
	},
	{
		fullName: "Ana Petrov",
		years:    5,
		desired:  62000,
		skills:   []sampleSkill{
			{"Copywriting", 5},
		},
	},
	{
		// No skills on purpose: the derived count must read 0, not NULL.
		fullName: "Leo Madsen",
		years:    1,
		desired:  45000,
	},
}

var sampleAssignments = []sampleAssignment{
	{applicant: 0, employer: 0, position: 0, hours: 120},
	{applicant: 1, employer: 1, position: 0, hours: 80},
	{applicant: 1, employer: 1, position: 1, hours: 24},
}

// SeedSummary reports how many rows Seed inserted per table.
type SeedSummary struct {
	Employers   int  `json:"employers"`
	Positions   int  `json:"positions"`
	Applicants  int  `json:"applicants"`
	Skills      int  `json:"skills"`
	Assignments int  `json:"assignments"`
	Skipped     bool `json:"skipped"`
}

// Seed loads the sample dataset. Seeding is idempotent: when employers
// already exist the dataset is assumed loaded and nothing is inserted.
func (b *Backend) Seed() (SeedSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var summary SeedSummary
	if !b.attached {
		return summary, types.ErrStoreDetached
	}

	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM employers").Scan(&count); err != nil {
		return summary, fmt.Errorf("counting employers: %w", err)
	}
	if count > 0 {
		summary.Skipped = true
		return summary, nil
	}

	nowStr := time.Now().UTC().Format(time.RFC3339)

	tx, err := b.db.Begin()
	if err != nil {
		return summary, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	positionIDs := make([][]string, len(sampleEmployers))
	for i, se := range sampleEmployers {
		employerID := newUUID()
		_, err := tx.Exec(
			"INSERT INTO employers (employer_id, name, industry, budget, created_at) VALUES (?, ?, ?, ?, ?)",
			employerID, se.name, se.industry, se.budget, nowStr)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("seeding employer %s: %w", se.name, err)
		}
		summary.Employers++

		positionIDs[i] = make([]string, len(se.positions))
		for j, sp := range se.positions {
			positionID := newUUID()
			_, err := tx.Exec(
				"INSERT INTO positions (position_id, employer_id, title, salary, status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
				positionID, employerID, sp.title, sp.salary, sp.status, nowStr)
			if err != nil {
				return SeedSummary{}, fmt.Errorf("seeding position %s: %w", sp.title, err)
			}
			positionIDs[i][j] = positionID
			summary.Positions++
		}
	}

	applicantIDs := make([]string, len(sampleApplicants))
	var touched []string
	for i, sa := range sampleApplicants {
		applicantID := newUUID()
		_, err := tx.Exec(
			"INSERT INTO applicants (applicant_id, full_name, years_experience, desired_salary, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			applicantID, sa.fullName, sa.years, sa.desired, nowStr, nowStr)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("seeding applicant %s: %w", sa.fullName, err)
		}
		applicantIDs[i] = applicantID
		summary.Applicants++

		for _, sk := range sa.skills {
			_, err := tx.Exec(
				"INSERT INTO skills (skill_id, applicant_id, name, level, created_at) VALUES (?, ?, ?, ?, ?)",
				newUUID(), applicantID, sk.name, sk.level, nowStr)
			if err != nil {
				return SeedSummary{}, fmt.Errorf("seeding skill %s: %w", sk.name, err)
			}
			touched = append(touched, applicantID)
			summary.Skills++
		}
	}

	for _, sa := range sampleAssignments {
		_, err := tx.Exec(
			"INSERT INTO assignments (assignment_id, position_id, applicant_id, hours, created_at) VALUES (?, ?, ?, ?, ?)",
			newUUID(), positionIDs[sa.employer][sa.position], applicantIDs[sa.applicant], sa.hours, nowStr)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("seeding assignment: %w", err)
		}
		summary.Assignments++
	}

	if err := recountApplicantsTx(tx, touched); err != nil {
		return SeedSummary{}, err
	}

	if err := tx.Commit(); err != nil {
		return SeedSummary{}, fmt.Errorf("committing seed transaction: %w", err)
	}
	return summary, nil
}
