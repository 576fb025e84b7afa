package sqlite

// Schema DDL. CHECK constraints mirror the demo database: budgets are
// strictly positive, salaries and hours are never negative, and the
// derived skill_count can never go below zero.
const (
	createEmployers = `CREATE TABLE IF NOT EXISTS employers (
    employer_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    industry TEXT,
    budget REAL NOT NULL CHECK (budget > 0),
    created_at TEXT NOT NULL
);`

	createPositions = `CREATE TABLE IF NOT EXISTS positions (
    position_id TEXT PRIMARY KEY,
    employer_id TEXT NOT NULL,
    title TEXT NOT NULL,
    salary REAL NOT NULL CHECK (salary >= 0),
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'filled')),
    created_at TEXT NOT NULL,
    FOREIGN KEY (employer_id) REFERENCES employers(employer_id)
);`

	createApplicants = `CREATE TABLE IF NOT EXISTS applicants (
    applicant_id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    years_experience INTEGER NOT NULL DEFAULT 0 CHECK (years_experience >= 0),
    desired_salary REAL NOT NULL DEFAULT 0 CHECK (desired_salary >= 0),
    skill_count INTEGER NOT NULL DEFAULT 0 CHECK (skill_count >= 0),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSkills = `CREATE TABLE IF NOT EXISTS skills (
    skill_id TEXT PRIMARY KEY,
    applicant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    level INTEGER NOT NULL CHECK (level BETWEEN 1 AND 5),
    created_at TEXT NOT NULL,
    FOREIGN KEY (applicant_id) REFERENCES applicants(applicant_id)
);`

	createAssignments = `CREATE TABLE IF NOT EXISTS assignments (
    assignment_id TEXT PRIMARY KEY,
    position_id TEXT NOT NULL,
    applicant_id TEXT NOT NULL,
    hours REAL NOT NULL CHECK (hours >= 0),
    created_at TEXT NOT NULL,
    FOREIGN KEY (position_id) REFERENCES positions(position_id),
    FOREIGN KEY (applicant_id) REFERENCES applicants(applicant_id)
);`
)

// Index DDL for common lookups.
const (
	idxPositionsEmployer = `CREATE INDEX IF NOT EXISTS idx_positions_employer ON positions(employer_id);`
	idxPositionsStatus   = `CREATE INDEX IF NOT EXISTS idx_positions_status ON positions(status);`
	idxSkillsApplicant   = `CREATE INDEX IF NOT EXISTS idx_skills_applicant ON skills(applicant_id);`
	idxSkillsUnique      = `CREATE UNIQUE INDEX IF NOT EXISTS idx_skills_unique ON skills(applicant_id, name);`
	idxAssignApplicant   = `CREATE INDEX IF NOT EXISTS idx_assignments_applicant ON assignments(applicant_id);`
	idxAssignPosition    = `CREATE INDEX IF NOT EXISTS idx_assignments_position ON assignments(position_id);`
)

// applicant_workload is a derived read-only projection, recomputed by the
// engine on each read. Applicants with no assignments appear with zeroes.
const createWorkloadView = `CREATE VIEW IF NOT EXISTS applicant_workload AS
SELECT a.applicant_id,
       a.full_name,
       COUNT(w.assignment_id) AS assignment_count,
       COALESCE(SUM(w.hours), 0) AS total_hours
FROM applicants a
LEFT JOIN assignments w ON w.applicant_id = a.applicant_id
GROUP BY a.applicant_id, a.full_name;`

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEmployers,
	createPositions,
	createApplicants,
	createSkills,
	createAssignments,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPositionsEmployer,
	idxPositionsStatus,
	idxSkillsApplicant,
	idxSkillsUnique,
	idxAssignApplicant,
	idxAssignPosition,
}

// viewDDL lists all CREATE VIEW statements.
var viewDDL = []string{
	createWorkloadView,
}
