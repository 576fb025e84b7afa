package types

// Standard table names for Store.GetTable.
const (
	TableEmployers   = "employers"
	TablePositions   = "positions"
	TableApplicants  = "applicants"
	TableSkills      = "skills"
	TableAssignments = "assignments"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableEmployers,
	TablePositions,
	TableApplicants,
	TableSkills,
	TableAssignments,
}
