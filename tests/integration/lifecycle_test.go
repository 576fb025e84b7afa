// Integration test driving the full store lifecycle through the public
// API: attach, seed, mutate skills through the guarded accessors, read the
// reports, export, and reattach to verify persistence.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhrlab/talentdb/internal/sqlite"
	"github.com/openhrlab/talentdb/pkg/types"
)

// newAttachedBackend attaches a backend against a fresh temp directory.
func newAttachedBackend(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()

	dataDir := t.TempDir()
	backend := sqlite.NewBackend()
	err := backend.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	})
	require.NoError(t, err)
	return backend, dataDir
}

func TestLifecycle_SeedMutateReport(t *testing.T) {
	backend, dataDir := newAttachedBackend(t)
	defer backend.Detach()

	summary, err := backend.Seed()
	require.NoError(t, err)
	require.Equal(t, 4, summary.Applicants)

	applicants, err := backend.GetTable(types.TableApplicants)
	require.NoError(t, err)
	skills, err := backend.GetTable(types.TableSkills)
	require.NoError(t, err)

	// Find the seeded applicant with no skills.
	rows, err := applicants.Fetch(nil)
	require.NoError(t, err)
	var empty *types.Applicant
	for _, row := range rows {
		a := row.(*types.Applicant)
		if a.SkillCount == 0 {
			empty = a
		}
	}
	require.NotNil(t, empty, "seed includes a skill-less applicant")

	// Grow their skill list through the guarded path and watch the
	// derived count follow.
	skillID, err := skills.Set("", &types.Skill{ApplicantID: empty.ApplicantID, Name: "Networking", Level: 2})
	require.NoError(t, err)

	parsed, err := uuid.Parse(skillID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	item, err := applicants.Get(empty.ApplicantID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.(*types.Applicant).SkillCount)

	require.NoError(t, skills.Delete(skillID))
	item, err = applicants.Get(empty.ApplicantID)
	require.NoError(t, err)
	assert.Equal(t, 0, item.(*types.Applicant).SkillCount)

	// Reports run against the live relation state.
	ranks, err := backend.RankApplicantsByExperience()
	require.NoError(t, err)
	assert.Len(t, ranks, 4)
	assert.Equal(t, 1, ranks[0].Rank)

	budgets, err := backend.EmployerBudgets()
	require.NoError(t, err)
	assert.Len(t, budgets, 3)

	// Export writes one file per table.
	exportDir := filepath.Join(dataDir, "export")
	written, err := backend.ExportJSONL(exportDir)
	require.NoError(t, err)
	assert.Equal(t, len(types.StandardTableNames), written)
	_, err = os.Stat(filepath.Join(exportDir, "skills.jsonl"))
	assert.NoError(t, err)
}

func TestLifecycle_DataSurvivesReattach(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	backend := sqlite.NewBackend()
	require.NoError(t, backend.Attach(config))
	_, err := backend.Seed()
	require.NoError(t, err)

	applicants, err := backend.GetTable(types.TableApplicants)
	require.NoError(t, err)
	rows, err := applicants.Fetch(nil)
	require.NoError(t, err)
	var withSkills string
	for _, row := range rows {
		a := row.(*types.Applicant)
		if a.SkillCount == 3 {
			withSkills = a.ApplicantID
		}
	}
	require.NotEmpty(t, withSkills)
	require.NoError(t, backend.Detach())

	// A second backend over the same directory sees the committed counts.
	reopened := sqlite.NewBackend()
	require.NoError(t, reopened.Attach(config))
	defer reopened.Detach()

	applicants, err = reopened.GetTable(types.TableApplicants)
	require.NoError(t, err)
	item, err := applicants.Get(withSkills)
	require.NoError(t, err)
	assert.Equal(t, 3, item.(*types.Applicant).SkillCount)
}

func TestLifecycle_ImportThenBackfillAgree(t *testing.T) {
	backend, _ := newAttachedBackend(t)
	defer backend.Detach()

	applicants, err := backend.GetTable(types.TableApplicants)
	require.NoError(t, err)
	id, err := applicants.Set("", &types.Applicant{FullName: "Import Target", YearsExperience: 3})
	require.NoError(t, err)

	inserted, err := backend.ImportSkills([]*types.Skill{
		{ApplicantID: id, Name: "SQL", Level: 4},
		{ApplicantID: id, Name: "Go", Level: 3},
	})
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	item, err := applicants.Get(id)
	require.NoError(t, err)
	importCount := item.(*types.Applicant).SkillCount

	_, err = backend.BackfillSkillCounts()
	require.NoError(t, err)

	item, err = applicants.Get(id)
	require.NoError(t, err)
	assert.Equal(t, importCount, item.(*types.Applicant).SkillCount)
	assert.Equal(t, 2, importCount)
}
