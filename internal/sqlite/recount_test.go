// Tests for derived skill-count maintenance: the count tracks the skills
// relation through inserts, deletes, bulk imports, and back-fills, and
// never goes below zero.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhrlab/talentdb/pkg/types"
)

func TestSkillCount_TracksInsertsAndDeletes(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Count Tracker", 3)

	assert.Equal(t, 0, skillCountOf(t, b, id), "new applicant starts at 0")

	s1 := addSkill(t, b, id, "SQL", 5)
	s2 := addSkill(t, b, id, "Python", 4)
	s3 := addSkill(t, b, id, "Go", 3)
	assert.Equal(t, 3, skillCountOf(t, b, id), "count after three inserts")

	skills, err := b.GetTable(types.TableSkills)
	require.NoError(t, err)

	require.NoError(t, skills.Delete(s2))
	assert.Equal(t, 2, skillCountOf(t, b, id), "count after one delete")

	require.NoError(t, skills.Delete(s1))
	require.NoError(t, skills.Delete(s3))
	assert.Equal(t, 0, skillCountOf(t, b, id), "count returns to exactly 0")
}

func TestSkillCount_ZeroFloor(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Zero Floor", 1)

	skillID := addSkill(t, b, id, "Excel", 2)
	skills, err := b.GetTable(types.TableSkills)
	require.NoError(t, err)
	require.NoError(t, skills.Delete(skillID))

	assert.Equal(t, 0, skillCountOf(t, b, id), "deleting the last skill leaves 0, never negative or NULL")

	// Deleting an already-deleted skill is a not-found error and does not
	// disturb the count.
	err = skills.Delete(skillID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, 0, skillCountOf(t, b, id))
}

func TestSkillCount_SetNeverWritesCount(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Direct Writer", 6)
	addSkill(t, b, id, "SQL", 4)

	applicants, err := b.GetTable(types.TableApplicants)
	require.NoError(t, err)

	// An update that claims a bogus count must not be believed.
	_, err = applicants.Set(id, &types.Applicant{
		FullName:        "Direct Writer",
		YearsExperience: 7,
		DesiredSalary:   80000,
		SkillCount:      99,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, skillCountOf(t, b, id), "stored count survives entity updates")
}

func TestImportSkills_BatchRecount(t *testing.T) {
	b := newTestBackend(t)
	first := addApplicant(t, b, "Batch One", 4)
	second := addApplicant(t, b, "Batch Two", 2)

	inserted, err := b.ImportSkills([]*types.Skill{
		{ApplicantID: first, Name: "SQL", Level: 5},
		{ApplicantID: first, Name: "Python", Level: 4},
		{ApplicantID: second, Name: "Copywriting", Level: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	assert.Equal(t, 2, skillCountOf(t, b, first))
	assert.Equal(t, 1, skillCountOf(t, b, second))
}

func TestImportSkills_AtomicOnBadRow(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Atomic Import", 4)

	// The second row references a missing applicant: the whole batch must
	// roll back, including the first row and any recount.
	_, err := b.ImportSkills([]*types.Skill{
		{ApplicantID: id, Name: "SQL", Level: 5},
		{ApplicantID: "no-such-applicant", Name: "Python", Level: 4},
	})
	require.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, 0, skillCountOf(t, b, id), "failed import leaves the count untouched")

	skills, err := b.GetTable(types.TableSkills)
	require.NoError(t, err)
	rows, err := skills.Fetch(map[string]any{"applicant_id": id})
	require.NoError(t, err)
	assert.Empty(t, rows, "failed import inserts nothing")
}

func TestImportSkills_InvalidLevelAborts(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Level Check", 4)

	_, err := b.ImportSkills([]*types.Skill{
		{ApplicantID: id, Name: "SQL", Level: 9},
	})
	require.ErrorIs(t, err, types.ErrInvalidLevel)
	assert.Equal(t, 0, skillCountOf(t, b, id))
}

func TestImportSkills_EmptyBatch(t *testing.T) {
	b := newTestBackend(t)

	inserted, err := b.ImportSkills(nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestBackfillSkillCounts_RepairsDrift(t *testing.T) {
	b := newTestBackend(t)
	first := addApplicant(t, b, "Drifted", 5)
	second := addApplicant(t, b, "Untouched", 3)
	addSkill(t, b, first, "SQL", 4)
	addSkill(t, b, first, "Python", 3)
	addSkill(t, b, second, "Excel", 2)

	// Corrupt the stored counts behind the accessors' backs, simulating
	// data loaded before maintenance took over.
	_, err := b.db.Exec("UPDATE applicants SET skill_count = 42")
	require.NoError(t, err)

	updated, err := b.BackfillSkillCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated, "backfill touches every applicant row")

	assert.Equal(t, 2, skillCountOf(t, b, first))
	assert.Equal(t, 1, skillCountOf(t, b, second))
}

func TestBackfillSkillCounts_Idempotent(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Stable", 2)
	addSkill(t, b, id, "SQL", 3)

	_, err := b.BackfillSkillCounts()
	require.NoError(t, err)
	firstPass := skillCountOf(t, b, id)

	_, err = b.BackfillSkillCounts()
	require.NoError(t, err)

	assert.Equal(t, firstPass, skillCountOf(t, b, id), "second backfill changes nothing")
	assert.Equal(t, 1, firstPass)
}

// Walks one applicant through a full bulk-then-trim sequence: three
// skills arrive in a single statement, then deletes bring the count back
// down to exactly zero.
func TestSkillCount_BulkInsertThenDeleteToZero(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Sequence Walker", 4)

	require.Equal(t, 0, skillCountOf(t, b, id))

	_, err := b.ImportSkills([]*types.Skill{
		{ApplicantID: id, Name: "SQL", Level: 5},
		{ApplicantID: id, Name: "Python", Level: 4},
		{ApplicantID: id, Name: "Go", Level: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, skillCountOf(t, b, id), "three rows in one statement, one recount")

	skills, err := b.GetTable(types.TableSkills)
	require.NoError(t, err)
	rows, err := skills.Fetch(map[string]any{"applicant_id": id})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.NoError(t, skills.Delete(rows[0].(*types.Skill).SkillID))
	assert.Equal(t, 2, skillCountOf(t, b, id))

	require.NoError(t, skills.Delete(rows[1].(*types.Skill).SkillID))
	require.NoError(t, skills.Delete(rows[2].(*types.Skill).SkillID))
	assert.Equal(t, 0, skillCountOf(t, b, id))
}

// The per-row and per-batch strategies must land on identical counts for
// the same sequence of mutations.
func TestSkillCount_StrategiesAgree(t *testing.T) {
	b := newTestBackend(t)

	perRow := addApplicant(t, b, "Per Row", 4)
	addSkill(t, b, perRow, "SQL", 5)
	addSkill(t, b, perRow, "Python", 4)
	addSkill(t, b, perRow, "Go", 3)

	perBatch := addApplicant(t, b, "Per Batch", 4)
	_, err := b.ImportSkills([]*types.Skill{
		{ApplicantID: perBatch, Name: "SQL", Level: 5},
		{ApplicantID: perBatch, Name: "Python", Level: 4},
		{ApplicantID: perBatch, Name: "Go", Level: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, skillCountOf(t, b, perRow), skillCountOf(t, b, perBatch))
}
