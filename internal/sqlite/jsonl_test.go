// Tests for JSONL import parsing and full-database export.
package sqlite

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhrlab/talentdb/pkg/types"
)

// writeTempJSONL writes content to a temp file and returns its path.
func writeTempJSONL(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "skills.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSkillsJSONL(t *testing.T) {
	path := writeTempJSONL(t, `{"applicant_id":"a1","name":"SQL","level":5}
{"applicant_id":"a1","name":"Python","level":4}

{"applicant_id":"a2","name":"Excel","level":2}
`)

	skills, err := ReadSkillsJSONL(path)
	require.NoError(t, err)
	require.Len(t, skills, 3, "blank lines are skipped")

	assert.Equal(t, "a1", skills[0].ApplicantID)
	assert.Equal(t, "SQL", skills[0].Name)
	assert.Equal(t, 5, skills[0].Level)
	assert.Equal(t, "Excel", skills[2].Name)
}

func TestReadSkillsJSONL_Empty(t *testing.T) {
	path := writeTempJSONL(t, "")

	skills, err := ReadSkillsJSONL(path)
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestReadSkillsJSONL_MalformedLine(t *testing.T) {
	path := writeTempJSONL(t, `{"applicant_id":"a1","name":"SQL","level":5}
not json at all
`)

	_, err := ReadSkillsJSONL(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadSkillsJSONL_MissingFile(t *testing.T) {
	_, err := ReadSkillsJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestExportJSONL(t *testing.T) {
	b := newTestBackend(t)
	id := addApplicant(t, b, "Exported Applicant", 4)
	addSkill(t, b, id, "SQL", 5)

	dir := filepath.Join(t.TempDir(), "export")
	written, err := b.ExportJSONL(dir)
	require.NoError(t, err)
	assert.Equal(t, len(types.StandardTableNames), written, "one file per table")

	for _, table := range types.StandardTableNames {
		_, err := os.Stat(filepath.Join(dir, table+".jsonl"))
		assert.NoError(t, err, "missing export for %s", table)
	}

	// The applicants export carries the row we inserted.
	f, err := os.Open(filepath.Join(dir, "applicants.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		assert.Contains(t, scanner.Text(), "Exported Applicant")
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 1, lines)
}
