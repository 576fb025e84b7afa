// Command-level tests: each test drives the cobra tree the way a user
// would, against temp config and data directories.
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and returns its output.
// Only success paths belong here: error paths exit the process.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return buf.String()
}

// testDirs returns fresh config and data directories as flag arguments.
func testDirs(t *testing.T) []string {
	t.Helper()
	return []string{
		"--config-dir", t.TempDir(),
		"--data-dir", filepath.Join(t.TempDir(), "data"),
	}
}

func TestVersionCommand(t *testing.T) {
	out := runCommand(t, "version")
	assert.Contains(t, out, "talentctl v")
}

func TestInitCommand_CreatesConfigAndDatabase(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "data")

	out := runCommand(t, "--config-dir", configDir, "--data-dir", dataDir, "init")
	assert.Contains(t, out, "talentdb initialized")

	if _, err := os.Stat(filepath.Join(configDir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "talentdb.db")); err != nil {
		t.Errorf("talentdb.db not created: %v", err)
	}
}

func TestSeedAndReportCommands(t *testing.T) {
	dirs := testDirs(t)

	out := runCommand(t, append(dirs, "seed")...)
	assert.Contains(t, out, "seeded 3 employers")

	// Reseeding is a no-op.
	out = runCommand(t, append(dirs, "seed")...)
	assert.Contains(t, out, "nothing to do")

	out = runCommand(t, append(dirs, "report", "rank")...)
	assert.Contains(t, out, "Mira Kovats")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "1"), "most experienced applicant ranks first")

	out = runCommand(t, append(dirs, "report", "budgets")...)
	assert.Contains(t, out, "Helios Analytics")
	assert.Contains(t, out, "committed")

	out = runCommand(t, append(dirs, "report", "workload")...)
	assert.Contains(t, out, "Leo Madsen")
}

func TestBackfillCommand(t *testing.T) {
	dirs := testDirs(t)

	runCommand(t, append(dirs, "seed")...)

	out := runCommand(t, append(dirs, "backfill")...)
	assert.Contains(t, out, "recomputed skill counts for 4 applicants")
}

func TestApplicantAndSkillCommands(t *testing.T) {
	dirs := testDirs(t)

	id := strings.TrimSpace(runCommand(t, append(dirs, "applicant", "add", "--name", "CLI Applicant", "--years", "4")...))
	require.NotEmpty(t, id)

	runCommand(t, append(dirs, "skill", "add", "--applicant", id, "--name", "SQL", "--level", "5")...)

	out := runCommand(t, append(dirs, "applicant", "show", id)...)
	assert.Contains(t, out, "CLI Applicant")
	assert.Contains(t, out, "Skills:      1")

	out = runCommand(t, append(dirs, "skill", "list", "--applicant", id)...)
	assert.Contains(t, out, "SQL")
}

func TestSkillImportCommand(t *testing.T) {
	dirs := testDirs(t)

	id := strings.TrimSpace(runCommand(t, append(dirs, "applicant", "add", "--name", "Import Applicant")...))
	require.NotEmpty(t, id)

	path := filepath.Join(t.TempDir(), "skills.jsonl")
	content := `{"applicant_id":"` + id + `","name":"SQL","level":4}
{"applicant_id":"` + id + `","name":"Go","level":3}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out := runCommand(t, append(dirs, "skill", "import", path)...)
	assert.Contains(t, out, "imported 2 skills")

	out = runCommand(t, append(dirs, "applicant", "show", id)...)
	assert.Contains(t, out, "Skills:      2")
}

func TestExplainCommand(t *testing.T) {
	dirs := testDirs(t)

	runCommand(t, append(dirs, "seed")...)

	out := runCommand(t, append(dirs, "explain")...)
	assert.Contains(t, out, "without index:")
	assert.Contains(t, out, "with index:")
	assert.Contains(t, out, "idx_positions_salary_tmp")
}

func TestExportCommand(t *testing.T) {
	dirs := testDirs(t)

	runCommand(t, append(dirs, "seed")...)

	exportDir := filepath.Join(t.TempDir(), "export")
	out := runCommand(t, append(dirs, "export", exportDir)...)
	assert.Contains(t, out, "exported 5 tables")

	for _, name := range []string{"employers", "positions", "applicants", "skills", "assignments"} {
		if _, err := os.Stat(filepath.Join(exportDir, name+".jsonl")); err != nil {
			t.Errorf("missing export file for %s: %v", name, err)
		}
	}
}
