// Tests for the index experiment: plans are captured with and without the
// index and the index never survives the run.
package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhrlab/talentdb/pkg/types"
)

func TestRunIndexExperiment(t *testing.T) {
	b := newTestBackend(t)
	id := addEmployer(t, b, "Plan Co", 300000)
	addPosition(t, b, id, "Engineer", 90000, types.PositionOpen)
	addPosition(t, b, id, "Analyst", 60000, types.PositionOpen)

	exp := DefaultIndexExperiment()
	diff, err := b.RunIndexExperiment(exp)
	require.NoError(t, err)
	require.NotEmpty(t, diff.Before)
	require.NotEmpty(t, diff.After)

	// Without the index the plan scans the table; with it the plan names
	// the index.
	assert.Contains(t, strings.Join(diff.Before, "\n"), "SCAN")
	assert.Contains(t, strings.Join(diff.After, "\n"), exp.IndexName)

	// The experiment cleans up after itself.
	var count int
	err = b.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?",
		exp.IndexName).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "temporary index must be dropped")
}

func TestRunIndexExperiment_Validation(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.RunIndexExperiment(IndexExperiment{})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestRunIndexExperiment_Detached(t *testing.T) {
	b := NewBackend()

	_, err := b.RunIndexExperiment(DefaultIndexExperiment())
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}
