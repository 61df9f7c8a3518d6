package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendsAndReadAllReturnsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "audit.ndjson")
	logger, err := New(path)
	require.NoError(t, err)

	require.NoError(t, logger.Log(Entry{
		ID:        "1",
		Timestamp: time.Now(),
		Event:     EventBuilt,
		Status:    "SUCCESS",
	}))
	require.NoError(t, logger.Log(Entry{
		ID:            "2",
		Timestamp:     time.Now(),
		Event:         EventResolved,
		Status:        "FAILURE",
		FailureReason: "missing tapos",
	}))

	entries, err := logger.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, EventBuilt, entries[0].Event)
	assert.Equal(t, EventResolved, entries[1].Event)
	assert.Equal(t, "missing tapos", entries[1].FailureReason)
}

func TestReadAllOnMissingFileReturnsNoEntries(t *testing.T) {
	logger, err := New(filepath.Join(t.TempDir(), "never-written.ndjson"))
	require.NoError(t, err)

	entries, err := logger.ReadAll()
	require.NoError(t, err)
	assert.Nil(t, entries)
}
