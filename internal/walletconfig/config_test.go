package walletconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasLibraryDefaults(t *testing.T) {
	c := New()
	assert.False(t, c.DefaultBackground)
	assert.True(t, c.AttemptCompress)
	assert.Empty(t, c.PreferredChainHex)
}

func TestToJSONFromJSONRoundTrip(t *testing.T) {
	c := New()
	c.SetDefaultBackground(true)
	c.SetPreferredChain("aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906")
	c.SetAttemptCompress(false)

	data, err := c.ToJSON()
	require.NoError(t, err)

	got, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, c.DefaultBackground, got.DefaultBackground)
	assert.Equal(t, c.PreferredChainHex, got.PreferredChainHex)
	assert.Equal(t, c.AttemptCompress, got.AttemptCompress)
}
