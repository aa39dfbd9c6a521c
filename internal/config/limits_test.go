package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	limits := Default()
	assert.Equal(t, DefaultRecursionBound, limits.RecursionBound)
}

func TestExceeded(t *testing.T) {
	limits := Limits{RecursionBound: 3}
	assert.False(t, limits.Exceeded(3))
	assert.True(t, limits.Exceeded(4))
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recursionBound: 16\n"), 0o644))

	limits, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, limits.RecursionBound)
}

func TestLoadZeroBoundFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recursionBound: 0\n"), 0o644))

	limits, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultRecursionBound, limits.RecursionBound)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	limits, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultRecursionBound, limits.RecursionBound)
}
