package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 15, c.GetInt(ConfigCols))
	assert.Equal(t, 5, c.GetInt(ConfigWinLength))
	assert.Equal(t, 5*time.Second, c.GetDuration(ConfigTimeBudget))
	assert.False(t, c.GetBool(ConfigDebug))
}

func TestLoadFlags(t *testing.T) {
	c := &Config{}
	err := c.Load([]string{"--cols", "9", "--rows=7", "--time-budget", "250ms", "--debug", "show"})
	require.NoError(t, err)
	assert.Equal(t, 9, c.GetInt(ConfigCols))
	assert.Equal(t, 7, c.GetInt(ConfigRows))
	assert.Equal(t, 250*time.Millisecond, c.GetDuration(ConfigTimeBudget))
	assert.True(t, c.GetBool(ConfigDebug))
	assert.Equal(t, []string{"show"}, c.Args())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GOMOKU_WIN_LENGTH", "4")
	c := &Config{}
	require.NoError(t, c.Load(nil))
	assert.Equal(t, 4, c.GetInt(ConfigWinLength))
}

func TestLoadFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "gomoku.yaml")
	require.NoError(t, os.WriteFile(f, []byte("depth: 3\nbranch-cap: 12\n"), 0o644))
	c := &Config{}
	require.NoError(t, c.Load([]string{"--config-file", f, "--depth", "7"}))
	// flags win over the file
	assert.Equal(t, 7, c.GetInt(ConfigDepth))
	assert.Equal(t, 12, c.GetInt(ConfigBranchCap))
}

func TestLoadRejectsBadBoard(t *testing.T) {
	c := &Config{}
	err := c.Load([]string{"--cols", "0"})
	assert.ErrorIs(t, err, ErrBadSetting)
}

func TestSetValue(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.SetValue(ConfigDepth, "8"))
	assert.Equal(t, 8, c.GetInt(ConfigDepth))
	require.NoError(t, c.SetValue(ConfigTimeBudget, "2s"))
	assert.Equal(t, 2*time.Second, c.GetDuration(ConfigTimeBudget))
	require.NoError(t, c.SetValue(ConfigDebug, "on"))
	assert.True(t, c.GetBool(ConfigDebug))

	assert.ErrorIs(t, c.SetValue("lexicon", "NWL23"), ErrBadSetting)
	assert.ErrorIs(t, c.SetValue(ConfigDepth, "deep"), ErrBadSetting)
	assert.ErrorIs(t, c.SetValue(ConfigRows, "-3"), ErrBadSetting)
	assert.Equal(t, 15, c.GetInt(ConfigRows))
}
