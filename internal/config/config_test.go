package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, 20*time.Minute, cfg.BreakThreshold)
	assert.Equal(t, 2*time.Minute, cfg.InactivityTimeout)
	assert.Equal(t, 1, cfg.RobuxPerMinute)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEUROPLAY_DB", "/tmp/np.db")
	t.Setenv("NEUROPLAY_BREAK_THRESHOLD", "45m")
	t.Setenv("NEUROPLAY_INACTIVITY_TIMEOUT", "30s")
	t.Setenv("NEUROPLAY_ROBUX_PER_MINUTE", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/np.db", cfg.DBPath)
	assert.Equal(t, 45*time.Minute, cfg.BreakThreshold)
	assert.Equal(t, 30*time.Second, cfg.InactivityTimeout)
	assert.Equal(t, 2, cfg.RobuxPerMinute)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("NEUROPLAY_BREAK_THRESHOLD", "soon")

	_, err := Load()
	assert.Error(t, err)
}
