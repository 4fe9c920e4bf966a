package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "tasktracker.db", c.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "tasktracker.db", cfg.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, cfg.SessionValidityDuration)
}
