package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultHost, cfg.Host)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.NotEmpty(t, cfg.MOTD)
}

func TestParseOverridesFlags(t *testing.T) {
	cfg, err := Parse([]string{"--host", "127.0.0.1", "--port", "6697", "--debug"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "6697", cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestParseUnknownFlagErrors(t *testing.T) {
	_, err := Parse([]string{"--nonexistent"})
	assert.Error(t, err)
}
