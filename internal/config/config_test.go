package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so a stray souschef.yaml cannot leak in.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "normal", cfg.LogLevel)
	assert.Equal(t, ".souschef/souschef.log", cfg.LogFile)
	assert.Empty(t, cfg.LLMEndpoint)
	assert.Equal(t, ".souschef/archive.db", cfg.ArchivePath)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOUSCHEF_ADDR", ":9999")
	t.Setenv("SOUSCHEF_LOG_LEVEL", "verbose")
	t.Setenv("SOUSCHEF_LLM_ENDPOINT", "https://example.com/v1/chat/completions")
	t.Setenv("SOUSCHEF_SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "verbose", cfg.LogLevel)
	assert.Equal(t, "https://example.com/v1/chat/completions", cfg.LLMEndpoint)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}
