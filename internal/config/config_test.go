package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STATEMENTS_DIR", "OUTPUT_DIR", "STATEMENT_YEAR", "RENDER_DPI", "LISTEN_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "invoices", cfg.StatementsDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, time.Now().Year(), cfg.StatementYear)
	assert.Equal(t, 150, cfg.RenderDPI)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STATEMENTS_DIR", "/data/statements")
	t.Setenv("STATEMENT_YEAR", "2025")
	t.Setenv("RENDER_DPI", "200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/statements", cfg.StatementsDir)
	assert.Equal(t, 2025, cfg.StatementYear)
	assert.Equal(t, 200, cfg.RenderDPI)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STATEMENT_YEAR", "99")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadIgnoresUnparseableInts(t *testing.T) {
	t.Setenv("RENDER_DPI", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.RenderDPI)
}
