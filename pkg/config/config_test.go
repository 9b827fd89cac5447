package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("IDEA_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Workers, cfg.Workers)
	assert.Equal(t, "zstd", cfg.Compression)
	assert.Equal(t, "logs.db", cfg.LogDB)
}

func TestLoadFileAndEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "idea.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
key: "31323334353637383930313233343536"
nonce: "deadbeef"
workers: 4
compression: gzip
console_log: true
`), 0o600))
	t.Setenv("IDEA_WORKERS", "8")

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "31323334353637383930313233343536", cfg.Key)
	assert.Equal(t, "deadbeef", cfg.Nonce)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "gzip", cfg.Compression)
	assert.True(t, cfg.ConsoleLog)
	assert.Equal(t, p, cfg.ConfigFile)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNegativeWorkers(t *testing.T) {
	t.Setenv("IDEA_HOME", t.TempDir())
	t.Setenv("IDEA_WORKERS", "-1")
	_, err := LoadConfig("")
	assert.Error(t, err)
}
