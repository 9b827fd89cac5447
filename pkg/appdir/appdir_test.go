package appdir

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	t.Setenv(EnvHome, dir)

	assert.Equal(t, dir, AppDir())
	assert.Equal(t, filepath.Join(dir, "logs.db"), Resolve("logs.db"))
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvHome, "/var/lib/idea")
	assert.Equal(t, "/var/lib/idea/logs.db", Resolve("logs.db"))
	assert.Equal(t, "/tmp/x.db", Resolve("/tmp/x.db"))
}
