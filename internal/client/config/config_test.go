package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "database.db", c.DatabaseDSN)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestParseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_dsn":"vault.db"}`), 0o600))

	c := &Config{}
	c.LoadDefaults()
	parseJson(c, []string{"-c", path})

	assert.Equal(t, "vault.db", c.DatabaseDSN)
	assert.Equal(t, "warn", c.LogLevel)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	require.Panics(t, func() { parseJson(c, []string{"-c", bad}) })
}

func TestParseFlags(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	parseFlags(c, []string{"-a", "ignored", "-d", "other.db", "-l=debug"})

	assert.Equal(t, "other.db", c.DatabaseDSN)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfig_EnvBeatsDefaults(t *testing.T) {
	t.Setenv("SIGNBOOK_DATABASE_DSN", "env.db")

	c := LoadConfig()
	assert.Equal(t, "env.db", c.DatabaseDSN)
	assert.Equal(t, "warn", c.LogLevel)
}
