package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vals map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vals[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultSecretHeader, cfg.Judge.Header)
	assert.Empty(t, cfg.Judge.SharedSecret)
	assert.False(t, cfg.JudgeGateEnabled())
	assert.Equal(t, hclog.Info, cfg.HCLogLevel())
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

server {
  address = "127.0.0.1:9000"
}

database {
  path = "/var/lib/reblaw/laws.db"
}

judge {
  shared_secret = "s3cret"
  header        = "X-Judge-Key"
}
`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, "/var/lib/reblaw/laws.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Judge.SharedSecret)
	assert.Equal(t, "X-Judge-Key", cfg.Judge.Header)
	assert.True(t, cfg.JudgeGateEnabled())
	assert.Equal(t, hclog.Debug, cfg.HCLogLevel())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
judge {
  shared_secret = "abc"
}
`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultSecretHeader, cfg.Judge.Header)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database {
  path = "from-file.db"
}

judge {
  shared_secret = "from-file"
}
`)

	t.Run("values", func(t *testing.T) {
		cfg, err := load(path, env(map[string]string{
			EnvDatabasePath: "/data/iran_laws.db",
			EnvSharedSecret: "from-env",
			EnvLogLevel:     "WARN",
			EnvPort:         "8080",
		}))
		require.NoError(t, err)

		assert.Equal(t, "/data/iran_laws.db", cfg.Database.Path)
		assert.Equal(t, "from-env", cfg.Judge.SharedSecret)
		assert.Equal(t, hclog.Warn, cfg.HCLogLevel())
		assert.Equal(t, ":8080", cfg.Server.Address)
	})

	t.Run("empty secret disables the gate", func(t *testing.T) {
		cfg, err := load(path, env(map[string]string{EnvSharedSecret: ""}))
		require.NoError(t, err)
		assert.False(t, cfg.JudgeGateEnabled())
	})

	t.Run("empty path keeps file value", func(t *testing.T) {
		cfg, err := load(path, env(map[string]string{EnvDatabasePath: ""}))
		require.NoError(t, err)
		assert.Equal(t, "from-file.db", cfg.Database.Path)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := load(filepath.Join(t.TempDir(), "nope.hcl"), env(nil))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := load(writeConfig(t, `server {`), env(nil))
		assert.Error(t, err)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := load(writeConfig(t, `colour = "blue"`), env(nil))
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := load("", env(map[string]string{EnvLogLevel: "loud"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown log level")
	})
}
