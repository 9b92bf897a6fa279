package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the config file", func(t *testing.T) {
		// Given: a config file with redis and auth sections
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\napp-id: my-app\nredis:\n  host: redis\n  port: \"6380\"\n  db: 2\nauth:\n  wait-timeout: 2s\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: values come from the file and defaults fill the rest
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "my-app", conf.AppID)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 2, conf.Redis.DB)
		assert.Equal(t, 2*time.Second, conf.Auth.WaitTimeout)
		assert.Equal(t, "9090", conf.HTTPPort)
	})

	t.Run("Missing file falls back to defaults and environment", func(t *testing.T) {
		// Given: no config file and an app id in the environment
		t.Setenv("TICTACTOE_APP_ID", "from-env")

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults apply
		require.NoError(t, err)
		assert.Equal(t, "from-env", conf.AppID)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5*time.Second, conf.Auth.WaitTimeout)
		assert.False(t, conf.Auth.HasCustomToken())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a config file and a port in the environment
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("http-port: \"8080\"\n"), 0o600))
		t.Setenv("TICTACTOE_HTTP_PORT", "7070")

		// When: loading
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, ":7070", conf.HTTPAddr())
	})

	t.Run("Broken file is an error", func(t *testing.T) {
		// Given: a file that is not yaml
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: [\n"), 0o600))

		// When: loading
		_, err := Load(path)

		// Then: the error is reported
		require.Error(t, err)
	})
}
