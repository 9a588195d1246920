package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgerrors "github.com/veerakumarak/jsend/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendGoccy, cfg.Render.Backend)
	assert.True(t, cfg.Render.EscapeHTML)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.WarnStack)
	assert.Equal(t, "jsend", cfg.Log.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvJSONBackend, " STD ")
	t.Setenv(EnvEscapeHTML, "false")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogWarnStack, "true")
	t.Setenv(EnvServiceName, "orders-api")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendStd, cfg.Render.Backend)
	assert.False(t, cfg.Render.EscapeHTML)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.WarnStack)
	assert.Equal(t, "orders-api", cfg.Log.ServiceName)
}

func TestLoad_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvJSONBackend, "jackson")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidArgument))
}

func TestLoad_MalformedBool(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEscapeHTML, "sometimes")

	_, err := Load()
	require.Error(t, err)
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvJSONBackend, EnvEscapeHTML, EnvLogLevel, EnvLogWarnStack, EnvServiceName} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
