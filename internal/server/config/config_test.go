package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
	assert.Equal(t, ":3000", cfg.EndpointAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LIFEMGMT_SECRET_KEY", "from-env")
	t.Setenv("LIFEMGMT_TOKEN_VALIDITY", "2h")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("LIFEMGMT_RESET_TOKEN_VALIDITY", "soon")

	_, err := Load(nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIFEMGMT_RESET_TOKEN_VALIDITY")
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	// godotenv.Load sets variables process-wide; register cleanups first.
	t.Setenv("LIFEMGMT_ENDPOINT_ADDR", ":9999")
	t.Setenv("LIFEMGMT_DATABASE_DSN", "")
	require.NoError(t, os.Unsetenv("LIFEMGMT_DATABASE_DSN"))

	dotenv := writeFile(t, ".env", "LIFEMGMT_ENDPOINT_ADDR=:1111\nLIFEMGMT_DATABASE_DSN=postgres://dotenv\n")

	cfg, err := Load(nil, dotenv)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "postgres://dotenv", cfg.DatabaseDSN)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("LIFEMGMT_SECRET_KEY", "env")
	t.Setenv("LIFEMGMT_ENDPOINT_ADDR", ":7000")

	path := writeFile(t, "cfg.json", `{"secret_key": "json", "reset_token_validity_duration": "30m", "shutdown_timeout": "3s"}`)

	cfg, err := Load([]string{"-c", path, "-s", "flag", "-t", "15"}, "")
	require.NoError(t, err)

	assert.Equal(t, "flag", cfg.SecretKey)
	assert.Equal(t, ":7000", cfg.EndpointAddr)
	assert.Equal(t, 15*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, 30*time.Minute, cfg.ResetTokenValidityDuration)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-t", "x"}, "")
	require.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "none.json")}, "")
	require.Error(t, err)

	bad := writeFile(t, "bad.json", `{`)
	_, err = Load([]string{"-config", bad}, "")
	require.Error(t, err)
}

func TestLoad_SubMinuteDurationSurvivesWithoutFlags(t *testing.T) {
	t.Setenv("LIFEMGMT_TOKEN_VALIDITY", "90s")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.TokenValidityDuration)
}
