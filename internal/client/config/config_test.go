package config

import (
	"encoding/json"
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

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:3000/api", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, time.Minute, c.SessionCheckInterval)
	assert.Equal(t, "lifemgmt.db", c.DatabasePath)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoad_Flags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name:     "no args",
			args:     nil,
			expected: defaults(),
		},
		{
			name: "all flags",
			args: []string{"-a", "http://api:8080/api", "-t", "3", "-i", "0", "-d", "x.db", "-l", "json"},
			expected: &Config{
				APIBaseURL:           "http://api:8080/api",
				RequestTimeout:       3 * time.Second,
				SessionCheckInterval: 0,
				DatabasePath:         "x.db",
				LogFormat:            "json",
			},
		},
		{
			name: "unknown flags ignored",
			args: []string{"-z", "-a=http://h/api", "--verbose"},
			expected: func() *Config {
				c := defaults()
				c.APIBaseURL = "http://h/api"
				return c
			}(),
		},
		{
			name:    "bad timeout",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoad_JSONThenFlags(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":           "http://json/api",
		"request_timeout":        "4s",
		"session_check_interval": int64(30 * time.Second),
	})

	cfg, err := Load([]string{"-c", path, "-t", "7"})
	require.NoError(t, err)

	assert.Equal(t, "http://json/api", cfg.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout, "flag overrides JSON")
	assert.Equal(t, 30*time.Second, cfg.SessionCheckInterval)
	assert.Equal(t, "lifemgmt.db", cfg.DatabasePath, "absent keys keep defaults")
}

func TestLoad_JSONErrors(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"request_timeout": true}`), 0o600))
	_, err = Load([]string{"-c", bad})
	require.Error(t, err)
}

func TestLoad_SubSecondJSONDurationKept(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"request_timeout": "1500ms"})

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}
