package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected Config
	}{
		{
			name: "all fields",
			content: `{
				"database_dsn": "postgres://json/db",
				"database_password": "secret",
				"prompt_password": true,
				"output_format": "yaml",
				"log_level": "debug"
			}`,
			expected: Config{
				DatabaseDSN:      "postgres://json/db",
				DatabasePassword: "secret",
				PromptPassword:   true,
				OutputFormat:     "yaml",
				LogLevel:         "debug",
			},
		},
		{
			name:    "partial",
			content: `{"output_format": "json"}`,
			expected: Config{
				DatabaseDSN:  "dsn",
				OutputFormat: "json",
				LogLevel:     "info",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			c := Config{DatabaseDSN: "dsn", OutputFormat: "text", LogLevel: "info"}
			require.NoError(t, parseJson(&c, []string{"-c", path}))

			if diff := cmp.Diff(tt.expected, c); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJson_NoFlag(t *testing.T) {
	c := Config{OutputFormat: "text"}
	require.NoError(t, parseJson(&c, []string{"-d", "x"}))
	require.Equal(t, Config{OutputFormat: "text"}, c)
}

func TestParseJson_MissingFile(t *testing.T) {
	var c Config
	err := parseJson(&c, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
	require.ErrorIs(t, err, os.ErrNotExist)
}
