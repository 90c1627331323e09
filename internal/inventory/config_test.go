package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/chipflow/internal/chips"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chipflow.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", config.ListenAddress())
	assert.Equal(t, Default(), config.Inventory)
}

func TestLoadConfigFull(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

chips "1" {
  count = 200
}

chips "25" {
  count = 80
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", config.ListenAddress())
	assert.Equal(t, "debug", config.Server.LogLevel)
	assert.Equal(t, chips.Inventory{1: 200, 25: 80}, config.Inventory)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  port = 9999
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", config.Server.Address)
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, Default(), config.Inventory)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown denomination",
			content: `
chips "50" {
  count = 10
}
`,
		},
		{
			name: "negative count",
			content: `
chips "1" {
  count = -5
}
`,
		},
		{
			name: "bad log level",
			content: `
server {
  log_level = "loud"
}
`,
		},
		{
			name:    "not hcl",
			content: `{{{`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
		})
	}
}
