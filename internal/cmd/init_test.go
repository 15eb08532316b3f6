package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorepo/pkg/config"
)

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, _, err := executeCommand(t, "", "--config", path, "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at: "+path)

	cfg, err := config.LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestInitCommand_DefaultLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".autorepo", "config.yaml")
	t.Setenv(config.EnvConfigPath, path)

	out, _, err := executeCommand(t, "", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at: "+path)

	cfg, err := config.LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInitCommand_Existing(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		overwritten bool
	}{
		{name: "confirmed", answer: "y\n", overwritten: true},
		{name: "confirmed uppercase", answer: "Y\n", overwritten: true},
		{name: "declined", answer: "n\n"},
		{name: "no answer", answer: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// an invalid existing config must not block init
			path := writeConfig(t, "git:\n  backend: svn\n")

			out, _, err := executeCommand(t, tt.answer, "--config", path, "init")
			require.NoError(t, err)
			assert.Contains(t, out, "Configuration file already exists")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if tt.overwritten {
				assert.NotContains(t, string(data), "svn")
			} else {
				assert.Contains(t, out, "cancelled")
				assert.Contains(t, string(data), "svn")
			}
		})
	}
}
