package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorepo/pkg/config"
	"autorepo/pkg/repo"
)

// resetFlags restores every flag of the command tree to its default so
// package level option structs do not leak between executions
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeConfig writes content to a config file in a temp dir and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// executeCommand runs rootCmd with args and returns what it wrote to its
// output and error streams
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		appConfig = &config.Config{}
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// useFakeOperations routes every command to ops for the duration of the test
func useFakeOperations(t *testing.T, ops *fakeOperations) {
	t.Helper()
	original := newOperations
	newOperations = func(_ *config.Config, _, _ io.Writer) (repo.Operations, error) {
		return ops, nil
	}
	t.Cleanup(func() { newOperations = original })
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "autorepo", rootCmd.Use)
	assert.True(t, rootCmd.SilenceErrors)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"clone", "create", "delete", "update", "auth", "init"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommandHelp(t *testing.T) {
	out, _, err := executeCommand(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "autorepo")
	for _, sub := range []string{"clone", "create", "delete", "update", "auth", "init"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	ops := newFakeOperations()
	useFakeOperations(t, ops)
	path := writeConfig(t, "git:\n  backend: svn\n")

	_, _, err := executeCommand(t, "", "--config", path, "delete", "myrepo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Empty(t, ops.calls)
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	_, _, err := executeCommand(t, "", "frobnicate")
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	var buf bytes.Buffer

	assert.NoError(t, setupLogging(&buf, "warn", false))
	assert.NoError(t, setupLogging(&buf, "info", true))
	assert.Error(t, setupLogging(&buf, "loud", false))
}
