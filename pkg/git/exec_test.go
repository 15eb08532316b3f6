package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
}

func TestExecRunner_InitAndAddRemote(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	var out bytes.Buffer
	runner := NewExecRunner("")
	runner.Stdout, runner.Stderr = &out, &out

	code, err := runner.Init(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.DirExists(t, filepath.Join(dir, ".git"))

	code, err = runner.AddRemote(context.Background(), dir, DefaultRemote, "https://github.com/octocat/demo.git")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = dir
	url, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/octocat/demo.git", strings.TrimSpace(string(url)))

	// Adding the same remote twice fails with git's own exit code
	code, err = runner.AddRemote(context.Background(), dir, DefaultRemote, "https://github.com/octocat/other.git")
	require.NoError(t, err)
	assert.NotEqual(t, 0, code)
}

func TestExecRunner_Clone(t *testing.T) {
	requireGit(t)

	source := t.TempDir()
	runner := NewExecRunner("git")
	runner.Stdout, runner.Stderr = &bytes.Buffer{}, &bytes.Buffer{}

	code, err := runner.Init(context.Background(), source)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	dest := t.TempDir()
	code, err = runner.Clone(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.DirExists(t, filepath.Join(dest, filepath.Base(source), ".git"))
}

func TestExecRunner_CloneFailure(t *testing.T) {
	requireGit(t)

	var errOut bytes.Buffer
	runner := NewExecRunner("git")
	runner.Stdout, runner.Stderr = &bytes.Buffer{}, &errOut

	code, err := runner.Clone(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 128, code)
	assert.NotEmpty(t, errOut.String())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewExecRunner(filepath.Join(t.TempDir(), "no-such-git"))

	code, err := runner.Init(context.Background(), t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestExecRunner_MissingDir(t *testing.T) {
	requireGit(t)

	runner := NewExecRunner("git")
	missing := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.RemoveAll(missing))

	code, err := runner.Init(context.Background(), missing)
	assert.Error(t, err)
	assert.NotEqual(t, 0, code)
}
