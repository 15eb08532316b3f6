package git

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunner(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantType interface{}
		wantErr  bool
	}{
		{name: "default is exec", opts: Options{}, wantType: &ExecRunner{}},
		{name: "exec", opts: Options{Backend: BackendExec, Binary: "/usr/bin/git"}, wantType: &ExecRunner{}},
		{name: "go-git", opts: Options{Backend: BackendGoGit, Token: "t"}, wantType: &GoGitRunner{}},
		{name: "unknown", opts: Options{Backend: "libgit2"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := NewRunner(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, runner)
		})
	}
}

func TestNewRunner_Writers(t *testing.T) {
	var out, errOut bytes.Buffer

	runner, err := NewRunner(Options{Binary: "mygit", Stdout: &out, Stderr: &errOut})
	require.NoError(t, err)

	execRunner := runner.(*ExecRunner)
	assert.Equal(t, "mygit", execRunner.Binary)
	assert.Same(t, &out, execRunner.Stdout)
	assert.Same(t, &errOut, execRunner.Stderr)

	runner, err = NewRunner(Options{Backend: BackendGoGit, Token: "ghp_x", Stderr: &errOut})
	require.NoError(t, err)

	goGitRunner := runner.(*GoGitRunner)
	assert.Equal(t, "ghp_x", goGitRunner.Token)
	assert.Same(t, &errOut, goGitRunner.Progress)
}

func TestCheckExit(t *testing.T) {
	assert.NoError(t, CheckExit("clone", 0, nil))

	err := CheckExit("clone", 128, nil)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 128, exitErr.Code)
	assert.Equal(t, "git clone exited with code 128", err.Error())

	cause := errors.New("executable file not found")
	err = CheckExit("init", -1, cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "git init")
}

func TestRepoNameFromURL(t *testing.T) {
	tests := map[string]string{
		"https://github.com/octocat/hello-world.git": "hello-world",
		"https://github.com/octocat/hello-world":     "hello-world",
		"https://github.com/octocat/hello-world/":    "hello-world",
		"git@github.com:octocat/hello-world.git":     "hello-world",
		"/tmp/source/project":                        "project",
		"repo.git":                                   "repo",
	}

	for url, want := range tests {
		assert.Equal(t, want, RepoNameFromURL(url), url)
	}
}
