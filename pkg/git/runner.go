// Package git runs the local git operations autorepo needs: clone, init and
// adding a remote. Two backends are available, the git executable and the
// pure-Go go-git library.
package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Backend names accepted by NewRunner
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// DefaultRemote is the remote name used when linking an existing directory
const DefaultRemote = "origin"

// Runner performs git operations and reports the exit code of each one.
// A non-nil error means the operation could not be attempted or failed in a
// way that has no exit code of its own.
type Runner interface {
	// Clone clones url into a new directory under dir
	Clone(ctx context.Context, url, dir string) (int, error)
	// Init initializes a repository in dir
	Init(ctx context.Context, dir string) (int, error)
	// AddRemote registers url as remote name in the repository at dir
	AddRemote(ctx context.Context, dir, name, url string) (int, error)
}

// Options configures NewRunner
type Options struct {
	Backend string
	// Binary is the git executable for the exec backend
	Binary string
	// Token authenticates https clones for the go-git backend
	Token  string
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns the Runner for opts.Backend
func NewRunner(opts Options) (Runner, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	switch opts.Backend {
	case "", BackendExec:
		r := NewExecRunner(opts.Binary)
		r.Stdout, r.Stderr = stdout, stderr
		return r, nil
	case BackendGoGit:
		r := NewGoGitRunner(opts.Token)
		r.Progress = stderr
		return r, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", opts.Backend)
	}
}

// ExitError reports a git operation that finished with a non-zero exit code
type ExitError struct {
	Op   string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("git %s exited with code %d", e.Op, e.Code)
}

// CheckExit folds a Runner result into a single error
func CheckExit(op string, code int, err error) error {
	if err != nil {
		return fmt.Errorf("git %s: %w", op, err)
	}
	if code != 0 {
		return &ExitError{Op: op, Code: code}
	}
	return nil
}

// RepoNameFromURL returns the directory name git derives from a clone URL
func RepoNameFromURL(url string) string {
	name := strings.TrimRight(url, "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
