package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// ExecRunner shells out to the git executable
type ExecRunner struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner for binary, or "git" from PATH when empty
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	return &ExecRunner{Binary: binary}
}

// Clone runs `git clone url` inside dir
func (r *ExecRunner) Clone(ctx context.Context, url, dir string) (int, error) {
	return r.run(ctx, dir, "clone", url)
}

// Init runs `git init` inside dir
func (r *ExecRunner) Init(ctx context.Context, dir string) (int, error) {
	return r.run(ctx, dir, "init")
}

// AddRemote runs `git remote add name url` inside dir
func (r *ExecRunner) AddRemote(ctx context.Context, dir, name, url string) (int, error) {
	return r.run(ctx, dir, "remote", "add", name, url)
}

func (r *ExecRunner) run(ctx context.Context, dir string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger.Debugf("Running %s %s in %q", r.Binary, strings.Join(args, " "), dir)

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run %s: %w", r.Binary, err)
	}

	return 0, nil
}
