package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"
)

// Exit codes reported by GoGitRunner, matching what the git executable
// returns for the same failures
const (
	exitFatal        = 128
	exitRemoteExists = 3
)

// GoGitRunner performs git operations in-process with go-git
type GoGitRunner struct {
	// Token is sent as basic auth password on https clones
	Token    string
	Progress io.Writer
}

// NewGoGitRunner creates a go-git backed runner
func NewGoGitRunner(token string) *GoGitRunner {
	return &GoGitRunner{Token: token}
}

// Clone clones url into dir/<repository name>
func (r *GoGitRunner) Clone(ctx context.Context, url, dir string) (int, error) {
	target := filepath.Join(dir, RepoNameFromURL(url))

	if _, err := os.Stat(target); err == nil {
		return exitFatal, fmt.Errorf("destination path %q already exists", target)
	}

	logger.Debugf("Cloning %s into %q with go-git", url, target)

	_, err := git.PlainCloneContext(ctx, target, false, &git.CloneOptions{
		URL:      url,
		Auth:     r.auth(url),
		Progress: r.Progress,
	})
	if err != nil {
		// Leave nothing half-cloned behind, as git does
		_ = os.RemoveAll(target)
		return exitFatal, err
	}

	return 0, nil
}

// Init initializes a repository in dir. Re-initializing an existing
// repository succeeds.
func (r *GoGitRunner) Init(_ context.Context, dir string) (int, error) {
	_, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		logger.Debugf("Repository already initialized in %q", dir)
		return 0, nil
	}
	if err != nil {
		return exitFatal, err
	}
	return 0, nil
}

// AddRemote adds remote name pointing at url
func (r *GoGitRunner) AddRemote(_ context.Context, dir, name, url string) (int, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return exitFatal, err
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if errors.Is(err, git.ErrRemoteExists) {
		return exitRemoteExists, err
	}
	if err != nil {
		return exitFatal, err
	}

	return 0, nil
}

func (r *GoGitRunner) auth(url string) transport.AuthMethod {
	if r.Token == "" || !strings.HasPrefix(url, "https://") {
		// ssh URLs fall back to the ssh agent
		return nil
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: r.Token,
	}
}
