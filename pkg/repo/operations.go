// Package repo implements the repository operations behind every autorepo
// command. Each operation wraps one GitHub API call or one local git
// invocation and reports a Result instead of an error.
package repo

import (
	"context"

	"autorepo/pkg/github"
)

// CloneTarget names what to clone: URL verbatim, or User/Repo resolved to a
// URL. Empty fields are resolved by the Service.
type CloneTarget struct {
	URL  string
	User string
	Repo string
}

// CreateOptions describes a repository to create
type CreateOptions struct {
	Name         string
	Description  string
	License      string
	Gitignore    string
	Organization string
	Private      bool
}

// Operations is the contract the command layer depends on
type Operations interface {
	// CloneRepo clones target into the working directory. The payload is
	// the git exit code, always 0 on success.
	CloneRepo(ctx context.Context, target CloneTarget) Result[int]
	// CreateRepo creates a repository on GitHub
	CreateRepo(ctx context.Context, opts CreateOptions) Result[*github.Repository]
	// DeleteRepo deletes name, owned by organization or the authenticated
	// user. The payload is the deleted full name.
	DeleteRepo(ctx context.Context, name, organization string) Result[string]
	// UpdateRepo changes the visibility of name
	UpdateRepo(ctx context.Context, name, visibility string) Result[*github.Repository]
	// InitRepo initializes a git repository in the working directory
	InitRepo(ctx context.Context) Result[int]
	// AddRemote adds cloneURL as origin of the working directory repository
	AddRemote(ctx context.Context, cloneURL string) Result[int]
}

// Picker chooses a repository name interactively
type Picker interface {
	PickRepository(repos []github.Repository) (string, error)
}
