package github

import "context"

// APIClient defines the GitHub API operations autorepo relies on
type APIClient interface {
	// AuthenticatedUser returns the login the token belongs to
	AuthenticatedUser(ctx context.Context) (string, error)

	// Repository operations
	CreateRepository(ctx context.Context, org string, config RepositoryConfig) (*Repository, error)
	DeleteRepository(ctx context.Context, owner, name string) error
	UpdateVisibility(ctx context.Context, owner, name, visibility string) (*Repository, error)
	ListRepositories(ctx context.Context, owner string) ([]Repository, error)
}

// Ensure Client implements the interface
var _ APIClient = (*Client)(nil)
