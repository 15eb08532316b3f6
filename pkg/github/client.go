package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client implements the APIClient interface using the GitHub REST API
type Client struct {
	client *github.Client
	retry  *RetryConfig
}

// ClientOption configures a Client
type ClientOption func(*Client) error

// WithBaseURL points the client at a GitHub Enterprise Server API
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) error {
		if baseURL == "" {
			return nil
		}
		enterprise, err := c.client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub base URL %q: %w", baseURL, err)
		}
		c.client = enterprise
		return nil
	}
}

// WithMaxRetries enables retries of rate limit and network failures
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *Client) error {
		c.retry.MaxRetries = maxRetries
		return nil
	}
}

// NewClient creates a new GitHub API client with the provided token
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	c := &Client{
		client: github.NewClient(tc),
		retry:  DefaultRetryConfig(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// AuthenticatedUser returns the login of the token owner
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	info, err := c.TokenInfo(ctx)
	if err != nil {
		return "", err
	}
	return info.User, nil
}

// TokenInfo returns the token owner and its OAuth scopes
func (c *Client) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	var (
		user *github.User
		resp *github.Response
	)

	err := WithRetry(ctx, func() error {
		var err error
		user, resp, err = c.client.Users.Get(ctx, "")
		if err != nil {
			return WrapGitHubError(err, "authenticated user")
		}
		return nil
	}, c.retry)

	if err != nil {
		return nil, err
	}

	scopes := []string{}
	if resp != nil {
		if scopeHeader := resp.Header.Get("X-OAuth-Scopes"); scopeHeader != "" {
			scopes = strings.Split(strings.ReplaceAll(scopeHeader, " ", ""), ",")
		}
	}

	return &TokenInfo{
		User:   user.GetLogin(),
		Scopes: scopes,
	}, nil
}

// CreateRepository creates a repository for the authenticated user, or in
// org when it is not empty
func (c *Client) CreateRepository(ctx context.Context, org string, config RepositoryConfig) (*Repository, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	repo := &github.Repository{
		Name:    github.String(config.Name),
		Private: github.Bool(config.Private),
	}

	if config.Description != "" {
		repo.Description = github.String(config.Description)
	}
	if config.LicenseTemplate != "" {
		repo.LicenseTemplate = github.String(config.LicenseTemplate)
	}
	if config.GitignoreTemplate != "" {
		repo.GitignoreTemplate = github.String(config.GitignoreTemplate)
	}

	resource := fmt.Sprintf("repository %s", config.Name)
	if org != "" {
		resource = fmt.Sprintf("repository %s in organization %s", config.Name, org)
	}

	var createdRepo *github.Repository

	err := WithRetry(ctx, func() error {
		var err error
		createdRepo, _, err = c.client.Repositories.Create(ctx, org, repo)
		if err != nil {
			return WrapGitHubError(err, resource)
		}
		return nil
	}, c.retry)

	if err != nil {
		return nil, err
	}

	created := convertGitHubRepository(createdRepo)
	created.LicenseTemplate = config.LicenseTemplate
	created.GitignoreTemplate = config.GitignoreTemplate
	created.Organization = org

	return created, nil
}

// DeleteRepository deletes owner/name
func (c *Client) DeleteRepository(ctx context.Context, owner, name string) error {
	return WithRetry(ctx, func() error {
		_, err := c.client.Repositories.Delete(ctx, owner, name)
		if err != nil {
			return WrapGitHubError(err, fmt.Sprintf("repository %s/%s", owner, name))
		}
		return nil
	}, c.retry)
}

// UpdateVisibility changes the visibility of owner/name
func (c *Client) UpdateVisibility(ctx context.Context, owner, name, visibility string) (*Repository, error) {
	if err := ValidateVisibility(visibility); err != nil {
		return nil, &GitHubError{
			Type:     ErrorTypeValidation,
			Message:  err.Error(),
			Cause:    err,
			Resource: fmt.Sprintf("repository %s/%s", owner, name),
		}
	}

	repo := &github.Repository{
		Visibility: github.String(visibility),
	}

	// Servers without the visibility field still honour private
	if visibility != VisibilityInternal {
		repo.Private = github.Bool(visibility == VisibilityPrivate)
	}

	var updated *github.Repository

	err := WithRetry(ctx, func() error {
		var err error
		updated, _, err = c.client.Repositories.Edit(ctx, owner, name, repo)
		if err != nil {
			return WrapGitHubError(err, fmt.Sprintf("repository %s/%s", owner, name))
		}
		return nil
	}, c.retry)

	if err != nil {
		return nil, err
	}

	return convertGitHubRepository(updated), nil
}

// ListRepositories lists the repositories of owner. An empty owner lists the
// repositories owned by the authenticated user, private ones included.
func (c *Client) ListRepositories(ctx context.Context, owner string) ([]Repository, error) {
	var allRepos []Repository

	err := WithRetry(ctx, func() error {
		allRepos = nil // Reset on retry

		var (
			repos []*github.Repository
			resp  *github.Response
			err   error
			page  int
		)

		for {
			if owner == "" {
				opts := &github.RepositoryListByAuthenticatedUserOptions{
					Affiliation: "owner",
					ListOptions: github.ListOptions{PerPage: 100, Page: page},
				}
				repos, resp, err = c.client.Repositories.ListByAuthenticatedUser(ctx, opts)
			} else {
				opts := &github.RepositoryListByUserOptions{
					ListOptions: github.ListOptions{PerPage: 100, Page: page},
				}
				repos, resp, err = c.client.Repositories.ListByUser(ctx, owner, opts)
			}
			if err != nil {
				return WrapGitHubError(err, fmt.Sprintf("repositories for user %s", owner))
			}

			for _, repo := range repos {
				allRepos = append(allRepos, *convertGitHubRepository(repo))
			}

			if resp == nil || resp.NextPage == 0 {
				break
			}
			page = resp.NextPage
		}
		return nil
	}, c.retry)

	return allRepos, err
}

// convertGitHubRepository converts a GitHub API repository to our internal type
func convertGitHubRepository(repo *github.Repository) *Repository {
	visibility := repo.GetVisibility()
	if visibility == "" {
		visibility = VisibilityPublic
		if repo.GetPrivate() {
			visibility = VisibilityPrivate
		}
	}

	return &Repository{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Owner:       repo.GetOwner().GetLogin(),
		Description: repo.GetDescription(),
		Private:     repo.GetPrivate(),
		Visibility:  visibility,
		CloneURL:    repo.GetCloneURL(),
		SSHURL:      repo.GetSSHURL(),
		HTMLURL:     repo.GetHTMLURL(),
		CreatedAt:   repo.GetCreatedAt().Time,
		UpdatedAt:   repo.GetUpdatedAt().Time,
	}
}
