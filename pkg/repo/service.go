package repo

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"autorepo/pkg/git"
	"autorepo/pkg/github"
)

// Clone protocols
const (
	ProtocolHTTPS = "https"
	ProtocolSSH   = "ssh"
)

// ClientFactory builds the GitHub client on first use, so operations that
// only touch git never need a token
type ClientFactory func() (github.APIClient, error)

// Service implements Operations over a GitHub client and a git runner
type Service struct {
	newClient ClientFactory
	client    github.APIClient
	login     string
	runner    git.Runner
	picker    Picker

	workdir       string
	defaultUser   string
	gitConfigPath string
	webURL        string
	protocol      string
}

// Option configures a Service
type Option func(*Service)

// WithRunner sets the git runner
func WithRunner(runner git.Runner) Option {
	return func(s *Service) { s.runner = runner }
}

// WithPicker enables interactive repository selection for clone
func WithPicker(picker Picker) Option {
	return func(s *Service) { s.picker = picker }
}

// WithWorkdir sets the directory git operations run in
func WithWorkdir(dir string) Option {
	return func(s *Service) { s.workdir = dir }
}

// WithDefaultUser sets the owner used by clone when none is given
func WithDefaultUser(user string) Option {
	return func(s *Service) { s.defaultUser = user }
}

// WithGitConfig sets the gitconfig file consulted for `github.user`
func WithGitConfig(path string) Option {
	return func(s *Service) { s.gitConfigPath = path }
}

// WithWebURL sets the GitHub web host used to build clone URLs
func WithWebURL(webURL string) Option {
	return func(s *Service) { s.webURL = webURL }
}

// WithProtocol selects https or ssh clone URLs
func WithProtocol(protocol string) Option {
	return func(s *Service) { s.protocol = protocol }
}

// NewService creates a Service. Without WithRunner the git executable is used.
func NewService(newClient ClientFactory, opts ...Option) *Service {
	s := &Service{
		newClient: newClient,
		runner:    git.NewExecRunner(""),
		webURL:    "https://github.com",
		protocol:  ProtocolHTTPS,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Operations = (*Service)(nil)

// CloneRepo resolves target to a URL and clones it
func (s *Service) CloneRepo(ctx context.Context, target CloneTarget) Result[int] {
	cloneURL, err := s.resolveCloneURL(ctx, target)
	if err != nil {
		return Failure[int](err)
	}

	dir, err := s.dir()
	if err != nil {
		return Failure[int](err)
	}

	logger.Debugf("Cloning %s", cloneURL)

	code, err := s.runner.Clone(ctx, cloneURL, dir)
	if err := git.CheckExit("clone", code, err); err != nil {
		return Failure[int](err)
	}

	return Success(0)
}

// CreateRepo creates the repository described by opts
func (s *Service) CreateRepo(ctx context.Context, opts CreateOptions) Result[*github.Repository] {
	client, err := s.apiClient()
	if err != nil {
		return Failure[*github.Repository](err)
	}

	logger.Debugf("Creating repository %s (organization=%q private=%t)", opts.Name, opts.Organization, opts.Private)

	created, err := client.CreateRepository(ctx, opts.Organization, github.RepositoryConfig{
		Name:              opts.Name,
		Description:       opts.Description,
		Private:           opts.Private,
		LicenseTemplate:   opts.License,
		GitignoreTemplate: opts.Gitignore,
	})
	if err != nil {
		return Failure[*github.Repository](err)
	}

	return Success(created)
}

// DeleteRepo deletes the repository
func (s *Service) DeleteRepo(ctx context.Context, name, organization string) Result[string] {
	owner, repoName, err := s.resolveOwner(ctx, name, organization)
	if err != nil {
		return Failure[string](err)
	}

	client, err := s.apiClient()
	if err != nil {
		return Failure[string](err)
	}

	logger.Debugf("Deleting repository %s/%s", owner, repoName)

	if err := client.DeleteRepository(ctx, owner, repoName); err != nil {
		return Failure[string](err)
	}

	return Success(owner + "/" + repoName)
}

// UpdateRepo sets the visibility of the repository
func (s *Service) UpdateRepo(ctx context.Context, name, visibility string) Result[*github.Repository] {
	if err := github.ValidateVisibility(visibility); err != nil {
		return Failure[*github.Repository](err)
	}

	owner, repoName, err := s.resolveOwner(ctx, name, "")
	if err != nil {
		return Failure[*github.Repository](err)
	}

	client, err := s.apiClient()
	if err != nil {
		return Failure[*github.Repository](err)
	}

	logger.Debugf("Setting visibility of %s/%s to %s", owner, repoName, visibility)

	updated, err := client.UpdateVisibility(ctx, owner, repoName, visibility)
	if err != nil {
		return Failure[*github.Repository](err)
	}

	return Success(updated)
}

// InitRepo runs git init in the working directory
func (s *Service) InitRepo(ctx context.Context) Result[int] {
	dir, err := s.dir()
	if err != nil {
		return Failure[int](err)
	}

	code, err := s.runner.Init(ctx, dir)
	if err := git.CheckExit("init", code, err); err != nil {
		return Failure[int](err)
	}

	return Success(0)
}

// AddRemote adds cloneURL as origin
func (s *Service) AddRemote(ctx context.Context, cloneURL string) Result[int] {
	if cloneURL == "" {
		return Failure[int](fmt.Errorf("remote URL is required"))
	}

	dir, err := s.dir()
	if err != nil {
		return Failure[int](err)
	}

	code, err := s.runner.AddRemote(ctx, dir, git.DefaultRemote, cloneURL)
	if err := git.CheckExit("remote add", code, err); err != nil {
		return Failure[int](err)
	}

	return Success(0)
}

func (s *Service) apiClient() (github.APIClient, error) {
	if s.client != nil {
		return s.client, nil
	}
	if s.newClient == nil {
		return nil, fmt.Errorf("GitHub client is not configured")
	}

	client, err := s.newClient()
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

func (s *Service) dir() (string, error) {
	if s.workdir != "" {
		return s.workdir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// resolveOwner splits "owner/name" or falls back to organization, then to
// the authenticated user
func (s *Service) resolveOwner(ctx context.Context, name, organization string) (string, string, error) {
	owner := organization
	if i := strings.Index(name, "/"); i >= 0 {
		owner, name = name[:i], name[i+1:]
	}

	if err := github.ValidateRepositoryName(name); err != nil {
		return "", "", err
	}

	if owner == "" {
		login, err := s.authenticatedUser(ctx)
		if err != nil {
			return "", "", err
		}
		owner = login
	}

	if err := github.ValidateOwner(owner); err != nil {
		return "", "", err
	}

	return owner, name, nil
}

func (s *Service) authenticatedUser(ctx context.Context) (string, error) {
	if s.login != "" {
		return s.login, nil
	}

	client, err := s.apiClient()
	if err != nil {
		return "", err
	}

	login, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return "", err
	}
	s.login = login
	return login, nil
}

func (s *Service) resolveCloneURL(ctx context.Context, target CloneTarget) (string, error) {
	if target.URL != "" {
		return target.URL, nil
	}

	owner, err := s.cloneOwner(ctx, target.User)
	if err != nil {
		return "", err
	}
	if err := github.ValidateOwner(owner); err != nil {
		return "", err
	}

	name := target.Repo
	if name == "" {
		if s.picker == nil {
			return "", fmt.Errorf("no repository given: use --url or --repo")
		}
		name, err = s.pickRepository(ctx, owner)
		if err != nil {
			return "", err
		}
	}
	if err := github.ValidateRepositoryName(name); err != nil {
		return "", err
	}

	return s.buildCloneURL(owner, name)
}

func (s *Service) cloneOwner(ctx context.Context, user string) (string, error) {
	if user != "" {
		return user, nil
	}
	if s.defaultUser != "" {
		return s.defaultUser, nil
	}

	if s.gitConfigPath != "" {
		gitUser, err := git.ReadGitHubUser(s.gitConfigPath)
		if err != nil {
			logger.Debugf("Ignoring unreadable gitconfig: %v", err)
		}
		if gitUser != "" {
			return gitUser, nil
		}
	}

	login, err := s.authenticatedUser(ctx)
	if err != nil {
		return "", fmt.Errorf("cannot determine repository owner: %w", err)
	}
	return login, nil
}

func (s *Service) pickRepository(ctx context.Context, owner string) (string, error) {
	client, err := s.apiClient()
	if err != nil {
		return "", err
	}

	// Private repositories are only listed for the token's own account
	listOwner := owner
	if login, err := s.authenticatedUser(ctx); err != nil {
		logger.Debugf("Listing public repositories of %s: %v", owner, err)
	} else if strings.EqualFold(login, owner) {
		listOwner = ""
	}

	repos, err := client.ListRepositories(ctx, listOwner)
	if err != nil {
		return "", err
	}

	return s.picker.PickRepository(repos)
}

func (s *Service) buildCloneURL(owner, name string) (string, error) {
	web, err := url.Parse(s.webURL)
	if err != nil || web.Host == "" {
		return "", fmt.Errorf("invalid GitHub web URL %q", s.webURL)
	}

	switch s.protocol {
	case ProtocolSSH:
		return fmt.Sprintf("git@%s:%s/%s.git", web.Hostname(), owner, name), nil
	case "", ProtocolHTTPS:
		return fmt.Sprintf("%s://%s/%s/%s.git", web.Scheme, web.Host, owner, name), nil
	default:
		return "", fmt.Errorf("unknown clone protocol %q", s.protocol)
	}
}
