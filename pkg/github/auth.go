package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"autorepo/pkg/config"
)

// Keyring coordinates of the stored personal access token
const (
	KeyringService = "autorepo"
	KeyringUser    = "github_token"
)

// EnvToken is the environment variable checked before any stored token
const EnvToken = "GITHUB_TOKEN"

// RequiredScopes lists the classic token scopes autorepo needs
var RequiredScopes = []string{"repo", "delete_repo"}

// ErrTokenNotFound is returned when no token is stored
var ErrTokenNotFound = errors.New("no GitHub token stored")

// TokenStore persists a single GitHub token
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// KeyringStore keeps the token in the OS keyring
type KeyringStore struct {
	Service string
	User    string
}

// NewKeyringStore returns a store using the autorepo keyring entry
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{Service: KeyringService, User: KeyringUser}
}

// Get returns the stored token or ErrTokenNotFound
func (s *KeyringStore) Get() (string, error) {
	token, err := keyring.Get(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

// Set stores token, replacing any previous one
func (s *KeyringStore) Set(token string) error {
	if err := keyring.Set(s.Service, s.User, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Delete removes the stored token. ErrTokenNotFound is returned when there
// was nothing to remove.
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove token from keyring: %w", err)
	}
	return nil
}

// AuthManager handles GitHub authentication
type AuthManager struct {
	store  TokenStore
	getenv func(string) string
}

// NewAuthManager creates a new authentication manager. A nil store disables
// the keyring lookup.
func NewAuthManager(store TokenStore) *AuthManager {
	return &AuthManager{
		store:  store,
		getenv: os.Getenv,
	}
}

// GetToken retrieves the GitHub token from the environment, the keyring or
// the config file, in that order
func (am *AuthManager) GetToken(cfg *config.Config) (string, error) {
	if token := strings.TrimSpace(am.getenv(EnvToken)); token != "" {
		return token, nil
	}

	if am.store != nil {
		token, err := am.store.Get()
		switch {
		case err == nil && strings.TrimSpace(token) != "":
			return strings.TrimSpace(token), nil
		case err != nil && !errors.Is(err, ErrTokenNotFound):
			return "", err
		}
	}

	if cfg != nil && cfg.GitHub.Token != "" {
		return strings.TrimSpace(cfg.GitHub.Token), nil
	}

	return "", fmt.Errorf("no GitHub token found: run `autorepo auth login`, set %s, or configure github.token", EnvToken)
}

// ValidateToken checks token against GET /user and returns its owner and
// scopes. Missing scopes are not an error here, see MissingScopes.
func (am *AuthManager) ValidateToken(ctx context.Context, token string, opts ...ClientOption) (*TokenInfo, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("GitHub token cannot be empty")
	}

	client, err := NewClient(strings.TrimSpace(token), opts...)
	if err != nil {
		return nil, err
	}

	info, err := client.TokenInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to validate GitHub token: %w", err)
	}

	return info, nil
}

// Login validates token and stores it
func (am *AuthManager) Login(ctx context.Context, token string, opts ...ClientOption) (*TokenInfo, error) {
	if am.store == nil {
		return nil, fmt.Errorf("no token store available")
	}

	info, err := am.ValidateToken(ctx, token, opts...)
	if err != nil {
		return nil, err
	}

	if err := am.store.Set(strings.TrimSpace(token)); err != nil {
		return nil, err
	}

	return info, nil
}

// Logout removes the stored token. Having nothing stored is not an error.
func (am *AuthManager) Logout() error {
	if am.store == nil {
		return nil
	}
	if err := am.store.Delete(); err != nil && !errors.Is(err, ErrTokenNotFound) {
		return err
	}
	return nil
}

// NewAuthenticatedClient resolves a token and builds a Client configured from cfg
func (am *AuthManager) NewAuthenticatedClient(cfg *config.Config) (*Client, error) {
	token, err := am.GetToken(cfg)
	if err != nil {
		return nil, err
	}

	var opts []ClientOption
	if cfg != nil {
		opts = append(opts, WithBaseURL(cfg.GitHub.BaseURL), WithMaxRetries(cfg.GitHub.MaxRetries))
	}

	return NewClient(token, opts...)
}

// MissingScopes returns the required scopes the token lacks. Fine-grained
// tokens report no scopes and are never flagged.
func (ti *TokenInfo) MissingScopes() []string {
	if ti == nil || len(ti.Scopes) == 0 {
		return nil
	}

	scopeMap := make(map[string]bool)
	for _, scope := range ti.Scopes {
		scopeMap[scope] = true
	}

	var missing []string
	for _, required := range RequiredScopes {
		if !scopeMap[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required. Please set up authentication using one of the following methods:

1. OS keyring (Recommended):
   autorepo auth login

2. Environment Variable (Recommended for CI/CD):
   export GITHUB_TOKEN="your_personal_access_token"

3. Configuration File:
   Add the following to ~/.autorepo/config.yaml:

   github:
     token: "your_personal_access_token"

To create a personal access token:
1. Go to GitHub Settings > Developer settings > Personal access tokens
2. Click "Generate new token (classic)"
3. Select the following scopes:
   - repo (Full control of private repositories)
   - delete_repo (Delete repositories)
4. Copy the generated token and use it with one of the methods above`
}
