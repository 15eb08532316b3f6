// Package github provides the GitHub side of autorepo's repository operations.
// It wraps the go-github REST client for the handful of calls the CLI needs
// (create, delete, change visibility, list, look up the authenticated user)
// and resolves the API token.
//
// The package includes:
// - APIClient interface and its go-github backed Client
// - AuthManager for token lookup (environment, OS keyring, config file)
// - GitHubError classification of API failures and WithRetry
// - Repository name, owner and visibility validation
package github
