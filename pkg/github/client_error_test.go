package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_HTTPErrorPaths(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		message      string
		call         func(c *Client) error
		expectedType ErrorType
		expectedMsg  string
	}{
		{
			name:    "create conflict when repository exists",
			status:  http.StatusUnprocessableEntity,
			message: "name already exists on this account",
			call: func(c *Client) error {
				_, err := c.CreateRepository(context.Background(), "", RepositoryConfig{Name: "taken"})
				return err
			},
			expectedType: ErrorTypeConflict,
		},
		{
			name:    "create in unknown organization",
			status:  http.StatusNotFound,
			message: "Not Found",
			call: func(c *Client) error {
				_, err := c.CreateRepository(context.Background(), "no-such-org", RepositoryConfig{Name: "repo"})
				return err
			},
			expectedType: ErrorTypeNotFound,
			expectedMsg:  "Organization not found",
		},
		{
			name:    "delete without delete_repo scope",
			status:  http.StatusForbidden,
			message: "Must have admin rights to Repository.",
			call: func(c *Client) error {
				return c.DeleteRepository(context.Background(), "octocat", "repo")
			},
			expectedType: ErrorTypePermission,
			expectedMsg:  "delete_repo",
		},
		{
			name:    "delete missing repository",
			status:  http.StatusNotFound,
			message: "Not Found",
			call: func(c *Client) error {
				return c.DeleteRepository(context.Background(), "octocat", "gone")
			},
			expectedType: ErrorTypeNotFound,
			expectedMsg:  "Repository not found",
		},
		{
			name:    "bad credentials",
			status:  http.StatusUnauthorized,
			message: "Bad credentials",
			call: func(c *Client) error {
				_, err := c.AuthenticatedUser(context.Background())
				return err
			},
			expectedType: ErrorTypeAuth,
			expectedMsg:  "autorepo auth login",
		},
		{
			name:    "server error is not retried by default",
			status:  http.StatusBadGateway,
			message: "Server Error",
			call: func(c *Client) error {
				_, err := c.UpdateVisibility(context.Background(), "octocat", "repo", "public")
				return err
			},
			expectedType: ErrorTypeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"message": tt.message})
			}))
			defer server.Close()

			client := createTestClient(t, server)
			err := tt.call(client)

			require.Error(t, err)
			var ghErr *GitHubError
			require.ErrorAs(t, err, &ghErr)
			assert.Equal(t, tt.expectedType, ghErr.Type)
			assert.Contains(t, ghErr.Message, tt.expectedMsg)
			assert.Equal(t, 1, calls)
		})
	}
}
