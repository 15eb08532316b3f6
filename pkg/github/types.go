package github

import "time"

// Repository describes a GitHub repository as returned by create, update and
// lookup calls. It is transient: nothing in autorepo stores it.
type Repository struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	FullName          string    `json:"full_name"`
	Owner             string    `json:"owner"`
	Description       string    `json:"description"`
	LicenseTemplate   string    `json:"license_template,omitempty"`
	GitignoreTemplate string    `json:"gitignore_template,omitempty"`
	Organization      string    `json:"organization,omitempty"`
	Private           bool      `json:"private"`
	Visibility        string    `json:"visibility"`
	CloneURL          string    `json:"clone_url"`
	SSHURL            string    `json:"ssh_url"`
	HTMLURL           string    `json:"html_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TokenInfo contains information about the authenticated token
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}

// Visibility values accepted by the GitHub API
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityInternal = "internal"
)
