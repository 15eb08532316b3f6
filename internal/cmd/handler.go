package cmd

import (
	"context"
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"

	"autorepo/pkg/repo"
)

// Outcome messages, one per command step
const (
	msgCloned             = "Repository cloned successfully"
	msgCreated            = "Repository created successfully"
	msgCreatedInitialized = "Repository created and initialized successfully"
	msgCreatedCloned      = "Repository created and cloned successfully"
	msgDeleted            = "Repository deleted successfully"
	msgUpdated            = "Repository updated successfully"

	msgCloneFailed  = "Failed to clone the repository"
	msgCreateFailed = "Failed to create the repository"
	msgInitFailed   = "Failed to initialize the repository"
	msgRemoteFailed = "Failed to add the remote"
	msgDeleteFailed = "Failed to delete the repository"
	msgUpdateFailed = "Failed to update the repository"
)

// CloneOptions are the inputs of `autorepo clone`
type CloneOptions struct {
	URL  string
	User string
	Repo string
}

// CreateOptions are the inputs of `autorepo create`
type CreateOptions struct {
	Name         string
	NoClone      bool
	Organization string
	Private      bool
	Existing     bool
	Description  string
	License      string
	Gitignore    string
	// SSH clones or links the new repository over ssh instead of https
	SSH bool
}

// DeleteOptions are the inputs of `autorepo delete`
type DeleteOptions struct {
	Name         string
	Organization string
}

// UpdateOptions are the inputs of `autorepo update`
type UpdateOptions struct {
	Name       string
	Visibility string
}

// Handler maps repository operations to one success or failure message
type Handler struct {
	ops    repo.Operations
	out    io.Writer
	errOut io.Writer
}

// NewHandler creates a Handler printing successes to out and failures to errOut
func NewHandler(ops repo.Operations, out, errOut io.Writer) *Handler {
	return &Handler{ops: ops, out: out, errOut: errOut}
}

// Clone clones the repository named by opts
func (h *Handler) Clone(ctx context.Context, opts CloneOptions) error {
	result := h.ops.CloneRepo(ctx, repo.CloneTarget{URL: opts.URL, User: opts.User, Repo: opts.Repo})
	if !result.Ok() {
		return h.fail(msgCloneFailed, result.Err())
	}
	return h.succeed(msgCloned)
}

// Create creates a repository, then clones it, links the current directory
// to it, or leaves it remote-only. Steps that already succeeded are never
// undone.
func (h *Handler) Create(ctx context.Context, opts CreateOptions) error {
	created := h.ops.CreateRepo(ctx, repo.CreateOptions{
		Name:         opts.Name,
		Description:  opts.Description,
		License:      opts.License,
		Gitignore:    opts.Gitignore,
		Organization: opts.Organization,
		Private:      opts.Private,
	})
	if !created.Ok() || created.Value() == nil {
		return h.fail(msgCreateFailed, created.Err())
	}

	cloneURL := created.Value().CloneURL
	if opts.SSH && created.Value().SSHURL != "" {
		cloneURL = created.Value().SSHURL
	}

	switch {
	case opts.NoClone:
		return h.succeed(msgCreated)

	case opts.Existing:
		if result := h.ops.InitRepo(ctx); !result.Ok() {
			return h.fail(msgInitFailed, result.Err())
		}
		if result := h.ops.AddRemote(ctx, cloneURL); !result.Ok() {
			return h.fail(msgRemoteFailed, result.Err())
		}
		return h.succeed(msgCreatedInitialized)

	default:
		// An empty URL would make CloneRepo fall back to the picker
		if cloneURL == "" {
			return h.fail(msgCloneFailed, fmt.Errorf("created repository %s has no clone URL", created.Value().Name))
		}
		if result := h.ops.CloneRepo(ctx, repo.CloneTarget{URL: cloneURL}); !result.Ok() {
			return h.fail(msgCloneFailed, result.Err())
		}
		return h.succeed(msgCreatedCloned)
	}
}

// Delete deletes a repository
func (h *Handler) Delete(ctx context.Context, opts DeleteOptions) error {
	result := h.ops.DeleteRepo(ctx, opts.Name, opts.Organization)
	if !result.Ok() {
		return h.fail(msgDeleteFailed, result.Err())
	}
	logger.Debugf("Deleted %s", result.Value())
	return h.succeed(msgDeleted)
}

// Update changes the visibility of a repository
func (h *Handler) Update(ctx context.Context, opts UpdateOptions) error {
	result := h.ops.UpdateRepo(ctx, opts.Name, opts.Visibility)
	if !result.Ok() {
		return h.fail(msgUpdateFailed, result.Err())
	}
	return h.succeed(msgUpdated)
}

func (h *Handler) succeed(message string) error {
	fmt.Fprintln(h.out, message)
	return nil
}

func (h *Handler) fail(message string, cause error) error {
	if cause != nil {
		logger.Debugf("%s: %v", message, cause)
	}
	fmt.Fprintln(h.errOut, message)
	return ErrCommandFailed
}
