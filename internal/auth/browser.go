// Package auth holds the interactive pieces of `autorepo auth login`.
package auth

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// BrowserOpener defines the interface for opening URLs in the default browser
type BrowserOpener interface {
	Open(url string) error
}

// DefaultBrowserOpener implements cross-platform browser opening
type DefaultBrowserOpener struct {
	goos    string
	command func(name string, args ...string) *exec.Cmd
}

// NewBrowserOpener creates a new browser opener instance
func NewBrowserOpener() *DefaultBrowserOpener {
	return &DefaultBrowserOpener{
		goos:    runtime.GOOS,
		command: exec.Command,
	}
}

// Open opens the specified URL in the default browser
func (b *DefaultBrowserOpener) Open(url string) error {
	var cmd *exec.Cmd

	switch b.goos {
	case "darwin":
		cmd = b.command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = b.command("xdg-open", url)
	case "windows":
		cmd = b.command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", b.goos)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	// Reap the launcher without waiting on the browser itself
	go func() { _ = cmd.Wait() }()

	return nil
}

// NewTokenURL returns the GitHub page that creates a classic personal access
// token with the given scopes preselected
func NewTokenURL(webURL string, scopes []string) (string, error) {
	base, err := url.Parse(strings.TrimRight(webURL, "/"))
	if err != nil || base.Host == "" {
		return "", fmt.Errorf("invalid GitHub web URL %q", webURL)
	}

	base.Path += "/settings/tokens/new"
	query := url.Values{}
	query.Set("description", "autorepo")
	if len(scopes) > 0 {
		query.Set("scopes", strings.Join(scopes, ","))
	}
	base.RawQuery = query.Encode()

	return base.String(), nil
}
