package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// GlobalConfigPath returns the location of the user's ~/.gitconfig
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gitconfig"), nil
}

// ReadGitHubUser returns `github.user` from the gitconfig file at path.
// A missing file or key yields an empty string.
func ReadGitHubUser(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		AllowBooleanKeys:    true,
		IgnoreInlineComment: true,
		AllowShadows:        true,
	}, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	section, err := cfg.GetSection("github")
	if err != nil {
		return "", nil
	}

	return strings.TrimSpace(section.Key("user").String()), nil
}
