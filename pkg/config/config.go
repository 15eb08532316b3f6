package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Built-in defaults used when neither a flag nor the config file sets a value.
const (
	DefaultLicense    = "mit"
	DefaultGitignore  = "Python"
	DefaultVisibility = "private"
	DefaultWebURL     = "https://github.com"
	DefaultBackend    = "exec"
	DefaultProtocol   = "https"
	DefaultGitBinary  = "git"
	DefaultLogLevel   = "info"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "AUTOREPO_CONFIG"

// Config represents the autorepo configuration
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Git      GitConfig      `yaml:"git"`
	Log      LogConfig      `yaml:"log"`
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Token      string `yaml:"token,omitempty"`
	User       string `yaml:"user,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	WebURL     string `yaml:"web_url,omitempty"`
	MaxRetries int    `yaml:"max_retries,omitempty"`
}

// DefaultsConfig holds fallback values for command options
type DefaultsConfig struct {
	License    string `yaml:"license,omitempty"`
	Gitignore  string `yaml:"gitignore,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
}

// GitConfig selects how local git operations are performed
type GitConfig struct {
	Backend  string `yaml:"backend,omitempty"`  // exec, go-git
	Protocol string `yaml:"protocol,omitempty"` // https, ssh
	Binary   string `yaml:"binary,omitempty"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration written by `autorepo init`
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			WebURL: DefaultWebURL,
		},
		Defaults: DefaultsConfig{
			License:    DefaultLicense,
			Gitignore:  DefaultGitignore,
			Visibility: DefaultVisibility,
		},
		Git: GitConfig{
			Backend:  DefaultBackend,
			Protocol: DefaultProtocol,
			Binary:   DefaultGitBinary,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold a token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the configuration file path, honoring AUTOREPO_CONFIG
func GetConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".autorepo", "config.yaml"), nil
}

// Validate validates the configuration. Empty values are allowed and
// resolve to the built-in defaults.
func (c *Config) Validate() error {
	switch c.Git.Backend {
	case "", "exec", "go-git":
	default:
		return fmt.Errorf("git backend must be one of: exec, go-git (got %q)", c.Git.Backend)
	}

	switch c.Git.Protocol {
	case "", "https", "ssh":
	default:
		return fmt.Errorf("git protocol must be one of: https, ssh (got %q)", c.Git.Protocol)
	}

	switch c.Defaults.Visibility {
	case "", "public", "private", "internal":
	default:
		return fmt.Errorf("default visibility must be one of: public, private, internal (got %q)", c.Defaults.Visibility)
	}

	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.GitHub.MaxRetries < 0 {
		return fmt.Errorf("github max_retries cannot be negative")
	}

	return nil
}

// License returns the configured default license template
func (c *Config) License() string {
	return orDefault(c.Defaults.License, DefaultLicense)
}

// Gitignore returns the configured default gitignore template
func (c *Config) Gitignore() string {
	return orDefault(c.Defaults.Gitignore, DefaultGitignore)
}

// Visibility returns the configured default visibility
func (c *Config) Visibility() string {
	return orDefault(c.Defaults.Visibility, DefaultVisibility)
}

// WebURL returns the GitHub web host used to build clone URLs
func (c *Config) WebURL() string {
	return orDefault(c.GitHub.WebURL, DefaultWebURL)
}

// Backend returns the git backend name
func (c *Config) Backend() string {
	return orDefault(c.Git.Backend, DefaultBackend)
}

// Protocol returns the clone protocol
func (c *Config) Protocol() string {
	return orDefault(c.Git.Protocol, DefaultProtocol)
}

// GitBinary returns the git executable used by the exec backend
func (c *Config) GitBinary() string {
	return orDefault(c.Git.Binary, DefaultGitBinary)
}

// LogLevel returns the configured log level
func (c *Config) LogLevel() string {
	return orDefault(c.Log.Level, DefaultLogLevel)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
