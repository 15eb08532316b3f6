package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"autorepo/pkg/config"
)

// ErrCommandFailed is returned by a command that already reported its
// failure to the user
var ErrCommandFailed = errors.New("command failed")

var (
	configPath string
	verbose    bool

	// appConfig is loaded before any subcommand runs
	appConfig = &config.Config{}
)

var rootCmd = &cobra.Command{
	Use:   "autorepo",
	Short: "Manage GitHub repositories from the command line",
	Long: `autorepo clones, creates, deletes and changes the visibility of GitHub
repositories. It talks to the GitHub API with your personal access token and
drives git locally for clones and remotes.`,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command and exits 1 on failure. Interrupting the
// process cancels the running operation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, ErrCommandFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $AUTOREPO_CONFIG or ~/.autorepo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug details, including the underlying error of a failed operation")

	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(initCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	// Arguments are valid by now, so usage no longer helps
	cmd.SilenceUsage = true

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel(), verbose); err != nil {
		return err
	}

	appConfig = cfg
	logger.Debugf("Loaded configuration (git backend %s, protocol %s)", cfg.Backend(), cfg.Protocol())

	return nil
}

func setupLogging(out io.Writer, level string, debug bool) error {
	logger.SetOutput(out)
	logger.SetFormatter(&logger.TextFormatter{
		DisableTimestamp: true,
	})

	if debug {
		logger.SetLevel(logger.DebugLevel)
		return nil
	}

	parsed, err := logger.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(parsed)

	return nil
}
