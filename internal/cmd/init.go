package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"autorepo/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize autorepo configuration",
	Long:  "Create a default configuration file for autorepo",
	Args:  cobra.NoArgs,
	// An existing but broken config must not prevent rewriting it
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		return setupLogging(cmd.ErrOrStderr(), config.DefaultLogLevel, verbose)
	},
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "⚠️  Configuration file already exists at: %s\n", path)
		fmt.Fprint(out, "Do you want to overwrite it? (y/N): ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Configuration initialization cancelled.")
			return nil
		}
	}

	var err error
	if configPath == "" {
		err = config.Default().SaveConfig()
	} else {
		err = config.Default().SaveConfigToPath(configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "✅ Configuration file created at: %s\n", path)
	fmt.Fprintln(out, "📝 Set github.user and your template defaults, then run 'autorepo auth login'.")

	return nil
}
