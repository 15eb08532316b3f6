package cmd

import (
	"github.com/spf13/cobra"

	"autorepo/pkg/config"
	"autorepo/pkg/repo"
)

var createOpts CreateOptions

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a GitHub repository",
	Long: `Create a repository on GitHub and, by default, clone it into the current
directory.

With --existing the current directory is initialized as a git repository and
the new repository is added as its origin remote instead. With --no-clone the
repository is only created on GitHub; --no-clone wins over --existing.

The license and gitignore templates default to the values in the autorepo
config, or mit and Python when unset.

Examples:
  autorepo create my-project
  autorepo create my-project --private --description "Internal tooling"
  autorepo create my-service -o my-org -l apache-2.0 -g Go --no-clone
  autorepo create my-project --existing`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVarP(&createOpts.NoClone, "no-clone", "n", false, "Only create the repository on GitHub")
	createCmd.Flags().StringVarP(&createOpts.Organization, "organization", "o", "", "Create the repository in this organization")
	createCmd.Flags().BoolVarP(&createOpts.Private, "private", "p", false, "Make the repository private")
	createCmd.Flags().BoolVarP(&createOpts.Existing, "existing", "e", false, "Link the current directory to the new repository")
	createCmd.Flags().StringVarP(&createOpts.Description, "description", "d", "", "Repository description")
	createCmd.Flags().StringVarP(&createOpts.License, "license", "l", config.DefaultLicense, "License template")
	createCmd.Flags().StringVarP(&createOpts.Gitignore, "gitignore", "g", config.DefaultGitignore, "Gitignore template")
}

func runCreate(cmd *cobra.Command, args []string) error {
	opts := createOpts
	opts.Name = args[0]
	opts.SSH = appConfig.Protocol() == repo.ProtocolSSH

	if !cmd.Flags().Changed("license") {
		opts.License = appConfig.License()
	}
	if !cmd.Flags().Changed("gitignore") {
		opts.Gitignore = appConfig.Gitignore()
	}

	handler, err := newHandler(cmd)
	if err != nil {
		return err
	}
	return handler.Create(cmd.Context(), opts)
}
