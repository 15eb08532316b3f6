package cmd

import (
	"github.com/spf13/cobra"
)

var cloneOpts CloneOptions

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone a GitHub repository",
	Long: `Clone a repository into the current directory.

The repository is given either as a full clone URL or as a user and repository
name. Without --user the owner comes from github.user in the autorepo config,
then from the [github] user entry of ~/.gitconfig, then from the authenticated
account. Without --repo an interactive terminal offers a fuzzy picker over the
owner's repositories.

Examples:
  autorepo clone --url https://github.com/octocat/hello-world.git
  autorepo clone --user octocat --repo hello-world
  autorepo clone -r my-project`,
	Args: cobra.NoArgs,
	RunE: runClone,
}

func init() {
	cloneCmd.Flags().StringVar(&cloneOpts.URL, "url", "", "Clone URL of the repository")
	cloneCmd.Flags().StringVarP(&cloneOpts.User, "user", "u", "", "Owner of the repository")
	cloneCmd.Flags().StringVarP(&cloneOpts.Repo, "repo", "r", "", "Name of the repository")
}

func runClone(cmd *cobra.Command, _ []string) error {
	handler, err := newHandler(cmd)
	if err != nil {
		return err
	}
	return handler.Clone(cmd.Context(), cloneOpts)
}
