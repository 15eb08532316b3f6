package cmd

import (
	"github.com/spf13/cobra"

	"autorepo/pkg/config"
)

var updateOpts UpdateOptions

var updateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Change the visibility of a GitHub repository",
	Long: `Change the visibility of a repository owned by the authenticated user.
NAME may also be written as OWNER/NAME. Visibility is one of public, private or
internal and defaults to the configured default visibility, private when unset.

Examples:
  autorepo update my-project --visibility public
  autorepo update my-org/my-service --visibility internal`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateOpts.Visibility, "visibility", config.DefaultVisibility, "New visibility: public, private or internal")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	opts := updateOpts
	opts.Name = args[0]

	if !cmd.Flags().Changed("visibility") {
		opts.Visibility = appConfig.Visibility()
	}

	handler, err := newHandler(cmd)
	if err != nil {
		return err
	}
	return handler.Update(cmd.Context(), opts)
}
