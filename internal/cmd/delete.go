package cmd

import (
	"github.com/spf13/cobra"
)

var deleteOpts DeleteOptions

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a GitHub repository",
	Long: `Delete a repository owned by the authenticated user, or by the organization
given with --organization. NAME may also be written as OWNER/NAME.

The repository is deleted immediately, without confirmation. The token needs
the delete_repo scope.

Examples:
  autorepo delete my-project
  autorepo delete my-service -o my-org`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteOpts.Organization, "organization", "o", "", "Organization owning the repository")
}

func runDelete(cmd *cobra.Command, args []string) error {
	opts := deleteOpts
	opts.Name = args[0]

	handler, err := newHandler(cmd)
	if err != nil {
		return err
	}
	return handler.Delete(cmd.Context(), opts)
}
