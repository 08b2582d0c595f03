package main

import (
	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/share"
)

var shareOpts share.Options

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share [dir]",
	Short: "Share a local project as a new GitHub repository",
	Long: `Create a GitHub repository for the project, add it as a remote and push
the current branch. A directory without a git repository is initialized and
gets a first commit.

Examples:
  ghflow share
  ghflow share --private --name my-project ~/src/my-project`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		shareOpts.Dir = "."
		if len(args) == 1 {
			shareOpts.Dir = args[0]
		}

		cred, err := app.credential()
		if err != nil {
			return err
		}

		manager := share.NewManager(app.resolver, app.service, app.notifier, nil)
		_, err = manager.Share(cmd.Context(), cred, shareOpts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)

	shareCmd.Flags().StringVar(&shareOpts.Name, "name", "", "repository name (default: directory name)")
	shareCmd.Flags().StringVar(&shareOpts.Description, "description", "", "repository description")
	shareCmd.Flags().BoolVar(&shareOpts.Private, "private", false, "create a private repository")
	shareCmd.Flags().StringVar(&shareOpts.CommitMessage, "message", "", "message of the first commit")
}
