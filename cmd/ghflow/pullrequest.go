package main

import (
	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/pr"
)

var prOpts pr.CreateOptions

// pullRequestCmd represents the pull-request command
var pullRequestCmd = &cobra.Command{
	Use:     "pull-request [dir]",
	Aliases: []string{"pr"},
	Short:   "Push the current branch and open a pull request",
	Long: `Push the current branch to its GitHub remote and create a pull request.
The target defaults to the parent repository's default branch for forks.

The --base target accepts "owner:branch"; the owning repository is resolved
from fork metadata, known branches and, as a last resort, the API.

Examples:
  ghflow pull-request --title "Fix login retry"
  ghflow pr --base upstream-owner:develop`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		prOpts.Dir = "."
		if len(args) == 1 {
			prOpts.Dir = args[0]
		}

		cred, err := app.credential()
		if err != nil {
			return err
		}

		manager := pr.NewManager(app.resolver, app.service, app.notifier, app.settings, nil)
		_, err = manager.Create(cmd.Context(), cred, prOpts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(pullRequestCmd)

	pullRequestCmd.Flags().StringVar(&prOpts.Title, "title", "", "pull request title (default: branch name)")
	pullRequestCmd.Flags().StringVar(&prOpts.Body, "body", "", "pull request body")
	pullRequestCmd.Flags().StringVar(&prOpts.Target, "base", "", "target as owner:branch")
}
