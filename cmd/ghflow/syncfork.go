package main

import (
	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/sync"
)

// syncForkCmd represents the sync-fork command
var syncForkCmd = &cobra.Command{
	Use:   "sync-fork [dir]",
	Short: "Rebase a fork onto its parent repository",
	Long: `Fetch the fork's parent and rebase the current branch onto the parent's
default branch. An "upstream" remote is configured when missing, and local
changes are stashed around the rebase.

Examples:
  ghflow sync-fork
  ghflow sync-fork ~/src/forked-project`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		cred, err := app.credential()
		if err != nil {
			return err
		}

		manager := sync.NewManager(app.resolver, app.service, app.notifier, nil)
		return manager.Rebase(cmd.Context(), cred, dir)
	},
}

func init() {
	rootCmd.AddCommand(syncForkCmd)
}
