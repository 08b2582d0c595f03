package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/clone"
)

// cloneCmd represents the clone command
var cloneCmd = &cobra.Command{
	Use:   "clone <repository> [dir]",
	Short: "Clone one of your GitHub repositories",
	Long: `Clone a repository by name. A bare name is looked up among your own
repositories; "owner/name" clones that repository directly. The target
directory defaults to the repository name.

Examples:
  ghflow clone dotfiles
  ghflow clone alice/project ~/src/project`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		target := ""
		if len(args) == 2 {
			target = args[1]
		}

		cred, err := app.credential()
		if err != nil {
			return err
		}

		manager := clone.NewManager(app.resolver, app.service, app.notifier, nil)
		dir, err := manager.Clone(cmd.Context(), cred, args[0], target)
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cloneCmd)
}
