package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/browse"
)

var browseOpts browse.Options

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Open a file on GitHub in the browser",
	Long: `Build the GitHub web URL of a file at the branch the current branch
tracks and open it in the browser. Line numbers become a #L anchor.
With --commit, open the commit page instead.

Examples:
  ghflow browse pkg/auth/resolver.go
  ghflow browse --line 42 main.go
  ghflow browse --line 10 --end-line 20 --print main.go
  ghflow browse --commit 0123abcd`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			browseOpts.Path = args[0]
		}
		browseOpts.Host = app.settings.Host

		manager := browse.NewManager(app.browser, nil)
		url, err := manager.Open(cmd.Context(), browseOpts)
		if err != nil {
			return err
		}
		if browseOpts.Print {
			fmt.Println(url)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().IntVar(&browseOpts.StartLine, "line", 0, "line to anchor to")
	browseCmd.Flags().IntVar(&browseOpts.EndLine, "end-line", 0, "end of the line range")
	browseCmd.Flags().StringVar(&browseOpts.Commit, "commit", "", "open this commit instead of a file")
	browseCmd.Flags().BoolVar(&browseOpts.Print, "print", false, "print the URL instead of opening a browser")
}
