package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/gist"
)

var gistOpts gist.Options

// gistCmd represents the gist command
var gistCmd = &cobra.Command{
	Use:   "gist [path...]",
	Short: "Create a gist from files or stdin",
	Long: `Create a gist from the given files and directories, or from stdin when
no paths are given. Defaults for visibility, anonymity and opening the
browser come from the config file.

Examples:
  ghflow gist main.go
  ghflow gist --name snippet.sql --description "slow query" < query.sql
  ghflow gist --public ./examples`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		gistOpts.Paths = args
		gistOpts.Stdin = os.Stdin

		// Flags win over configured defaults
		if cmd.Flags().Changed("public") {
			gistOpts.Private = !gistPublic
		} else {
			gistOpts.Private = app.settings.PrivateGist
		}
		if !cmd.Flags().Changed("anonymous") {
			gistOpts.Anonymous = app.settings.AnonymousGist
		}
		if !cmd.Flags().Changed("browser") {
			gistOpts.OpenBrowser = app.settings.OpenBrowserGist
		}
		if quiet {
			gistOpts.OpenBrowser = false
		}

		cred, err := app.credential()
		if err != nil {
			return err
		}

		manager := gist.NewManager(app.resolver, app.service, app.notifier, app.browser, nil)
		_, err = manager.Create(cmd.Context(), cred, gistOpts)
		return err
	},
}

var gistPublic bool

func init() {
	rootCmd.AddCommand(gistCmd)

	gistCmd.Flags().StringVar(&gistOpts.Name, "name", "", "file name when the gist holds a single file")
	gistCmd.Flags().StringVar(&gistOpts.Description, "description", "", "gist description")
	gistCmd.Flags().BoolVar(&gistPublic, "public", false, "create a public gist")
	gistCmd.Flags().BoolVar(&gistOpts.Anonymous, "anonymous", false, "create the gist anonymously")
	gistCmd.Flags().BoolVar(&gistOpts.OpenBrowser, "browser", false, "open the created gist in the browser")
}
