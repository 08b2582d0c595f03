package main

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v60/github"
	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/auth"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with GitHub and store the credential",
	Long: `Prompt for a token or login/password, verify it against the API and
store it: the secret in the system keyring, everything else in the config
file.

Examples:
  ghflow login
  GHFLOW_HOST=ghe.example.com ghflow login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		cred, err := app.prompter.PromptCredential(ctx, app.settings.Host)
		if err != nil {
			return err
		}

		user, cred, err := auth.Run(ctx, app.resolver, cred, func(ctx context.Context, cred auth.Credential) (*gh.User, error) {
			return app.service.CurrentUser(ctx, cred)
		})
		if err != nil {
			return err
		}

		if err := app.source.Store(cred); err != nil {
			return err
		}

		fmt.Printf("Logged in to %s as %s\n", cred.Host, user.GetLogin())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.source.Forget(); err != nil {
			return err
		}
		fmt.Printf("Logged out of %s\n", app.settings.Host)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
