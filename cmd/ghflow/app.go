package main

import (
	"os"

	"github.com/cli/go-gh/v2/pkg/browser"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/config"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/notify"
)

// app bundles the wired-up services the subcommands run against
type app struct {
	settings *config.Settings
	source   *config.CredentialSource
	prompter *terminalPrompter
	resolver *auth.Resolver
	service  *ghub.Service
	notifier *notify.Notifier
	browser  *browser.Browser
}

// newApp assembles the application from the loaded settings
func newApp() (*app, error) {
	settings := appSettings
	loader := appLoader
	if settings == nil {
		loader = config.NewLoader(cfgFile)
		loaded, err := loader.Load()
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	source := config.NewCredentialSource(settings, config.NewKeyringStore(), loader, nil)
	trusted := source.TrustedHosts()

	prompter := newTerminalPrompter(settings, os.Stdin, os.Stderr)
	resolver := auth.NewResolver(prompter, prompter, trusted, nil)

	factory := ghub.NewClientFactory(trusted)
	service := ghub.NewService(factory, nil)

	launcher := browser.New("", os.Stdout, os.Stderr)

	return &app{
		settings: settings,
		source:   source,
		prompter: prompter,
		resolver: resolver,
		service:  service,
		notifier: notify.New(quiet, nil),
		browser:  launcher,
	}, nil
}

// credential returns the stored credential, falling back to anonymous
func (a *app) credential() (auth.Credential, error) {
	return a.source.Current()
}
