package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ghflow/pkg/config"
	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/logger"
)

var (
	cfgFile string
	verbose bool
	debug   bool
	quiet   bool
)

var (
	appLoader   *config.Loader
	appSettings *config.Settings
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ghflow",
	Short: "GitHub workflows from the command line",
	Long: `ghflow drives the everyday GitHub workflows around a local repository:

- share a local project as a new GitHub repository
- create pull requests from the current branch
- create gists from files or stdin
- rebase a fork onto its parent
- open files on GitHub in the browser

Credentials are requested when needed, stored in the system keyring, and
invalid TLS certificates can be trusted per host.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.IsCancelled(err) {
			// A declined prompt is not a failure worth printing
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ghflow/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress notifications and non-error output")
}

// initConfig reads the settings file and sets up the global logger
func initConfig() {
	appLoader = config.NewLoader(cfgFile)

	settings, err := appLoader.Load()
	if err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		}
		settings = config.DefaultSettings()
	}
	appSettings = settings

	level := logger.LevelInfo
	if settings.LogLevel != "" {
		level = logger.ParseLevel(settings.LogLevel)
	}
	if verbose || debug {
		level = logger.LevelDebug
	}
	if quiet {
		level = logger.LevelError
	}

	globalLogger, err := logger.New(logger.Config{
		Level:     level,
		Prefix:    "ghflow",
		Timestamp: debug,
	})
	if err != nil {
		globalLogger = logger.NewDefault()
	}
	logger.SetGlobalLogger(globalLogger)
}
