// Package config provides persistent settings and credential storage for
// ghflow. Non-secret settings live in a YAML file under the user's config
// directory; passwords and tokens go to the system keyring.
package config

import (
	"os"
	"path/filepath"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/errors"
)

// Settings holds the non-secret, user-editable configuration
type Settings struct {
	// Host is the GitHub instance to talk to, github.com or an
	// enterprise hostname.
	Host string `yaml:"host"`

	// AuthType selects how requests are authenticated: "anonymous",
	// "basic" or "token".
	AuthType string `yaml:"auth_type"`

	// Login is the account name used for basic auth and remembered for
	// prompts.
	Login string `yaml:"login,omitempty"`

	// TrustedHosts are hostnames the user chose to trust despite an
	// invalid TLS certificate.
	TrustedHosts []string `yaml:"trusted_hosts,omitempty"`

	// PrivateGist makes new gists secret by default
	PrivateGist bool `yaml:"private_gist"`

	// AnonymousGist creates gists without authentication
	AnonymousGist bool `yaml:"anonymous_gist"`

	// OpenBrowserGist opens a created gist in the browser
	OpenBrowserGist bool `yaml:"open_browser_gist"`

	// PullRequestDefaultBranch is the base branch offered when creating
	// a pull request, empty means the target repository's default.
	PullRequestDefaultBranch string `yaml:"pull_request_default_branch,omitempty"`

	// LogLevel controls logging verbosity: debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultSettings returns the settings used when no config file exists
func DefaultSettings() *Settings {
	return &Settings{
		Host:            auth.DefaultHost,
		AuthType:        auth.AuthTypeAnonymous.String(),
		PrivateGist:     true,
		OpenBrowserGist: true,
	}
}

// Validate checks the settings for values that can't be acted on
func (s *Settings) Validate() error {
	if s.Host == "" {
		return errors.ValidationError("host cannot be empty")
	}
	switch s.AuthType {
	case auth.AuthTypeAnonymous.String(), auth.AuthTypeBasic.String(), auth.AuthTypeToken.String():
	default:
		return errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("unknown auth_type %q", s.AuthType).
			Build()
	}
	if s.AuthType == auth.AuthTypeBasic.String() && s.Login == "" {
		return errors.ValidationError("basic auth requires a login")
	}
	return nil
}

// ApplyEnvironmentOverrides lets environment variables win over the file
func (s *Settings) ApplyEnvironmentOverrides() {
	if host := os.Getenv("GHFLOW_HOST"); host != "" {
		s.Host = host
	}
	if level := os.Getenv("GHFLOW_LOG_LEVEL"); level != "" {
		s.LogLevel = level
	}
}

// DefaultConfigPath returns ~/.config/ghflow/config.yaml
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("can't determine home directory").
			WithCause(err).
			Build()
	}
	return filepath.Join(homeDir, ".config", "ghflow", "config.yaml"), nil
}
