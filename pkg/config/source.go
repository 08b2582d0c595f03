package config

import (
	"os"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/logger"
)

// CredentialSource assembles credentials from the settings file, the
// secret store and the environment, and persists what the user enters.
type CredentialSource struct {
	settings *Settings
	secrets  SecretStore
	loader   *Loader
	log      logger.Interface
}

// NewCredentialSource creates a credential source around loaded settings
func NewCredentialSource(settings *Settings, secrets SecretStore, loader *Loader, log logger.Interface) *CredentialSource {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &CredentialSource{
		settings: settings,
		secrets:  secrets,
		loader:   loader,
		log:      log,
	}
}

// Settings returns the settings backing this source
func (c *CredentialSource) Settings() *Settings {
	return c.settings
}

// Current builds the credential the stored configuration describes.
// GITHUB_TOKEN in the environment wins over everything else.
func (c *CredentialSource) Current() (auth.Credential, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return auth.Token(c.settings.Host, token), nil
	}

	switch auth.ParseAuthType(c.settings.AuthType) {
	case auth.AuthTypeBasic:
		password, err := c.secrets.Get(c.settings.Host, c.settings.Login)
		if err != nil {
			return auth.Credential{}, err
		}
		if password == "" {
			// No stored password, the resolver will prompt
			return auth.Anonymous(c.settings.Host), nil
		}
		return auth.Basic(c.settings.Host, c.settings.Login, password), nil
	case auth.AuthTypeToken:
		token, err := c.secrets.Get(c.settings.Host, c.settings.Login)
		if err != nil {
			return auth.Credential{}, err
		}
		if token == "" {
			return auth.Anonymous(c.settings.Host), nil
		}
		return auth.Token(c.settings.Host, token), nil
	default:
		return auth.Anonymous(c.settings.Host), nil
	}
}

// Store remembers a credential that worked: settings go to the config
// file, the secret goes to the keyring.
func (c *CredentialSource) Store(cred auth.Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}

	c.settings.Host = cred.Host
	c.settings.AuthType = cred.Type.String()
	c.settings.Login = cred.Login

	switch cred.Type {
	case auth.AuthTypeBasic:
		if err := c.secrets.Set(cred.Host, cred.Login, cred.Password); err != nil {
			return err
		}
	case auth.AuthTypeToken:
		if err := c.secrets.Set(cred.Host, cred.Login, cred.Token); err != nil {
			return err
		}
	}

	return c.loader.Save(c.settings)
}

// Forget drops the stored credential and resets auth to anonymous
func (c *CredentialSource) Forget() error {
	if err := c.secrets.Delete(c.settings.Host, c.settings.Login); err != nil {
		return err
	}
	c.settings.AuthType = auth.AuthTypeAnonymous.String()
	c.settings.Login = ""
	return c.loader.Save(c.settings)
}

// TrustedHosts builds the trusted host set from settings and wires it so
// new trust decisions are persisted immediately.
func (c *CredentialSource) TrustedHosts() *auth.TrustedHosts {
	trusted := auth.NewTrustedHosts(c.settings.TrustedHosts...)
	trusted.OnAdd(func(host string) {
		c.settings.TrustedHosts = trusted.Snapshot()
		if err := c.loader.Save(c.settings); err != nil {
			c.log.Warn("can't persist trusted host %s: %v", host, err)
		}
	})
	return trusted
}
