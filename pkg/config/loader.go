package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fumiya-kume/ghflow/pkg/errors"
)

// Loader reads and writes the settings file
type Loader struct {
	configPath string
}

// NewLoader creates a loader. An empty path means the default location.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load reads settings from the config file. A missing file is not an
// error, defaults are returned.
func (l *Loader) Load() (*Settings, error) {
	settings := DefaultSettings()

	if l.configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		l.configPath = path
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			settings.ApplyEnvironmentOverrides()
			return settings, nil
		}
		return nil, errors.NewError(errors.ErrorTypeConfiguration).
			WithMessagef("can't read config file %s", l.configPath).
			WithCause(err).
			Build()
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.NewError(errors.ErrorTypeConfiguration).
			WithMessagef("can't parse config file %s", l.configPath).
			WithCause(err).
			Build()
	}

	settings.ApplyEnvironmentOverrides()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes the settings file, creating its directory when needed
func (l *Loader) Save(settings *Settings) error {
	if l.configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		l.configPath = path
	}

	if err := os.MkdirAll(filepath.Dir(l.configPath), 0750); err != nil {
		return errors.NewError(errors.ErrorTypeConfiguration).
			WithMessagef("can't create config directory for %s", l.configPath).
			WithCause(err).
			Build()
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("can't marshal settings").
			WithCause(err).
			Build()
	}

	if err := os.WriteFile(l.configPath, data, 0600); err != nil {
		return errors.NewError(errors.ErrorTypeConfiguration).
			WithMessagef("can't write config file %s", l.configPath).
			WithCause(err).
			Build()
	}
	return nil
}

// ConfigPath returns the file path the loader resolved to
func (l *Loader) ConfigPath() string {
	return l.configPath
}
