package config

import (
	"github.com/zalando/go-keyring"

	"github.com/fumiya-kume/ghflow/pkg/errors"
)

const keyringService = "ghflow"

// SecretStore keeps passwords and tokens out of the config file
type SecretStore interface {
	// Get returns the secret for a host and login. A missing secret is
	// an empty string, not an error.
	Get(host, login string) (string, error)
	Set(host, login, secret string) error
	Delete(host, login string) error
}

// KeyringStore stores secrets in the operating system keyring
type KeyringStore struct{}

// NewKeyringStore creates a keyring-backed secret store
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func keyringUser(host, login string) string {
	if login == "" {
		return host
	}
	return login + "@" + host
}

func (k *KeyringStore) Get(host, login string) (string, error) {
	secret, err := keyring.Get(keyringService, keyringUser(host, login))
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", nil
		}
		return "", errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("can't read secret from keyring").
			WithCause(err).
			WithContext("host", host).
			Build()
	}
	return secret, nil
}

func (k *KeyringStore) Set(host, login, secret string) error {
	if err := keyring.Set(keyringService, keyringUser(host, login), secret); err != nil {
		return errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("can't store secret in keyring").
			WithCause(err).
			WithContext("host", host).
			Build()
	}
	return nil
}

func (k *KeyringStore) Delete(host, login string) error {
	err := keyring.Delete(keyringService, keyringUser(host, login))
	if err != nil && err != keyring.ErrNotFound {
		return errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("can't delete secret from keyring").
			WithCause(err).
			WithContext("host", host).
			Build()
	}
	return nil
}

// MemoryStore is an in-process secret store for tests and for systems
// without a keyring daemon.
type MemoryStore struct {
	secrets map[string]string
}

// NewMemoryStore creates an empty in-memory secret store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[string]string)}
}

func (m *MemoryStore) Get(host, login string) (string, error) {
	return m.secrets[keyringUser(host, login)], nil
}

func (m *MemoryStore) Set(host, login, secret string) error {
	m.secrets[keyringUser(host, login)] = secret
	return nil
}

func (m *MemoryStore) Delete(host, login string) error {
	delete(m.secrets, keyringUser(host, login))
	return nil
}
