// Package auth implements the credential model and the authenticated-access
// resolver used by every GitHub workflow: it runs an API operation with the
// stored credential, escalates to a login prompt when the credential is
// rejected and to a trust prompt when TLS certificate validation fails.
package auth

import (
	"strings"

	"github.com/fumiya-kume/ghflow/pkg/errors"
)

// DefaultHost is the hostname used when no GitHub Enterprise host is configured.
const DefaultHost = "github.com"

// AuthType identifies how a credential authenticates against the API.
// The variant set is closed; switches over it should be exhaustive.
type AuthType int

const (
	// AuthTypeAnonymous carries no secret and is never sent to the network
	AuthTypeAnonymous AuthType = iota

	// AuthTypeBasic authenticates with login and password
	AuthTypeBasic

	// AuthTypeToken authenticates with a personal access token
	AuthTypeToken
)

// String returns a string representation of the auth type
func (at AuthType) String() string {
	switch at {
	case AuthTypeAnonymous:
		return "anonymous"
	case AuthTypeBasic:
		return "basic"
	case AuthTypeToken:
		return "token"
	default:
		return "unknown"
	}
}

// ParseAuthType converts a persisted name back to an AuthType
func ParseAuthType(s string) AuthType {
	switch strings.ToLower(s) {
	case "basic":
		return AuthTypeBasic
	case "token":
		return AuthTypeToken
	default:
		return AuthTypeAnonymous
	}
}

// Credential is a tagged union over anonymous, basic and token authentication.
// Exactly one shape is active, selected by Type; the constructors below keep
// the unused fields empty.
type Credential struct {
	Host  string
	Type  AuthType
	Login string
	// Password is set only for AuthTypeBasic
	Password string
	// Token is set only for AuthTypeToken
	Token string
}

// Anonymous creates a credential that carries no secret
func Anonymous(host string) Credential {
	return Credential{Host: normalizeHost(host), Type: AuthTypeAnonymous}
}

// Basic creates a login/password credential
func Basic(host, login, password string) Credential {
	return Credential{
		Host:     normalizeHost(host),
		Type:     AuthTypeBasic,
		Login:    login,
		Password: password,
	}
}

// Token creates a personal-access-token credential
func Token(host, token string) Credential {
	return Credential{
		Host:  normalizeHost(host),
		Type:  AuthTypeToken,
		Token: token,
	}
}

// IsAnonymous reports whether the credential carries no secret
func (c Credential) IsAnonymous() bool {
	return c.Type == AuthTypeAnonymous
}

// Validate enforces the tagged-union invariant: a host is always required,
// the active shape has its fields set and the inactive shapes are empty.
func (c Credential) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.ValidationError("target host not defined")
	}

	switch c.Type {
	case AuthTypeAnonymous:
		if c.Login != "" || c.Password != "" || c.Token != "" {
			return errors.ValidationError("anonymous credential must not carry secrets")
		}
	case AuthTypeBasic:
		if strings.TrimSpace(c.Login) == "" || strings.TrimSpace(c.Password) == "" {
			return errors.ValidationError("empty login or password")
		}
		if c.Token != "" {
			return errors.ValidationError("basic credential must not carry a token")
		}
	case AuthTypeToken:
		if strings.TrimSpace(c.Token) == "" {
			return errors.ValidationError("empty token")
		}
		if c.Login != "" || c.Password != "" {
			return errors.ValidationError("token credential must not carry login or password")
		}
	default:
		return errors.ValidationError("unknown auth type")
	}

	return nil
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")
	if host == "" {
		return DefaultHost
	}
	return strings.ToLower(host)
}
