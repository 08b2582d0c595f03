package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthTypeString(t *testing.T) {
	assert.Equal(t, "anonymous", AuthTypeAnonymous.String())
	assert.Equal(t, "basic", AuthTypeBasic.String())
	assert.Equal(t, "token", AuthTypeToken.String())
	assert.Equal(t, "unknown", AuthType(99).String())
}

func TestParseAuthTypeRoundTrip(t *testing.T) {
	for _, at := range []AuthType{AuthTypeAnonymous, AuthTypeBasic, AuthTypeToken} {
		assert.Equal(t, at, ParseAuthType(at.String()))
	}
	assert.Equal(t, AuthTypeAnonymous, ParseAuthType(""))
	assert.Equal(t, AuthTypeAnonymous, ParseAuthType("bogus"))
}

func TestCredentialConstructors(t *testing.T) {
	anon := Anonymous("")
	assert.Equal(t, DefaultHost, anon.Host)
	assert.True(t, anon.IsAnonymous())
	assert.NoError(t, anon.Validate())

	basic := Basic("GHE.Corp", "alice", "pw")
	assert.Equal(t, "ghe.corp", basic.Host)
	assert.NoError(t, basic.Validate())

	token := Token("https://ghe.corp/", "tkn")
	assert.Equal(t, "ghe.corp", token.Host)
	assert.NoError(t, token.Validate())
}

func TestCredentialValidate(t *testing.T) {
	tests := []struct {
		name    string
		cred    Credential
		wantErr bool
	}{
		{"valid anonymous", Anonymous("github.com"), false},
		{"valid basic", Basic("github.com", "alice", "pw"), false},
		{"valid token", Token("github.com", "tkn"), false},
		{"empty host", Credential{Type: AuthTypeToken, Token: "tkn"}, true},
		{"basic without password", Credential{Host: "github.com", Type: AuthTypeBasic, Login: "alice"}, true},
		{"basic without login", Credential{Host: "github.com", Type: AuthTypeBasic, Password: "pw"}, true},
		{"token without token", Credential{Host: "github.com", Type: AuthTypeToken}, true},
		{"anonymous carrying a secret", Credential{Host: "github.com", Type: AuthTypeAnonymous, Token: "leak"}, true},
		{"token carrying basic fields", Credential{Host: "github.com", Type: AuthTypeToken, Token: "tkn", Login: "alice"}, true},
		{"basic carrying a token", Credential{Host: "github.com", Type: AuthTypeBasic, Login: "a", Password: "b", Token: "tkn"}, true},
		{"unknown type", Credential{Host: "github.com", Type: AuthType(42)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cred.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, "github.com", normalizeHost("  https://GitHub.com/ "))
	assert.Equal(t, "ghe.corp", normalizeHost("http://ghe.corp"))
	assert.Equal(t, DefaultHost, normalizeHost(""))
}
