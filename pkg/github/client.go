// Package github provides GitHub API integration with rate limiting and
// per-credential client construction.
package github

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

const clientTimeout = 30 * time.Second

// ClientFactory builds go-github clients for concrete credentials. It shares
// the trusted-host set with the auth resolver: once the user accepts a trust
// prompt for a host, clients built for that host skip certificate validation,
// which is what makes the resolver's retry succeed.
type ClientFactory struct {
	trusted *auth.TrustedHosts
}

// NewClientFactory creates a client factory
func NewClientFactory(trusted *auth.TrustedHosts) *ClientFactory {
	if trusted == nil {
		trusted = auth.NewTrustedHosts()
	}
	return &ClientFactory{trusted: trusted}
}

// NewClient builds an API client authenticated as cred
func (f *ClientFactory) NewClient(ctx context.Context, cred auth.Credential) (*github.Client, error) {
	base := f.baseTransport(cred.Host)

	var httpClient *http.Client
	switch cred.Type {
	case auth.AuthTypeAnonymous:
		httpClient = &http.Client{Transport: base, Timeout: clientTimeout}
	case auth.AuthTypeBasic:
		httpClient = &http.Client{
			Transport: &github.BasicAuthTransport{
				Username:  cred.Login,
				Password:  cred.Password,
				Transport: base,
			},
			Timeout: clientTimeout,
		}
	case auth.AuthTypeToken:
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
			Transport: base,
			Timeout:   clientTimeout,
		})
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cred.Token},
		))
	default:
		return nil, fmt.Errorf("unknown auth type %q", cred.Type)
	}

	client := github.NewClient(httpClient)
	if cred.Host != auth.DefaultHost {
		baseURL := fmt.Sprintf("https://%s/api/v3/", cred.Host)
		uploadURL := fmt.Sprintf("https://%s/api/uploads/", cred.Host)
		enterprise, err := client.WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise host %s: %w", cred.Host, err)
		}
		client = enterprise
	}

	return client, nil
}

// baseTransport returns the HTTP transport for a host, disabling certificate
// validation only for hosts the user explicitly trusted.
func (f *ClientFactory) baseTransport(host string) http.RoundTripper {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultTransport
	}

	clone := transport.Clone()
	if f.trusted.Contains(host) {
		if clone.TLSClientConfig == nil {
			clone.TLSClientConfig = &tls.Config{}
		}
		clone.TLSClientConfig.InsecureSkipVerify = true
	}
	return clone
}
