package auth

import (
	"context"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/logger"
)

// maxAttempts is the hard ceiling on network attempts for a single Run call:
// the original try, a retry after a trust grant, a retry after re-login and a
// trust-grant retry for the freshly entered host.
const maxAttempts = 4

// ErrCancelled is returned by prompters when the user dismisses a prompt.
var ErrCancelled = errors.CancelledError("can't get valid credentials")

// CredentialPrompter obtains a fresh credential from the user. Implementations
// return ErrCancelled (or an error wrapping it) when the user backs out.
type CredentialPrompter interface {
	PromptCredential(ctx context.Context, host string) (Credential, error)
}

// TrustPrompter asks the user whether to proceed against a host whose TLS
// certificate failed validation.
type TrustPrompter interface {
	ConfirmTrust(ctx context.Context, host string) bool
}

// Operation is a network call executed with a concrete credential.
type Operation[T any] func(ctx context.Context, cred Credential) (T, error)

// Resolver produces a valid credential for API access, escalating through the
// login prompt on rejection and the trust prompt on certificate failure.
// It holds no credential state itself; the credential to start from is passed
// into every Run call and a replacement is only obtained via the prompter.
type Resolver struct {
	prompter CredentialPrompter
	trust    TrustPrompter
	trusted  *TrustedHosts
	log      logger.Interface
}

// NewResolver creates a resolver. All collaborators are required; trusted is
// shared with the HTTP client factory so that a granted trust decision takes
// effect on the retried attempt.
func NewResolver(prompter CredentialPrompter, trust TrustPrompter, trusted *TrustedHosts, log logger.Interface) *Resolver {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Resolver{
		prompter: prompter,
		trust:    trust,
		trusted:  trusted,
		log:      log,
	}
}

// TrustedHosts exposes the shared trusted-host set
func (r *Resolver) TrustedHosts() *TrustedHosts {
	return r.trusted
}

// Run executes op with a valid credential, starting from initial.
//
// Anonymous credentials are never sent to the network; they trigger the login
// prompt immediately. An authentication failure is recovered once by
// re-prompting; a second one is returned verbatim. A certificate failure for
// an untrusted host triggers the trust prompt: accepting records the host
// (exactly once, the set is idempotent) and retries with the same credential,
// declining propagates the original error unchanged. A certificate failure
// for a host that is already trusted, and any other error, propagate
// immediately; generic I/O retry is out of scope here.
//
// On success Run returns the operation's value together with the credential
// that worked, so callers can reuse it for follow-up calls without touching
// persisted settings.
func Run[T any](ctx context.Context, r *Resolver, initial Credential, op Operation[T]) (T, Credential, error) {
	var zero T

	cred := initial
	prompted := false

	if cred.IsAnonymous() {
		r.log.Debug("stored credential is anonymous, asking for login")
		fresh, err := r.prompter.PromptCredential(ctx, cred.Host)
		if err != nil {
			return zero, cred, err
		}
		cred = fresh
		prompted = true
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		value, err := op(ctx, cred)
		if err == nil {
			return value, cred, nil
		}
		lastErr = err

		switch {
		case IsCertificateError(err):
			host := cred.Host
			if r.trusted.Contains(host) {
				// trusting did not help, nothing further to escalate
				return zero, cred, err
			}
			if !r.trust.ConfirmTrust(ctx, host) {
				return zero, cred, err
			}
			r.log.Info("proceeding without certificate validation for %s", host)
			r.trusted.Add(host)

		case IsAuthenticationError(err):
			if prompted {
				return zero, cred, err
			}
			r.log.Debug("credential rejected, asking for login")
			fresh, perr := r.prompter.PromptCredential(ctx, cred.Host)
			if perr != nil {
				return zero, cred, perr
			}
			cred = fresh
			prompted = true

		default:
			return zero, cred, err
		}
	}

	// attempt budget exhausted: one original try, one trust retry, one
	// re-login and one trust retry for the re-entered host
	return zero, cred, lastErr
}

// RunNoResult executes an operation that yields no value.
func RunNoResult(ctx context.Context, r *Resolver, initial Credential, op func(ctx context.Context, cred Credential) error) (Credential, error) {
	_, cred, err := Run(ctx, r, initial, func(ctx context.Context, cred Credential) (struct{}, error) {
		return struct{}{}, op(ctx, cred)
	})
	return cred, err
}
