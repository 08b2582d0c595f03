package auth

import (
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"net/http"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/google/go-github/v60/github"
)

// IsAuthenticationError reports whether the error means the remote rejected
// the credential. Both 401 and 403 count: GitHub answers 403 for some
// credential problems (for example password-authenticated API access).
func IsAuthenticationError(err error) bool {
	if err == nil {
		return false
	}

	if errors.IsType(err, errors.ErrorTypeAuthentication) {
		return true
	}

	var ghErr *github.ErrorResponse
	if stderrors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
	}

	return false
}

// IsCertificateError reports whether the error's cause chain contains a TLS
// certificate validation failure. Classification is purely by root cause
// type; anything else is an ordinary transport failure.
func IsCertificateError(err error) bool {
	if err == nil {
		return false
	}

	if errors.IsType(err, errors.ErrorTypeCertificate) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if stderrors.As(err, &unknownAuthority) {
		return true
	}

	var hostname x509.HostnameError
	if stderrors.As(err, &hostname) {
		return true
	}

	var invalid x509.CertificateInvalidError
	if stderrors.As(err, &invalid) {
		return true
	}

	var verification *tls.CertificateVerificationError
	return stderrors.As(err, &verification)
}
