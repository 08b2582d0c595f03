package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeUnknown, "unknown"},
		{ErrorTypeCancelled, "cancelled"},
		{ErrorTypeValidation, "validation"},
		{ErrorTypeAuthentication, "authentication"},
		{ErrorTypeCertificate, "certificate"},
		{ErrorTypeTransport, "transport"},
		{ErrorTypeConfiguration, "configuration"},
		{ErrorTypeGit, "git"},
		{ErrorTypeGitHub, "github"},
	}

	for _, tt := range tests {
		if got := tt.errorType.String(); got != tt.expected {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.errorType, got, tt.expected)
		}
	}
}

func TestErrorBuilder(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(ErrorTypeTransport).
		WithMessage("request failed").
		WithCause(cause).
		WithContext("host", "github.com").
		Build()

	if !IsType(err, ErrorTypeTransport) {
		t.Error("expected transport error type")
	}

	if !errors.Is(err, cause) {
		t.Error("expected cause to be in the error chain")
	}

	ctx := GetContext(err)
	if ctx["host"] != "github.com" {
		t.Errorf("expected host context, got %v", ctx)
	}
}

func TestErrorMessageFormat(t *testing.T) {
	err := NewError(ErrorTypeGit).
		WithMessagef("git %s failed", "push").
		WithCause(errors.New("exit status 1")).
		Build()

	expected := "[git] git push failed caused by: exit status 1"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestIsCancelled(t *testing.T) {
	err := CancelledError("login dialog dismissed")
	if !IsCancelled(err) {
		t.Error("expected cancelled error to be detected")
	}

	if IsCancelled(errors.New("plain error")) {
		t.Error("plain error must not be cancelled")
	}

	// cancellation must survive wrapping
	wrapped := fmt.Errorf("share: %w", err)
	if !IsCancelled(wrapped) {
		t.Error("wrapped cancelled error must still be detected")
	}
}

func TestIsTypeNonStructured(t *testing.T) {
	if IsType(errors.New("plain"), ErrorTypeGit) {
		t.Error("plain errors have no type")
	}
	if IsType(nil, ErrorTypeGit) {
		t.Error("nil has no type")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType ErrorType
	}{
		{"cancelled", CancelledError("nope"), ErrorTypeCancelled},
		{"validation", ValidationError("bad input"), ErrorTypeValidation},
		{"authentication", AuthenticationError("rejected", nil), ErrorTypeAuthentication},
		{"certificate", CertificateError("ghe.corp", nil), ErrorTypeCertificate},
		{"transport", TransportError(errors.New("timeout")), ErrorTypeTransport},
		{"git", GitError("fetch", errors.New("boom")), ErrorTypeGit},
		{"github", GitHubError("create repository", errors.New("500")), ErrorTypeGitHub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsType(tt.err, tt.errorType) {
				t.Errorf("expected type %s, got %v", tt.errorType, tt.err)
			}
		})
	}
}

func TestCertificateErrorContext(t *testing.T) {
	err := CertificateError("ghe.example.org", errors.New("x509: unknown authority"))
	ctx := GetContext(err)
	if ctx["host"] != "ghe.example.org" {
		t.Errorf("expected host in context, got %v", ctx)
	}
}
