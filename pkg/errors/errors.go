// Package errors provides structured error handling for ghflow with categorization
// and contextual information for better error reporting and debugging.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrorTypeUnknown represents an unknown error type
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeCancelled represents a user-declined prompt. It is an expected
	// outcome, not a defect: workflows terminate silently on it.
	ErrorTypeCancelled

	// ErrorTypeValidation represents malformed user input
	ErrorTypeValidation

	// ErrorTypeAuthentication represents a credential rejected by the remote
	ErrorTypeAuthentication

	// ErrorTypeCertificate represents a TLS certificate validation failure
	// against a host that has not been trusted yet
	ErrorTypeCertificate

	// ErrorTypeTransport represents any other network I/O failure
	ErrorTypeTransport

	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration

	// ErrorTypeGit represents git operation errors
	ErrorTypeGit

	// ErrorTypeGitHub represents GitHub API errors
	ErrorTypeGitHub
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeCancelled:
		return "cancelled"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeCertificate:
		return "certificate"
	case ErrorTypeTransport:
		return "transport"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeGit:
		return "git"
	case ErrorTypeGitHub:
		return "github"
	default:
		return "unknown"
	}
}

// ghflowError represents a structured error with additional context
type ghflowError struct {
	errorType ErrorType
	message   string
	cause     error
	context   map[string]interface{}
}

// Error implements the error interface
func (e *ghflowError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s]", e.errorType.String()))
	parts = append(parts, e.message)

	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %s", e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

// Type returns the error type
func (e *ghflowError) Type() ErrorType {
	return e.errorType
}

// Context returns the error context
func (e *ghflowError) Context() map[string]interface{} {
	return e.context
}

// Unwrap returns the underlying error for compatibility with errors.Unwrap
func (e *ghflowError) Unwrap() error {
	return e.cause
}

// ErrorBuilder helps construct structured errors
type ErrorBuilder struct {
	errorType ErrorType
	message   string
	cause     error
	context   map[string]interface{}
}

// NewError creates a new error builder
func NewError(errorType ErrorType) *ErrorBuilder {
	return &ErrorBuilder{
		errorType: errorType,
		context:   make(map[string]interface{}),
	}
}

// WithMessage sets the error message
func (eb *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// WithMessagef sets the error message with formatting
func (eb *ErrorBuilder) WithMessagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// WithCause sets the underlying cause of the error
func (eb *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// WithContext adds context information
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() error {
	return &ghflowError{
		errorType: eb.errorType,
		message:   eb.message,
		cause:     eb.cause,
		context:   eb.context,
	}
}

// Convenience functions for common error types

// CancelledError creates a cancellation error
func CancelledError(message string) error {
	return NewError(ErrorTypeCancelled).
		WithMessage(message).
		Build()
}

// ValidationError creates a validation error
func ValidationError(message string) error {
	return NewError(ErrorTypeValidation).
		WithMessage(message).
		Build()
}

// AuthenticationError creates an authentication error
func AuthenticationError(message string, cause error) error {
	return NewError(ErrorTypeAuthentication).
		WithMessage(message).
		WithCause(cause).
		Build()
}

// CertificateError creates a certificate validation error for a host
func CertificateError(host string, cause error) error {
	return NewError(ErrorTypeCertificate).
		WithMessagef("certificate of %s is not trusted", host).
		WithCause(cause).
		WithContext("host", host).
		Build()
}

// TransportError creates a transport error
func TransportError(cause error) error {
	return NewError(ErrorTypeTransport).
		WithMessage("network operation failed").
		WithCause(cause).
		Build()
}

// GitError creates a git operation error
func GitError(operation string, cause error) error {
	return NewError(ErrorTypeGit).
		WithMessagef("git %s failed", operation).
		WithCause(cause).
		WithContext("operation", operation).
		Build()
}

// GitHubError creates a GitHub API error
func GitHubError(operation string, cause error) error {
	return NewError(ErrorTypeGitHub).
		WithMessagef("GitHub %s failed", operation).
		WithCause(cause).
		WithContext("operation", operation).
		Build()
}

// Type checking functions

// IsType checks if an error (or any error in its chain) is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var ghErr *ghflowError
	if errors.As(err, &ghErr) {
		return ghErr.Type() == errorType
	}
	return false
}

// IsCancelled reports whether the error represents a declined user prompt
func IsCancelled(err error) bool {
	return IsType(err, ErrorTypeCancelled)
}

// GetContext extracts context from an error
func GetContext(err error) map[string]interface{} {
	var ghErr *ghflowError
	if errors.As(err, &ghErr) {
		return ghErr.Context()
	}
	return nil
}
