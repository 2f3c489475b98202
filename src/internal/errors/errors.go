// Package errors provides domain-specific error types for autoconnect.
//
// Every failure an operator can act on is an *Error carrying a Kind. Errors are
// raised where they are detected and caught once by the run command, which
// prints them to stderr as "<Kind>: <description>".
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind represents a category of error that can occur in the application.
type Kind string

const (
	// KindConfig indicates a missing, malformed or invalid configuration file.
	KindConfig Kind = "ConfigError"

	// KindStatus indicates the status file is missing, unreadable or locked by another run.
	KindStatus Kind = "StatusError"

	// KindNetwork indicates basic Internet access is unavailable.
	KindNetwork Kind = "NetworkError"

	// KindGateway indicates the gateway agent reported a failure.
	KindGateway Kind = "GatewayError"

	// KindDDNS indicates the DDNS update or local address lookup failed.
	KindDDNS Kind = "DdnsError"

	// KindUnsupportedPlatform indicates no interface address strategy exists for this OS.
	KindUnsupportedPlatform Kind = "UnsupportedPlatformError"

	// KindUnsupportedProvider indicates the configured DDNS provider is unknown.
	KindUnsupportedProvider Kind = "UnsupportedProviderError"

	// KindInternal indicates an unexpected internal error.
	KindInternal Kind = "InternalError"
)

// Error represents a domain-specific error with a kind and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a new domain error with the specified kind and message.
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is checks.
var (
	ErrConfig              = New(KindConfig, "")
	ErrStatus              = New(KindStatus, "")
	ErrNetwork             = New(KindNetwork, "")
	ErrGateway             = New(KindGateway, "")
	ErrDDNS                = New(KindDDNS, "")
	ErrUnsupportedPlatform = New(KindUnsupportedPlatform, "")
	ErrUnsupportedProvider = New(KindUnsupportedProvider, "")
)

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(KindConfig, message, cause)
}

// NewStatusError creates a new status store error.
func NewStatusError(message string, cause error) *Error {
	return Wrap(KindStatus, message, cause)
}

// NewNetworkError creates a new reachability error.
func NewNetworkError(message string, cause error) *Error {
	return Wrap(KindNetwork, message, cause)
}

// NewGatewayError creates a new gateway agent error.
func NewGatewayError(message string, cause error) *Error {
	return Wrap(KindGateway, message, cause)
}

// NewDDNSError creates a new DDNS error.
func NewDDNSError(message string, cause error) *Error {
	return Wrap(KindDDNS, message, cause)
}

// NewUnsupportedPlatformError creates a new unsupported platform error.
func NewUnsupportedPlatformError(platform string) *Error {
	return New(KindUnsupportedPlatform, fmt.Sprintf("OS `%s` not supported", platform))
}

// NewUnsupportedProviderError creates a new unsupported DDNS provider error.
func NewUnsupportedProviderError(provider string) *Error {
	return New(KindUnsupportedProvider, fmt.Sprintf("DDNS provider `%s` not supported", provider))
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(KindInternal, message, cause)
}

// KindOf returns the kind of the first domain error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsDomain reports whether err carries one of the operator-facing kinds.
func IsDomain(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind != KindInternal
}

// Report renders err for the operator as "<Kind>: <description>".
func Report(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Error()
	}
	return fmt.Sprintf("%s: %v", KindInternal, err)
}
