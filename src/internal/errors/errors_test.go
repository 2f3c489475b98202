package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Kind: KindConfig, Message: "Missing section `ddns`."},
			expected: "ConfigError: Missing section `ddns`.",
		},
		{
			name:     "error with cause",
			err:      Wrap(KindStatus, "failed to read status file", errors.New("permission denied")),
			expected: "StatusError: failed to read status file: permission denied",
		},
		{
			name:     "unsupported platform",
			err:      NewUnsupportedPlatformError("plan9"),
			expected: "UnsupportedPlatformError: OS `plan9` not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(KindInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewGatewayError("Failed to connect.", nil))

	if !errors.Is(err, ErrGateway) {
		t.Errorf("Expected wrapped gateway error to match ErrGateway")
	}
	if errors.Is(err, ErrNetwork) {
		t.Errorf("Expected gateway error not to match ErrNetwork")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NewNetworkError("Seems Internet is not available.", nil)); got != KindNetwork {
		t.Errorf("KindOf() = %v, want %v", got, KindNetwork)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf() = %v, want %v", got, KindInternal)
	}
}

func TestIsDomain(t *testing.T) {
	if !IsDomain(NewDDNSError("DDNS not updated", nil)) {
		t.Error("Expected DdnsError to be a domain error")
	}
	if IsDomain(NewInternalError("boom", nil)) {
		t.Error("Expected InternalError not to be a domain error")
	}
	if IsDomain(errors.New("plain")) {
		t.Error("Expected plain error not to be a domain error")
	}
}

func TestReport(t *testing.T) {
	if got := Report(NewUnsupportedProviderError("dnspod")); got != "UnsupportedProviderError: DDNS provider `dnspod` not supported" {
		t.Errorf("Report() = %q", got)
	}
	if got := Report(errors.New("boom")); got != "InternalError: boom" {
		t.Errorf("Report() = %q", got)
	}
}
