package types

import (
	"errors"
	"testing"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrMalformedTemplate, "template decode failed").
		WithCause(root).
		WithHTTPStatus(500).
		WithRetryable(false).
		WithComponent("template_store")

	if GetErrorCode(err) != ErrMalformedTemplate {
		t.Fatalf("expected code %s, got %s", ErrMalformedTemplate, GetErrorCode(err))
	}
	if IsRetryable(err) {
		t.Fatalf("expected non-retryable")
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is unwrap to root")
	}
	if got := err.Error(); got == "" {
		t.Fatalf("expected non-empty error string")
	}
}

func TestGetErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code for plain error, got %s", got)
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatalf("expected plain error to be non-retryable")
	}
}
