package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_ErrorFormat(t *testing.T) {
	err := NewValidationError("bad input", "field name")
	if err.Error() != "validation: bad input (field name)" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}

	err = NewNotFoundError("missing")
	if err.Error() != "not_found: missing" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestAppError_ServerMessage(t *testing.T) {
	err := NewUpstreamError(http.StatusRequestEntityTooLarge, "upload rejected", "too large")
	if err.ServerMessage() != "too large" {
		t.Fatalf("expected server message, got %q", err.ServerMessage())
	}
	if err.Data.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status to be recorded, got %d", err.Data.Status)
	}

	plain := NewNetworkError("offline", nil)
	if plain.ServerMessage() != "" {
		t.Fatalf("expected no server message, got %q", plain.ServerMessage())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := NewNetworkError("Could not reach the upload service.", cause)

	if !stderrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
}

func TestIsTypeAndStatusCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewConflictError("busy", nil))

	if !IsType(err, ErrorTypeConflict) {
		t.Fatalf("expected conflict type through wrapping")
	}
	if GetStatusCode(err) != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, GetStatusCode(err))
	}
	if GetStatusCode(stderrors.New("plain")) != http.StatusInternalServerError {
		t.Fatalf("expected plain errors to map to 500")
	}
	if GetStatusCode(NewTooLargeError("big", nil)) != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected too large errors to map to 413")
	}
}
