package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "pdf-uploader/pkg/errors"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusTeapot, "nope")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type application/json, got %s", ct)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"nope"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "too large",
			err:        apperrors.NewTooLargeError("File too large", errors.New("http: request body too large")),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   `{"error":"File too large"}`,
		},
		{
			name:       "conflict",
			err:        apperrors.NewConflictError("An upload is already in progress", nil),
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"An upload is already in progress"}`,
		},
		{
			name:       "wrapped upstream error keeps its own message",
			err:        fmt.Errorf("submit: %w", apperrors.NewUpstreamError(http.StatusBadRequest, "Upload rejected with status 400.", "File must be a PDF")),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"Upload rejected with status 400."}`,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeAppError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if got := strings.TrimSpace(rr.Body.String()); got != tt.wantBody {
				t.Fatalf("expected body %s, got %s", tt.wantBody, got)
			}
		})
	}
}
