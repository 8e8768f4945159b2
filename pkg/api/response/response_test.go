package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindcore/mindcore/pkg/hub"
	"github.com/mindcore/mindcore/pkg/mind"
	"github.com/mindcore/mindcore/pkg/snapshot"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "st-1"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["id"] != "st-1" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, ErrCodeNotFound, "state not found", "req-1")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error.Code != ErrCodeNotFound {
		t.Errorf("code = %q", body.Error.Code)
	}
	if body.Error.RequestID != "req-1" {
		t.Errorf("request_id = %q", body.Error.RequestID)
	}
}

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"state not found", hub.ErrStateNotFound, http.StatusNotFound},
		{"wrapped state not found", fmt.Errorf("wrap: %w", hub.ErrStateNotFound), http.StatusNotFound},
		{"state exists", hub.ErrStateExists, http.StatusConflict},
		{"invalid input", mind.ErrInvalidInput, http.StatusBadRequest},
		{"bad magic", mind.ErrBadMagic, http.StatusBadRequest},
		{"truncated", mind.ErrTruncated, http.StatusBadRequest},
		{"config mismatch", mind.ErrConfigMismatch, http.StatusConflict},
		{"snapshot not found", &snapshot.NotFoundError{StateID: "x"}, http.StatusNotFound},
		{"store unavailable", &snapshot.UnavailableError{Cause: fmt.Errorf("down")}, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromError(tt.err); got != tt.want {
				t.Errorf("HTTPStatusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, hub.ErrStateNotFound, "req-2")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != ErrCodeNotFound {
		t.Errorf("code = %q", body.Error.Code)
	}
}
