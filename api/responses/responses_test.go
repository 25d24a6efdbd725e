package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"token": "abc"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestWriteErrorTypedCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", pkgerrors.New(pkgerrors.CodeValidation, "Missing name, sku, or location."), http.StatusBadRequest, "Missing name, sku, or location."},
		{"conflict", pkgerrors.New(pkgerrors.CodeConflict, "SKU already exists."), http.StatusBadRequest, "SKU already exists."},
		{"unauthorized", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "Sale not found."), http.StatusNotFound, "Sale not found."},
		{"stock", pkgerrors.New(pkgerrors.CodeInsufficientStock, "Not enough stock."), http.StatusBadRequest, "Not enough stock."},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, body.Error)
			}
		})
	}
}

func TestWriteStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteStatus(rec, http.StatusOK, "ok")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("unexpected status %q", body.Status)
	}
}
