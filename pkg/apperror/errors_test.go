package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("assign: %w", NewInsufficientStockError("Widget", 2, 5))
	if !Is(err, KindInsufficientStock) {
		t.Fatalf("expected InsufficientStock kind, got %v", err)
	}
	if Is(err, KindNotFound) {
		t.Fatalf("did not expect NotFound kind")
	}
}

func TestGetAppErrorMasksUnknownErrors(t *testing.T) {
	got := GetAppError(errors.New("pq: connection reset"))
	if got.Code != http.StatusInternalServerError || got.Kind != KindServer {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got.Message != "Internal server error" {
		t.Fatalf("internal message leaked: %q", got.Message)
	}
}

func TestConstructorsCarryStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		kind Kind
	}{
		{"validation", NewFieldError("items", "required"), http.StatusUnprocessableEntity, KindValidation},
		{"not found", NewNotFoundError("Bill"), http.StatusNotFound, KindNotFound},
		{"stock", NewInsufficientStockError("P", 0, 1), http.StatusConflict, KindInsufficientStock},
		{"vendor", NewVendorConflictError("P"), http.StatusConflict, KindVendorConflict},
		{"original", NewExceedsOriginalError("P", 1, 2), http.StatusUnprocessableEntity, KindExceedsOriginal},
		{"requested", NewExceedsRequestedError(1, 2), http.StatusUnprocessableEntity, KindExceedsRequested},
		{"state", NewStateConflictError("x"), http.StatusConflict, KindStateConflict},
		{"barcode", NewBarcodeExhaustedError(10), http.StatusServiceUnavailable, KindBarcodeExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code || tt.err.Kind != tt.kind {
				t.Errorf("got code=%d kind=%s, want code=%d kind=%s", tt.err.Code, tt.err.Kind, tt.code, tt.kind)
			}
		})
	}
}
