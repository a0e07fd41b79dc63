package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFormatDocumentNo(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int64
		want   string
	}{
		{"AJJ", 1, "AJJ-0001"},
		{"AJJ-SR", 42, "AJJ-SR-0042"},
		{"AJJ-A", 12345, "AJJ-A-12345"},
	}
	for _, tt := range tests {
		if got := FormatDocumentNo(tt.prefix, tt.seq); got != tt.want {
			t.Errorf("FormatDocumentNo(%q, %d) = %q, want %q", tt.prefix, tt.seq, got, tt.want)
		}
	}
}

func TestRandomBarcodeIsFiveDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := RandomBarcode()
		if len(code) != 5 || code[0] == '0' {
			t.Fatalf("barcode %q is not a 5-digit code", code)
		}
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "retail-ledger-api", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "store", "store@ajj.test")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.ActorID != id || claims.ActorType != "store" {
		t.Errorf("claims = %+v", claims)
	}

	other := NewJWTManager("other", "retail-ledger-api", time.Hour)
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret should fail")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("pa55")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("pa55", hash) || CheckPasswordHash("nope", hash) {
		t.Error("password check mismatch")
	}
}
