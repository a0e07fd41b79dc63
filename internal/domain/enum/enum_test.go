package enum

import (
	"encoding/json"
	"testing"
)

func TestRequestStatusJSONAcceptsNamesAndNumbers(t *testing.T) {
	var s RequestStatus
	if err := json.Unmarshal([]byte(`"Rejected"`), &s); err != nil || s != RequestStatusRejected {
		t.Fatalf("name: got %v err=%v", s, err)
	}
	if err := json.Unmarshal([]byte(`1`), &s); err != nil || s != RequestStatusAccepted {
		t.Fatalf("number: got %v err=%v", s, err)
	}
	out, _ := json.Marshal(RequestStatusCanceled)
	if string(out) != `"Canceled"` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in    string
		want  PaymentMethod
		money bool
	}{
		{"cash", PaymentMethodCash, true},
		{"UPI", PaymentMethodUPI, true},
		{"Bank Transfer", PaymentMethodBankTransfer, true},
		{"Wallet", PaymentMethodWallet, false},
	}
	for _, tt := range tests {
		got, ok := ParsePaymentMethod(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParsePaymentMethod(%q) = %v, %v", tt.in, got, ok)
		}
		if got.IsMoney() != tt.money {
			t.Errorf("%s.IsMoney() = %v", got, got.IsMoney())
		}
	}
	if _, ok := ParsePaymentMethod("cheque"); ok {
		t.Error("cheque should not parse")
	}
}
