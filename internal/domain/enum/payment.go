package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// PaymentStatus is the settlement state of a bill or ledger transaction
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusReturn PaymentStatus = "return"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid || s == PaymentStatusReturn
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(string(v))
	}
	return nil
}

// PaymentMethod is how money moved at the counter
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "BankTransfer"
	PaymentMethodWallet       PaymentMethod = "Wallet"
)

// ParsePaymentMethod accepts the method names used by the point-of-sale clients
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "cash":
		return PaymentMethodCash, true
	case "upi":
		return PaymentMethodUPI, true
	case "banktransfer", "bank":
		return PaymentMethodBankTransfer, true
	case "wallet":
		return PaymentMethodWallet, true
	}
	return "", false
}

// IsMoney reports whether the method hands money back rather than store credit
func (m PaymentMethod) IsMoney() bool {
	return m == PaymentMethodCash || m == PaymentMethodUPI || m == PaymentMethodBankTransfer
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if parsed, ok := ParsePaymentMethod(str); ok {
		*m = parsed
		return nil
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
