package entity

import (
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a wallet and loyalty identity keyed by mobile number
type Customer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name          string          `gorm:"size:255" json:"name"`
	Mobile        string          `gorm:"size:20;uniqueIndex;not null" json:"mobile"`
	GSTNumber     string          `gorm:"size:20;column:gst_number" json:"gst_number"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2)" json:"paid_amount"`
	RemainingPaid decimal.Decimal `gorm:"type:decimal(15,2)" json:"remaining_paid"`
	PendingAmount decimal.Decimal `gorm:"type:decimal(15,2)" json:"pending_amount"`
	Coins         int             `gorm:"not null;default:0" json:"coins"`
	UsedCoins     int             `gorm:"not null;default:0" json:"used_coins"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the persisted pending amount in step with its sources
func (c *Customer) BeforeSave(tx *gorm.DB) error {
	c.PendingAmount = c.Pending()
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Pending is the wallet balance: paid - billed + coins spent.
// Negative means the customer owes the store.
func (c *Customer) Pending() decimal.Decimal {
	return c.PaidAmount.Sub(c.TotalAmount).Add(decimal.NewFromInt(int64(c.UsedCoins)))
}

// Transaction is a customer ledger entry for a bill, payment or return
type Transaction struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	BillID         *uuid.UUID         `gorm:"type:uuid;index" json:"bill_id,omitempty"`
	InvoiceNo      string             `gorm:"size:50" json:"invoice_no,omitempty"`
	BillAmount     decimal.Decimal    `gorm:"type:decimal(15,2)" json:"bill_amount"`
	UsedCoins      int                `gorm:"not null;default:0" json:"used_coins"`
	Amount         decimal.Decimal    `gorm:"type:decimal(15,2)" json:"amount"`
	Cash           decimal.Decimal    `gorm:"type:decimal(15,2)" json:"cash"`
	UPI            decimal.Decimal    `gorm:"type:decimal(15,2);column:upi" json:"upi"`
	BankTransfer   decimal.Decimal    `gorm:"type:decimal(15,2)" json:"bank_transfer"`
	Wallet         decimal.Decimal    `gorm:"type:decimal(15,2)" json:"wallet"`
	CoinsGenerated int                `gorm:"not null;default:0" json:"coins_generated"`
	CoinsReversed  int                `gorm:"not null;default:0" json:"coins_reversed"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:10;not null;index" json:"payment_status"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`
	CreatedAt      time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "customer_transactions"
}

// NetDue is what settling this bill transaction costs after coins
func (t *Transaction) NetDue() decimal.Decimal {
	return t.BillAmount.Sub(decimal.NewFromInt(int64(t.UsedCoins)))
}
