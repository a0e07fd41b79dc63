package entity

import (
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a point-of-sale invoice issued by a store
type Bill struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	StoreID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"store_id"`
	InvoiceNo      string             `gorm:"size:50;uniqueIndex;not null" json:"invoice_no"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName   string             `gorm:"size:255" json:"customer_name"`
	CustomerMobile string             `gorm:"size:20;index" json:"customer_mobile"`
	CustomerGST    string             `gorm:"size:20;column:customer_gst" json:"customer_gst"`
	SubTotal       decimal.Decimal    `gorm:"type:decimal(15,2)" json:"sub_total"`
	Discount       decimal.Decimal    `gorm:"type:decimal(15,2)" json:"discount"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(15,2)" json:"total_amount"`
	UsedCoins      int                `gorm:"not null;default:0" json:"used_coins"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:10;not null" json:"payment_status"`
	PaymentMethod  string             `gorm:"size:50" json:"payment_method"`
	Date           time.Time          `gorm:"not null" json:"date"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem is one sold product line with its pricing breakdown
type BillItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name               string          `gorm:"size:255" json:"name"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	PriceBeforeTax     decimal.Decimal `gorm:"type:decimal(15,2)" json:"price_before_tax"`
	Discount           decimal.Decimal `gorm:"type:decimal(15,2)" json:"discount"`
	PriceAfterDiscount decimal.Decimal `gorm:"type:decimal(15,2)" json:"price_after_discount"`
	TaxPercent         decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_percent"`
	FinalPrice         decimal.Decimal `gorm:"type:decimal(15,2)" json:"final_price"`
	Total              decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// SaleReturn takes sold goods back into a store bucket
type SaleReturn struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNo      string             `gorm:"size:50;uniqueIndex;not null" json:"return_no"`
	InvoiceNo     string             `gorm:"size:50;index;not null" json:"invoice_no"`
	BillID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"bill_id"`
	StoreID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"store_id"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(15,2)" json:"total_amount"`
	ReturnMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"return_method"`
	CoinsReversed int                `gorm:"not null;default:0" json:"coins_reversed"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Items []SaleReturnItem `gorm:"foreignKey:SaleReturnID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale return
func (sr *SaleReturn) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturn model
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// SaleReturnItem is one returned product line
type SaleReturnItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleReturnID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_return_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	FinalPrice   decimal.Decimal `gorm:"type:decimal(15,2)" json:"final_price"`
	Total        decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
}

// BeforeCreate generates a UUID before creating a new sale return item
func (i *SaleReturnItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturnItem model
func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}
