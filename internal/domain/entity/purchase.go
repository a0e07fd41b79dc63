package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase represents a vendor invoice received into the warehouse
type Purchase struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	CreatedByID     uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by"`
	UpdatedByID     *uuid.UUID      `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	Date            time.Time       `gorm:"type:date;not null" json:"date"`
	InvoiceNo       string          `gorm:"size:100" json:"invoice_no"`
	OrderNo         string          `gorm:"size:100" json:"order_no"`
	Discount        decimal.Decimal `gorm:"type:decimal(15,2)" json:"discount"`
	Remarks         *string         `gorm:"type:text" json:"remarks,omitempty"`
	TransportName   *string         `gorm:"size:255" json:"transport_name,omitempty"`
	TransportCharge decimal.Decimal `gorm:"type:decimal(15,2)" json:"transport_charge"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Company *Company         `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Details []PurchaseDetail `gorm:"foreignKey:PurchaseID" json:"details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseDetail is one product line of a purchase with its price snapshot
type PurchaseDetail struct {
	ID                         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID                 uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID                  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name                       string          `gorm:"size:255;not null" json:"name"`
	Type                       string          `gorm:"size:100" json:"type"`
	HSN                        string          `gorm:"size:50;column:hsn" json:"hsn"`
	Quantity                   int             `gorm:"not null" json:"quantity"`
	PurchasePrice              decimal.Decimal `gorm:"type:decimal(15,2)" json:"purchase_price"`
	PurchasePriceAfterDiscount decimal.Decimal `gorm:"type:decimal(15,2)" json:"purchase_price_after_discount"`
	ProfitPercent              decimal.Decimal `gorm:"type:decimal(7,2)" json:"profit_percent"`
	PriceBeforeTax             decimal.Decimal `gorm:"type:decimal(15,2)" json:"price_before_tax"`
	TaxPercent                 decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_percent"`
	SellingPrice               decimal.Decimal `gorm:"type:decimal(15,2)" json:"selling_price"`
	PrintPrice                 decimal.Decimal `gorm:"type:decimal(15,2)" json:"print_price"`
	CreatedAt                  time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new purchase detail
func (pd *PurchaseDetail) BeforeCreate(tx *gorm.DB) error {
	if pd.ID == uuid.Nil {
		pd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseDetail model
func (PurchaseDetail) TableName() string {
	return "purchase_details"
}

// PurchaseReturn sends warehouse stock back to a vendor
type PurchaseReturn struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNo    string          `gorm:"size:50;uniqueIndex;not null" json:"return_no"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	CreatedByID uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	Remarks     *string         `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Company *Company               `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Details []PurchaseReturnDetail `gorm:"foreignKey:PurchaseReturnID" json:"details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase return
func (pr *PurchaseReturn) BeforeCreate(tx *gorm.DB) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturn model
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// PurchaseReturnDetail is one returned product line
type PurchaseReturnDetail struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseReturnID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_return_id"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name              string          `gorm:"size:255" json:"name"`
	PurchasedQuantity int             `gorm:"not null" json:"purchased_quantity"`
	ReturnQuantity    int             `gorm:"not null" json:"return_quantity"`
	Price             decimal.Decimal `gorm:"type:decimal(15,2)" json:"price"`
	TaxPercent        decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_percent"`
	Total             decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
}

// BeforeCreate generates a UUID before creating a new purchase return detail
func (d *PurchaseReturnDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturnDetail model
func (PurchaseReturnDetail) TableName() string {
	return "purchase_return_details"
}
