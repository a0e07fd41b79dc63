package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a warehouse catalog entry; Unit is the on-hand warehouse stock
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Unit           int             `gorm:"not null;default:0" json:"unit"`
	Type           string          `gorm:"size:100" json:"type"`
	HSN            string          `gorm:"size:50;column:hsn" json:"hsn"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(15,2)" json:"purchase_price"`
	PriceBeforeTax decimal.Decimal `gorm:"type:decimal(15,2)" json:"price_before_tax"`
	TaxPercent     decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_percent"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(15,2)" json:"selling_price"`
	PrintPrice     decimal.Decimal `gorm:"type:decimal(15,2)" json:"print_price"`
	Barcode        string          `gorm:"size:5;uniqueIndex;not null" json:"barcode"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// StoreProduct is the per-store stock bucket for one product
type StoreProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_product" json:"store_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Store   *Store   `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new store bucket
func (sp *StoreProduct) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreProduct model
func (StoreProduct) TableName() string {
	return "store_products"
}
