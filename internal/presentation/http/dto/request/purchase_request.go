package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLineRequest is one product line of a vendor invoice
type PurchaseLineRequest struct {
	Name                       string          `json:"name" binding:"required,max=255"`
	Type                       string          `json:"type" binding:"omitempty,max=100"`
	HSN                        string          `json:"hsn" binding:"omitempty,max=50"`
	Quantity                   int             `json:"quantity" binding:"required,min=1"`
	PurchasePrice              decimal.Decimal `json:"purchase_price"`
	PurchasePriceAfterDiscount decimal.Decimal `json:"purchase_price_after_discount"`
	ProfitPercent              decimal.Decimal `json:"profit_percent"`
	PriceBeforeTax             decimal.Decimal `json:"price_before_tax"`
	TaxPercent                 decimal.Decimal `json:"tax_percent"`
	SellingPrice               decimal.Decimal `json:"selling_price"`
	PrintPrice                 decimal.Decimal `json:"print_price"`
}

// PurchaseRequest represents a purchase create or revise request
type PurchaseRequest struct {
	CompanyID       uuid.UUID             `json:"company_id" binding:"required"`
	Date            string                `json:"date"`
	InvoiceNo       string                `json:"invoice_no" binding:"omitempty,max=100"`
	OrderNo         string                `json:"order_no" binding:"omitempty,max=100"`
	Discount        decimal.Decimal       `json:"discount"`
	Remarks         *string               `json:"remarks"`
	TransportName   *string               `json:"transport_name"`
	TransportCharge decimal.Decimal       `json:"transport_charge"`
	Lines           []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PurchaseFilterRequest represents purchase list query parameters
type PurchaseFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	CompanyID string `form:"company_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// PurchaseReturnLineRequest is one returned product
type PurchaseReturnLineRequest struct {
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	Quantity   int              `json:"quantity" binding:"required,min=1"`
	Price      *decimal.Decimal `json:"price"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
}

// PurchaseReturnRequest represents a vendor return request
type PurchaseReturnRequest struct {
	CompanyID uuid.UUID                   `json:"company_id" binding:"required"`
	Remarks   *string                     `json:"remarks"`
	Lines     []PurchaseReturnLineRequest `json:"lines" binding:"required,min=1,dive"`
}
