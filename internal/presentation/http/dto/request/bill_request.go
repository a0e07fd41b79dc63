package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequest splits a payment by method
type PaymentRequest struct {
	Cash         decimal.Decimal `json:"cash"`
	UPI          decimal.Decimal `json:"upi"`
	BankTransfer decimal.Decimal `json:"bank_transfer"`
}

// BillItemRequest is one sold product
type BillItemRequest struct {
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	Quantity       int              `json:"quantity" binding:"required,min=1"`
	PriceBeforeTax *decimal.Decimal `json:"price_before_tax"`
	Discount       decimal.Decimal  `json:"discount"`
}

// CreateBillRequest represents a point-of-sale bill
type CreateBillRequest struct {
	StoreID        *uuid.UUID        `json:"store_id"`
	CustomerName   string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerMobile string            `json:"customer_mobile" binding:"omitempty,max=20"`
	CustomerGST    string            `json:"customer_gst" binding:"omitempty,max=20"`
	Discount       decimal.Decimal   `json:"discount"`
	UsedCoins      int               `json:"used_coins" binding:"min=0"`
	Payment        *PaymentRequest   `json:"payment"`
	Date           string            `json:"date"`
	Items          []BillItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BillFilterRequest represents bill list query parameters
type BillFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	StoreID   string `form:"store_id"`
	Mobile    string `form:"mobile"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// SaleReturnItemRequest is one returned product
type SaleReturnItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateSaleReturnRequest represents a customer return against an invoice
type CreateSaleReturnRequest struct {
	InvoiceNo string                  `json:"invoice_no" binding:"required"`
	Method    string                  `json:"method" binding:"required"`
	Items     []SaleReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}
