package request

import "github.com/shopspring/decimal"

// ListQuery carries the common paging and search query parameters
type ListQuery struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
}

// CreateProductRequest represents a catalog product creation request
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Type           string          `json:"type" binding:"omitempty,max=100"`
	HSN            string          `json:"hsn" binding:"omitempty,max=50"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax"`
	TaxPercent     decimal.Decimal `json:"tax_percent"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	PrintPrice     decimal.Decimal `json:"print_price"`
}

// CreateCompanyRequest represents a vendor creation request
type CreateCompanyRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	GSTNumber *string `json:"gst_number" binding:"omitempty,max=20"`
	Mobile    *string `json:"mobile" binding:"omitempty,max=20"`
	Address   *string `json:"address"`
}

// CreateStoreRequest represents a store account creation request
type CreateStoreRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Mobile   *string `json:"mobile" binding:"omitempty,max=20"`
	Address  *string `json:"address"`
}

// SetStoreActiveRequest enables or disables a store
type SetStoreActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
