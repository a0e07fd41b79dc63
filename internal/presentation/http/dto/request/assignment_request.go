package request

import "github.com/google/uuid"

// AssignmentLineRequest is one product assigned to a store
type AssignmentLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateAssignmentRequest represents a warehouse to store assignment
type CreateAssignmentRequest struct {
	StoreID uuid.UUID               `json:"store_id" binding:"required"`
	Lines   []AssignmentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AssignmentFilterRequest represents assignment list query parameters
type AssignmentFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	StoreID string `form:"store_id"`
	Status  string `form:"status"`
}

// CreateTransferRequest asks another store for stock
type CreateTransferRequest struct {
	SupplyingStoreID uuid.UUID `json:"supplying_store_id" binding:"required"`
	ProductID        uuid.UUID `json:"product_id" binding:"required"`
	Quantity         int       `json:"quantity" binding:"required,min=1"`
}

// AcceptTransferRequest carries the quantity the supplier agrees to send
type AcceptTransferRequest struct {
	AcceptedQuantity int `json:"accepted_quantity" binding:"required,min=1"`
}
