package entity

import (
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRequest asks another store to transfer stock of one product
type ProductRequest struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	RequestingStoreID uuid.UUID          `gorm:"type:uuid;not null;index" json:"requesting_store_id"`
	SupplyingStoreID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"supplying_store_id"`
	ProductID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	RequestedQuantity int                `gorm:"not null" json:"requested_quantity"`
	AcceptedQuantity  int                `gorm:"not null;default:0" json:"accepted_quantity"`
	Status            enum.RequestStatus `gorm:"not null;default:0;index" json:"status"`
	RequestedAt       time.Time          `gorm:"not null" json:"requested_at"`
	AcceptedAt        *time.Time         `json:"accepted_at,omitempty"`
	RejectedAt        *time.Time         `json:"rejected_at,omitempty"`
	ReceivedAt        *time.Time         `json:"received_at,omitempty"`
	CanceledAt        *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product request
func (r *ProductRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductRequest model
func (ProductRequest) TableName() string {
	return "product_requests"
}
