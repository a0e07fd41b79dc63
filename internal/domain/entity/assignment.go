package entity

import (
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment moves warehouse stock to one store
type Assignment struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	AssignmentNo   string                `gorm:"size:50;uniqueIndex;not null" json:"assignment_no"`
	StoreID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"store_id"`
	Status         enum.AssignmentStatus `gorm:"size:20;not null;index" json:"status"`
	CreatedByID    uuid.UUID             `gorm:"type:uuid;column:created_by" json:"created_by"`
	DispatchedAt   *time.Time            `json:"dispatched_at,omitempty"`
	DeliveredAt    *time.Time            `json:"delivered_at,omitempty"`
	CanceledAt     *time.Time            `json:"canceled_at,omitempty"`
	CanceledByID   *uuid.UUID            `gorm:"type:uuid;column:canceled_by" json:"canceled_by,omitempty"`
	CanceledByType *enum.ActorType       `gorm:"size:10" json:"canceled_by_type,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	// Relationships
	Store *Store           `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Lines []AssignmentLine `gorm:"foreignKey:AssignmentID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assignment
func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Assignment model
func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentLine records one product moved by an assignment, with the store
// bucket quantity before and after delivery
type AssignmentLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AssignmentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	AssignQuantity int       `gorm:"not null" json:"assign_quantity"`
	QuantityBefore int       `gorm:"not null" json:"quantity_before"`
	QuantityAfter  int       `gorm:"not null" json:"quantity_after"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assignment line
func (l *AssignmentLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AssignmentLine model
func (AssignmentLine) TableName() string {
	return "assignment_lines"
}
