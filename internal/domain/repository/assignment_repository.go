package repository

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// AssignmentRepository defines the interface for warehouse to store assignments
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	// Transition saves the status and its timestamps only while the stored
	// status is still from. It reports false when another writer got there first.
	Transition(ctx context.Context, assignment *entity.Assignment, from enum.AssignmentStatus) (bool, error)
	// UpdateLine saves the before/after snapshot of a line
	UpdateLine(ctx context.Context, line *entity.AssignmentLine) error
	List(ctx context.Context, params *AssignmentFilterParams) ([]entity.Assignment, int64, error)
}

// AssignmentFilterParams contains filtering parameters for assignment queries
type AssignmentFilterParams struct {
	Pagination *pagination.PaginationParams
	StoreID    *uuid.UUID
	Status     *enum.AssignmentStatus
}

// ProductRequestRepository defines the interface for inter-store transfer requests
type ProductRequestRepository interface {
	Create(ctx context.Context, req *entity.ProductRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductRequest, error)
	// Transition saves the decision fields only while the stored status is still from
	Transition(ctx context.Context, req *entity.ProductRequest, from enum.RequestStatus) (bool, error)
	// ListForStore returns requests where the store is requester or supplier
	ListForStore(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductRequest, int64, error)
}
