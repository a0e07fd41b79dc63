package repository

import (
	"context"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	// Update saves header fields and replaces the detail lines wholesale
	Update(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	// BoundToOtherCompany reports whether the product was ever purchased from a
	// company other than companyID. excludePurchaseID skips the purchase under revision.
	BoundToOtherCompany(ctx context.Context, productID, companyID uuid.UUID, excludePurchaseID *uuid.UUID) (bool, error)
	// SumPurchasedQuantity totals every purchased unit of a product from one company
	SumPurchasedQuantity(ctx context.Context, companyID, productID uuid.UUID) (int, error)
	// LatestDetail returns the most recent purchase line for the product
	LatestDetail(ctx context.Context, productID uuid.UUID) (*entity.PurchaseDetail, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	CompanyID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// PurchaseReturnRepository defines the interface for vendor return data operations
type PurchaseReturnRepository interface {
	Create(ctx context.Context, ret *entity.PurchaseReturn) error
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error)
	List(ctx context.Context, params *pagination.PaginationParams, companyID *uuid.UUID) ([]entity.PurchaseReturn, int64, error)
}
