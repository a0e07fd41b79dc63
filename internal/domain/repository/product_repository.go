package repository

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for warehouse product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	BarcodeExists(ctx context.Context, barcode string) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdatePricing writes price, tax, type and hsn fields and leaves stock untouched
	UpdatePricing(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// AtomicDecrementUnit decrements warehouse stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementUnit(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	IncrementUnit(ctx context.Context, id uuid.UUID, amount int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}

// StoreProductRepository defines the interface for per-store stock buckets
type StoreProductRepository interface {
	Get(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreProduct, error)
	// Ensure returns the bucket, creating it with zero quantity if absent
	Ensure(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreProduct, error)
	// AtomicDecrement decrements the bucket only if it holds at least amount
	AtomicDecrement(ctx context.Context, storeID, productID uuid.UUID, amount int) (bool, error)
	// Increment adds amount to the bucket, creating it if absent
	Increment(ctx context.Context, storeID, productID uuid.UUID, amount int) error
	ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams) ([]entity.StoreProduct, int64, error)
}
