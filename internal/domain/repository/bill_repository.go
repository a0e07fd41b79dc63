package repository

import (
	"context"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillRepository defines the interface for point-of-sale bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	StoreID    *uuid.UUID
	Mobile     string
	Status     *enum.PaymentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleReturnRepository defines the interface for sale return data operations
type SaleReturnRepository interface {
	Create(ctx context.Context, ret *entity.SaleReturn) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error)
	// ReturnedQuantities sums the already returned quantity per product for one bill
	ReturnedQuantities(ctx context.Context, billID uuid.UUID) (map[uuid.UUID]int, error)
	List(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error)
}
