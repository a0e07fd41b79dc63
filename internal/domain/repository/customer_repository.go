package repository

import (
	"context"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer ledger data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}

// TransactionRepository defines the interface for customer ledger entries
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	// ListUnpaid returns unpaid bill entries oldest first
	ListUnpaid(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error)
}
