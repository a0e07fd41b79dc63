package repository

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// AdminRepository defines the interface for admin account data operations
type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
}

// StoreRepository defines the interface for store data operations
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	GetByEmail(ctx context.Context, email string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Store, int64, error)
}

// CompanyRepository defines the interface for vendor company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error)
}
