package repository

import (
	"context"
	"errors"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	domainRepo "github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domainRepo.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	return conn(ctx, r.db).Create(admin).Error
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var admin entity.Admin
	err := conn(ctx, r.db).First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &admin, err
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := conn(ctx, r.db).First(&admin, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &admin, err
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	return conn(ctx, r.db).Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	err := conn(ctx, r.db).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) GetByEmail(ctx context.Context, email string) (*entity.Store, error) {
	var store entity.Store
	err := conn(ctx, r.db).First(&store, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	return conn(ctx, r.db).Save(store).Error
}

func (r *storeRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Store, int64, error) {
	var stores []entity.Store
	var total int64

	query := conn(ctx, r.db).Model(&entity.Store{}).Scopes(SearchScope(search, "name", "email"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&stores).Error
	return stores, total, err
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new vendor company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return conn(ctx, r.db).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := conn(ctx, r.db).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	var company entity.Company
	err := conn(ctx, r.db).First(&company, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := conn(ctx, r.db).Model(&entity.Company{}).Scopes(SearchScope(search, "name", "gst_number"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&companies).Error
	return companies, total, err
}
