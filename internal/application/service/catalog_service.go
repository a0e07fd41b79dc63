package service

import (
	"context"
	"strings"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService handles products, vendor companies, stores and stock views
type CatalogService struct {
	productRepo repository.ProductRepository
	bucketRepo  repository.StoreProductRepository
	companyRepo repository.CompanyRepository
	storeRepo   repository.StoreRepository
	barcodes    *BarcodeGenerator
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	bucketRepo repository.StoreProductRepository,
	companyRepo repository.CompanyRepository,
	storeRepo repository.StoreRepository,
	barcodes *BarcodeGenerator,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		bucketRepo:  bucketRepo,
		companyRepo: companyRepo,
		storeRepo:   storeRepo,
		barcodes:    barcodes,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name           string
	Type           string
	HSN            string
	PurchasePrice  decimal.Decimal
	PriceBeforeTax decimal.Decimal
	TaxPercent     decimal.Decimal
	SellingPrice   decimal.Decimal
	PrintPrice     decimal.Decimal
}

// CreateProduct adds a catalog entry with zero stock and a fresh barcode
func (s *CatalogService) CreateProduct(ctx context.Context, scope Scope, input *CreateProductInput) (*entity.Product, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "name is required")
	}

	existing, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product name already exists")
	}

	barcode, err := s.barcodes.Generate(ctx)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:           name,
		Type:           input.Type,
		HSN:            input.HSN,
		PurchasePrice:  input.PurchasePrice,
		PriceBeforeTax: input.PriceBeforeTax,
		TaxPercent:     input.TaxPercent,
		SellingPrice:   input.SellingPrice,
		PrintPrice:     input.PrintPrice,
		Barcode:        barcode,
		IsActive:       true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProductByBarcode looks up the product scanned at the counter
func (s *CatalogService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalog products with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// CreateCompanyInput represents the create company input
type CreateCompanyInput struct {
	Name      string
	GSTNumber *string
	Mobile    *string
	Address   *string
}

// CreateCompany registers a vendor
func (s *CatalogService) CreateCompany(ctx context.Context, scope Scope, input *CreateCompanyInput) (*entity.Company, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "name is required")
	}

	existing, err := s.companyRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Company already exists")
	}

	company := &entity.Company{
		Name:      name,
		GSTNumber: input.GSTNumber,
		Mobile:    input.Mobile,
		Address:   input.Address,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies lists vendors
func (s *CatalogService) ListCompanies(ctx context.Context, scope Scope, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Company], error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	companies, total, err := s.companyRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// CreateStoreInput represents the create store input
type CreateStoreInput struct {
	Name     string
	Email    string
	Password string
	Mobile   *string
	Address  *string
}

// CreateStore opens a store account that can log in and sell
func (s *CatalogService) CreateStore(ctx context.Context, scope Scope, input *CreateStoreInput) (*entity.Store, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}

	var errs []apperror.FieldError
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if email == "" {
		errs = append(errs, apperror.FieldError{Field: "email", Message: "email is required"})
	}
	if len(input.Password) < 6 {
		errs = append(errs, apperror.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	existing, err := s.storeRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	store := &entity.Store{
		Name:     name,
		Email:    email,
		Password: hashed,
		Mobile:   input.Mobile,
		Address:  input.Address,
		IsActive: true,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// SetStoreActive enables or disables a store login
func (s *CatalogService) SetStoreActive(ctx context.Context, scope Scope, id uuid.UUID, active bool) (*entity.Store, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	store.IsActive = active
	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// ListStores lists stores
func (s *CatalogService) ListStores(ctx context.Context, scope Scope, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Store], error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	stores, total, err := s.storeRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(stores, pag), nil
}

// StoreStock lists the stock buckets of a store; stores see only their own
func (s *CatalogService) StoreStock(ctx context.Context, scope Scope, storeID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StoreProduct], error) {
	if err := scope.RequireStoreOrAdmin(storeID); err != nil {
		return nil, err
	}
	buckets, total, err := s.bucketRepo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(buckets, pag), nil
}
