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

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	found, err := findOne(conn(ctx, r.db), &product, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := conn(ctx, r.db).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var product entity.Product
	found, err := findOne(conn(ctx, r.db), &product, "name = ?", name)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	found, err := findOne(conn(ctx, r.db), &product, "barcode = ?", barcode)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// BarcodeExists also sees soft-deleted products, the unique index does too
func (r *productRepository) BarcodeExists(ctx context.Context, barcode string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Unscoped().Model(&entity.Product{}).
		Where("barcode = ?", barcode).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Save(product).Error
}

func (r *productRepository) UpdatePricing(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Model(product).
		Select("type", "hsn", "purchase_price", "price_before_tax", "tax_percent", "selling_price", "print_price").
		Updates(product).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := conn(ctx, r.db).Model(&entity.Product{}).
		Scopes(SearchScope(params.Search, "name", "barcode", "hsn"))
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Scopes(Paginate(params.Pagination)).
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

// AtomicDecrementUnit atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET unit = unit - amount WHERE id = ? AND unit >= amount
func (r *productRepository) AtomicDecrementUnit(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ? AND unit >= ?", id, amount).
		Update("unit", gorm.Expr("unit - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementUnit(ctx context.Context, id uuid.UUID, amount int) error {
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("unit", gorm.Expr("unit + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type storeProductRepository struct {
	db *gorm.DB
}

// NewStoreProductRepository creates a new store bucket repository
func NewStoreProductRepository(db *gorm.DB) domainRepo.StoreProductRepository {
	return &storeProductRepository{db: db}
}

func (r *storeProductRepository) Get(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreProduct, error) {
	var sp entity.StoreProduct
	err := conn(ctx, r.db).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sp, err
}

func (r *storeProductRepository) Ensure(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreProduct, error) {
	sp := entity.StoreProduct{StoreID: storeID, ProductID: productID}
	err := conn(ctx, r.db).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		FirstOrCreate(&sp).Error
	return &sp, err
}

// AtomicDecrement uses: UPDATE store_products SET quantity = quantity - amount
// WHERE store_id = ? AND product_id = ? AND quantity >= amount
func (r *storeProductRepository) AtomicDecrement(ctx context.Context, storeID, productID uuid.UUID, amount int) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.StoreProduct{}).
		Where("store_id = ? AND product_id = ? AND quantity >= ?", storeID, productID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *storeProductRepository) Increment(ctx context.Context, storeID, productID uuid.UUID, amount int) error {
	db := conn(ctx, r.db)
	result := db.Model(&entity.StoreProduct{}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Bucket is created lazily on first stock into the store
	return db.Create(&entity.StoreProduct{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  amount,
	}).Error
}

func (r *storeProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams) ([]entity.StoreProduct, int64, error) {
	var buckets []entity.StoreProduct
	var total int64

	query := conn(ctx, r.db).Model(&entity.StoreProduct{}).Where("store_id = ?", storeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Preload("Product").
		Order("created_at ASC").
		Find(&buckets).Error

	return buckets, total, err
}
