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

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return conn(ctx, r.db).Create(purchase).Error
}

func (r *purchaseRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := conn(ctx, r.db).
		Preload("Company").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

// Update replaces detail lines in the same call, so run it inside a transaction
func (r *purchaseRepository) Update(ctx context.Context, purchase *entity.Purchase) error {
	db := conn(ctx, r.db)
	if err := db.Where("purchase_id = ?", purchase.ID).Delete(&entity.PurchaseDetail{}).Error; err != nil {
		return err
	}
	for i := range purchase.Details {
		purchase.Details[i].ID = uuid.Nil
		purchase.Details[i].PurchaseID = purchase.ID
	}
	if len(purchase.Details) > 0 {
		if err := db.Create(&purchase.Details).Error; err != nil {
			return err
		}
	}
	return db.Omit("Details", "Company").Save(purchase).Error
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := conn(ctx, r.db).Model(&entity.Purchase{})
	if params.CompanyID != nil {
		query = query.Where("company_id = ?", *params.CompanyID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Company").
		Order("date DESC, created_at DESC").
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) BoundToOtherCompany(ctx context.Context, productID, companyID uuid.UUID, excludePurchaseID *uuid.UUID) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&entity.PurchaseDetail{}).
		Joins("JOIN purchases ON purchases.id = purchase_details.purchase_id AND purchases.deleted_at IS NULL").
		Where("purchase_details.product_id = ? AND purchases.company_id <> ?", productID, companyID)
	if excludePurchaseID != nil {
		query = query.Where("purchases.id <> ?", *excludePurchaseID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) SumPurchasedQuantity(ctx context.Context, companyID, productID uuid.UUID) (int, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.PurchaseDetail{}).
		Joins("JOIN purchases ON purchases.id = purchase_details.purchase_id AND purchases.deleted_at IS NULL").
		Where("purchase_details.product_id = ? AND purchases.company_id = ?", productID, companyID).
		Select("COALESCE(SUM(purchase_details.quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *purchaseRepository) LatestDetail(ctx context.Context, productID uuid.UUID) (*entity.PurchaseDetail, error) {
	var detail entity.PurchaseDetail
	err := conn(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &detail, err
}

type purchaseReturnRepository struct {
	db *gorm.DB
}

// NewPurchaseReturnRepository creates a new purchase return repository
func NewPurchaseReturnRepository(db *gorm.DB) domainRepo.PurchaseReturnRepository {
	return &purchaseReturnRepository{db: db}
}

func (r *purchaseReturnRepository) Create(ctx context.Context, ret *entity.PurchaseReturn) error {
	return conn(ctx, r.db).Create(ret).Error
}

func (r *purchaseReturnRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	var ret entity.PurchaseReturn
	err := conn(ctx, r.db).
		Preload("Company").Preload("Details").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *purchaseReturnRepository) List(ctx context.Context, params *pagination.PaginationParams, companyID *uuid.UUID) ([]entity.PurchaseReturn, int64, error) {
	var returns []entity.PurchaseReturn
	var total int64

	query := conn(ctx, r.db).Model(&entity.PurchaseReturn{})
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Preload("Company").
		Order("created_at DESC").
		Find(&returns).Error
	return returns, total, err
}
