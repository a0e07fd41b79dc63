package repository

import (
	"context"
	"errors"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	domainRepo "github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return conn(ctx, r.db).Create(bill).Error
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).Preload("Items").First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).Preload("Items").First(&bill, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	return conn(ctx, r.db).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := conn(ctx, r.db).Model(&entity.Bill{}).Scopes(StoreScope(params.StoreID))
	if params.Mobile != "" {
		query = query.Where("customer_mobile = ?", params.Mobile)
	}
	if params.Status != nil {
		query = query.Where("payment_status = ?", *params.Status)
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
		Order("date DESC").
		Find(&bills).Error
	return bills, total, err
}

type saleReturnRepository struct {
	db *gorm.DB
}

// NewSaleReturnRepository creates a new sale return repository
func NewSaleReturnRepository(db *gorm.DB) domainRepo.SaleReturnRepository {
	return &saleReturnRepository{db: db}
}

func (r *saleReturnRepository) Create(ctx context.Context, ret *entity.SaleReturn) error {
	return conn(ctx, r.db).Create(ret).Error
}

func (r *saleReturnRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	err := conn(ctx, r.db).Preload("Items").First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

type returnedQty struct {
	ProductID uuid.UUID
	Quantity  int64
}

func (r *saleReturnRepository) ReturnedQuantities(ctx context.Context, billID uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []returnedQty
	err := conn(ctx, r.db).Model(&entity.SaleReturnItem{}).
		Select("sale_return_items.product_id AS product_id, SUM(sale_return_items.quantity) AS quantity").
		Joins("JOIN sale_returns ON sale_returns.id = sale_return_items.sale_return_id").
		Where("sale_returns.bill_id = ?", billID).
		Group("sale_return_items.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	returned := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		returned[row.ProductID] = int(row.Quantity)
	}
	return returned, nil
}

func (r *saleReturnRepository) List(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error) {
	var returns []entity.SaleReturn
	var total int64

	query := conn(ctx, r.db).Model(&entity.SaleReturn{}).Scopes(StoreScope(storeID))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Order("created_at DESC").
		Find(&returns).Error
	return returns, total, err
}
