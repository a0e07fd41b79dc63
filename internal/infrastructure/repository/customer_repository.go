package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	domainRepo "github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "mobile = ?", mobile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// Update saves every balance field; BeforeSave recomputes pending_amount
func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Customer{}).Scopes(SearchScope(search, "name", "mobile"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Order("created_at DESC").
		Find(&customers).Error
	return customers, total, err
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new customer transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return conn(ctx, r.db).Create(txn).Error
}

func (r *transactionRepository) ListUnpaid(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := conn(ctx, r.db).
		Where("customer_id = ? AND payment_status = ? AND bill_id IS NOT NULL", customerID, enum.PaymentStatusUnpaid).
		Order("created_at ASC").Order("id ASC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	return conn(ctx, r.db).Model(&entity.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": enum.PaymentStatusPaid,
			"paid_at":        paidAt,
		}).Error
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := conn(ctx, r.db).Model(&entity.Transaction{}).Where("customer_id = ?", customerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, total, err
}
