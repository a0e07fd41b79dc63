package service

import (
	"context"
	"strings"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingService issues point-of-sale bills against store stock
type BillingService struct {
	tx           repository.TxManager
	billRepo     repository.BillRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	ledger       *StockLedger
	numbers      *NumberingService
	customers    *CustomerService
}

// NewBillingService creates a new billing service
func NewBillingService(
	tx repository.TxManager,
	billRepo repository.BillRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	ledger *StockLedger,
	numbers *NumberingService,
	customers *CustomerService,
) *BillingService {
	return &BillingService{
		tx:           tx,
		billRepo:     billRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		ledger:       ledger,
		numbers:      numbers,
		customers:    customers,
	}
}

// BillItemInput represents a sold product line. PriceBeforeTax defaults to
// the catalog price; Discount is per unit.
type BillItemInput struct {
	ProductID      uuid.UUID
	Quantity       int
	PriceBeforeTax *decimal.Decimal
	Discount       decimal.Decimal
}

// BillCustomerInput identifies the buyer; an empty mobile means walk-in
type BillCustomerInput struct {
	Name   string
	Mobile string
	GST    string
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	StoreID   *uuid.UUID
	Customer  BillCustomerInput
	Discount  decimal.Decimal
	UsedCoins int
	Payment   *PaymentInput
	Date      time.Time
	Items     []BillItemInput
}

// CreateBill checks every line against the store bucket, mints an invoice
// number and then saves the bill and deducts stock together
func (s *BillingService) CreateBill(ctx context.Context, scope Scope, input *CreateBillInput) (*entity.Bill, error) {
	storeID, err := scope.ResolveStore(input.StoreID)
	if err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}
	mobile := strings.TrimSpace(input.Customer.Mobile)
	if input.UsedCoins < 0 {
		return nil, apperror.NewFieldError("used_coins", "used_coins cannot be negative")
	}
	if input.UsedCoins > 0 && mobile == "" {
		return nil, apperror.NewFieldError("used_coins", "coins need a customer mobile")
	}
	if input.Discount.IsNegative() {
		return nil, apperror.NewFieldError("discount", "discount cannot be negative")
	}
	if input.Payment != nil {
		if err := input.Payment.validate(); err != nil {
			return nil, err
		}
	}

	items, subTotal, err := s.priceItems(ctx, storeID, input.Items)
	if err != nil {
		return nil, err
	}
	total := subTotal.Sub(input.Discount)
	if total.IsNegative() {
		return nil, apperror.NewFieldError("discount", "discount exceeds bill amount")
	}
	if decimal.NewFromInt(int64(input.UsedCoins)).GreaterThan(total) {
		return nil, apperror.NewFieldError("used_coins", "coins exceed bill amount")
	}

	if input.UsedCoins > 0 {
		existing, err := s.customerRepo.GetByMobile(ctx, mobile)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.Coins < input.UsedCoins {
			return nil, apperror.NewFieldError("used_coins", "customer does not have enough coins")
		}
	}

	invoiceNo, err := s.numbers.Next(ctx, CounterInvoice)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	bill := &entity.Bill{
		StoreID:        storeID,
		InvoiceNo:      invoiceNo,
		CustomerName:   strings.TrimSpace(input.Customer.Name),
		CustomerMobile: mobile,
		CustomerGST:    strings.TrimSpace(input.Customer.GST),
		SubTotal:       subTotal,
		Discount:       input.Discount,
		TotalAmount:    total,
		UsedCoins:      input.UsedCoins,
		PaymentStatus:  enum.PaymentStatusPaid,
		Date:           date,
		Items:          items,
	}
	if input.Payment != nil {
		bill.PaymentMethod = input.Payment.Methods()
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var customer *entity.Customer
		if mobile != "" {
			found, err := s.findOrCreateCustomer(ctx, input.Customer, mobile)
			if err != nil {
				return err
			}
			customer = found
			bill.CustomerID = &customer.ID
			bill.PaymentStatus = enum.PaymentStatusUnpaid
		}

		if err := s.billRepo.Create(ctx, bill); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := s.ledger.Adjust(ctx, StoreBucket(storeID), item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}

		if customer == nil {
			return nil
		}
		return s.chargeCustomer(ctx, customer, bill, input.Payment)
	})
	if err != nil {
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// priceItems validates stock for every line before anything is written
func (s *BillingService) priceItems(ctx context.Context, storeID uuid.UUID, inputs []BillItemInput) ([]entity.BillItem, decimal.Decimal, error) {
	items := make([]entity.BillItem, 0, len(inputs))
	subTotal := decimal.Zero
	seen := make(map[uuid.UUID]bool, len(inputs))

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, decimal.Zero, apperror.NewFieldError("items.quantity", "quantity must be positive")
		}
		if seen[in.ProductID] {
			return nil, decimal.Zero, apperror.NewFieldError("items.product_id", "duplicate product in bill")
		}
		seen[in.ProductID] = true

		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, apperror.NewNotFoundError("Product")
		}
		available, err := s.ledger.Quantity(ctx, StoreBucket(storeID), product.ID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if available < in.Quantity {
			return nil, decimal.Zero, apperror.NewInsufficientStockError(product.Name, available, in.Quantity)
		}

		price := product.PriceBeforeTax
		if in.PriceBeforeTax != nil {
			price = *in.PriceBeforeTax
		}
		if in.Discount.IsNegative() || in.Discount.GreaterThan(price) {
			return nil, decimal.Zero, apperror.NewFieldError("items.discount", "discount must be between zero and the price")
		}
		afterDiscount := price.Sub(in.Discount)
		finalPrice := withTax(afterDiscount, product.TaxPercent)
		lineTotal := finalPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		subTotal = subTotal.Add(lineTotal)

		items = append(items, entity.BillItem{
			ProductID:          product.ID,
			Name:               product.Name,
			Quantity:           in.Quantity,
			PriceBeforeTax:     price,
			Discount:           in.Discount,
			PriceAfterDiscount: afterDiscount,
			TaxPercent:         product.TaxPercent,
			FinalPrice:         finalPrice,
			Total:              lineTotal,
		})
	}
	return items, subTotal, nil
}

func (s *BillingService) findOrCreateCustomer(ctx context.Context, in BillCustomerInput, mobile string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		if customer.Name == "" && in.Name != "" {
			customer.Name = strings.TrimSpace(in.Name)
		}
		return customer, nil
	}

	customer = &entity.Customer{
		Name:      strings.TrimSpace(in.Name),
		Mobile:    mobile,
		GSTNumber: strings.TrimSpace(in.GST),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// chargeCustomer books the bill on the customer ledger and settles any payment
func (s *BillingService) chargeCustomer(ctx context.Context, customer *entity.Customer, bill *entity.Bill, payment *PaymentInput) error {
	customer.TotalAmount = customer.TotalAmount.Add(bill.TotalAmount)
	if bill.UsedCoins > 0 {
		if customer.Coins < bill.UsedCoins {
			return apperror.NewFieldError("used_coins", "customer does not have enough coins")
		}
		customer.Coins -= bill.UsedCoins
		customer.UsedCoins += bill.UsedCoins
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return err
	}

	billID := bill.ID
	if err := s.txnRepo.Create(ctx, &entity.Transaction{
		CustomerID:    customer.ID,
		BillID:        &billID,
		InvoiceNo:     bill.InvoiceNo,
		BillAmount:    bill.TotalAmount,
		UsedCoins:     bill.UsedCoins,
		PaymentStatus: enum.PaymentStatusUnpaid,
	}); err != nil {
		return err
	}

	if payment == nil || !payment.Amount().IsPositive() {
		return nil
	}
	_, err := s.customers.settle(ctx, customer, *payment)
	return err
}

// GetBill retrieves a bill visible to the caller
func (s *BillingService) GetBill(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if err := scope.RequireStoreOrAdmin(bill.StoreID); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills lists bills; stores only see their own
func (s *BillingService) ListBills(ctx context.Context, scope Scope, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if filter := scope.StoreFilter(); filter != nil {
		params.StoreID = filter
	}
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
