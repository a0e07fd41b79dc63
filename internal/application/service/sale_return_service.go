package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleReturnService takes sold goods back and reverses the customer ledger
type SaleReturnService struct {
	tx           repository.TxManager
	returnRepo   repository.SaleReturnRepository
	billRepo     repository.BillRepository
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	ledger       *StockLedger
	numbers      *NumberingService
	coinUnit     int64
}

// NewSaleReturnService creates a new sale return service
func NewSaleReturnService(
	tx repository.TxManager,
	returnRepo repository.SaleReturnRepository,
	billRepo repository.BillRepository,
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	ledger *StockLedger,
	numbers *NumberingService,
	coinUnit int64,
) *SaleReturnService {
	return &SaleReturnService{
		tx:           tx,
		returnRepo:   returnRepo,
		billRepo:     billRepo,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		ledger:       ledger,
		numbers:      numbers,
		coinUnit:     coinUnit,
	}
}

// SaleReturnItemInput represents a returned product
type SaleReturnItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateSaleReturnInput represents the create sale return input
type CreateSaleReturnInput struct {
	InvoiceNo string
	Method    string
	Items     []SaleReturnItemInput
}

// CreateSaleReturn restores store stock for returned lines and refunds the
// customer as money or as wallet credit
func (s *SaleReturnService) CreateSaleReturn(ctx context.Context, scope Scope, input *CreateSaleReturnInput) (*entity.SaleReturn, error) {
	method, ok := enum.ParsePaymentMethod(input.Method)
	if !ok {
		return nil, apperror.NewFieldError("method", "method must be Cash, UPI, BankTransfer or Wallet")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	bill, err := s.billRepo.GetByInvoiceNo(ctx, strings.TrimSpace(input.InvoiceNo))
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if err := scope.RequireStoreOrAdmin(bill.StoreID); err != nil {
		return nil, err
	}
	if method == enum.PaymentMethodWallet && bill.CustomerID == nil {
		return nil, apperror.NewFieldError("method", "wallet refunds need a customer on the bill")
	}

	sold := make(map[uuid.UUID]entity.BillItem, len(bill.Items))
	for _, item := range bill.Items {
		sold[item.ProductID] = item
	}
	returned, err := s.returnRepo.ReturnedQuantities(ctx, bill.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(input.Items))
	items := make([]entity.SaleReturnItem, 0, len(input.Items))
	total := decimal.Zero
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewFieldError("items.quantity", "quantity must be positive")
		}
		if seen[in.ProductID] {
			return nil, apperror.NewFieldError("items.product_id", "duplicate product in return")
		}
		seen[in.ProductID] = true

		line, ok := sold[in.ProductID]
		if !ok {
			return nil, apperror.NewFieldError("items.product_id", fmt.Sprintf("product %s is not on bill %s", in.ProductID, bill.InvoiceNo))
		}
		ceiling := line.Quantity - returned[in.ProductID]
		if in.Quantity > ceiling {
			return nil, apperror.NewExceedsOriginalError(line.Name, ceiling, in.Quantity)
		}

		lineTotal := line.FinalPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, entity.SaleReturnItem{
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			FinalPrice: line.FinalPrice,
			Total:      lineTotal,
		})
	}

	returnNo, err := s.numbers.Next(ctx, CounterSaleReturn)
	if err != nil {
		return nil, err
	}

	ret := &entity.SaleReturn{
		ReturnNo:     returnNo,
		InvoiceNo:    bill.InvoiceNo,
		BillID:       bill.ID,
		StoreID:      bill.StoreID,
		CustomerID:   bill.CustomerID,
		TotalAmount:  total,
		ReturnMethod: method,
		Items:        items,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, item := range items {
			if _, err := s.ledger.Adjust(ctx, StoreBucket(bill.StoreID), item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if bill.CustomerID != nil {
			reversed, err := s.reverseCustomer(ctx, *bill.CustomerID, bill, total, method)
			if err != nil {
				return err
			}
			ret.CoinsReversed = reversed
		}
		return s.returnRepo.Create(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// reverseCustomer takes the return off the customer's billed total. Money
// refunds also come off paid and cost coins; wallet refunds become credit.
func (s *SaleReturnService) reverseCustomer(ctx context.Context, customerID uuid.UUID, bill *entity.Bill, total decimal.Decimal, method enum.PaymentMethod) (int, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, apperror.NewNotFoundError("Customer")
	}

	reversed := 0
	customer.TotalAmount = customer.TotalAmount.Sub(total)
	if method.IsMoney() {
		customer.PaidAmount = customer.PaidAmount.Sub(total)
		reversed = coinsFor(total, s.coinUnit)
		if reversed > customer.Coins {
			reversed = customer.Coins
		}
		customer.Coins -= reversed
	} else {
		customer.RemainingPaid = customer.RemainingPaid.Add(total)
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return 0, err
	}

	billID := bill.ID
	err = s.txnRepo.Create(ctx, &entity.Transaction{
		CustomerID:    customer.ID,
		BillID:        &billID,
		InvoiceNo:     bill.InvoiceNo,
		BillAmount:    total.Neg(),
		Amount:        total.Neg(),
		Wallet:        customer.PendingAmount,
		CoinsReversed: reversed,
		PaymentStatus: enum.PaymentStatusReturn,
	})
	return reversed, err
}

// ListSaleReturns lists returns; stores only see their own
func (s *SaleReturnService) ListSaleReturns(ctx context.Context, scope Scope, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SaleReturn], error) {
	returns, total, err := s.returnRepo.List(ctx, scope.StoreFilter(), params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}
