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
	"github.com/shopspring/decimal"
)

// CustomerService maintains customer wallets, coins and settlement
type CustomerService struct {
	tx           repository.TxManager
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	billRepo     repository.BillRepository
	coinUnit     int64
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	tx repository.TxManager,
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	billRepo repository.BillRepository,
	coinUnit int64,
) *CustomerService {
	return &CustomerService{
		tx:           tx,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		billRepo:     billRepo,
		coinUnit:     coinUnit,
	}
}

// PaymentInput is a payment split by method
type PaymentInput struct {
	Cash         decimal.Decimal
	UPI          decimal.Decimal
	BankTransfer decimal.Decimal
}

// Amount is the total paid across methods
func (p PaymentInput) Amount() decimal.Decimal {
	return p.Cash.Add(p.UPI).Add(p.BankTransfer)
}

// Methods names the methods used, e.g. "Cash,UPI"
func (p PaymentInput) Methods() string {
	var methods []string
	if p.Cash.IsPositive() {
		methods = append(methods, enum.PaymentMethodCash.String())
	}
	if p.UPI.IsPositive() {
		methods = append(methods, enum.PaymentMethodUPI.String())
	}
	if p.BankTransfer.IsPositive() {
		methods = append(methods, enum.PaymentMethodBankTransfer.String())
	}
	return strings.Join(methods, ",")
}

func (p PaymentInput) validate() error {
	if p.Cash.IsNegative() || p.UPI.IsNegative() || p.BankTransfer.IsNegative() {
		return apperror.NewFieldError("payment", "payment amounts cannot be negative")
	}
	return nil
}

// SettlementResult summarizes one payment
type SettlementResult struct {
	Customer       *entity.Customer     `json:"customer"`
	Payment        *entity.Transaction  `json:"payment"`
	Settled        []entity.Transaction `json:"settled"`
	CoinsGenerated int                  `json:"coins_generated"`
}

// Settle applies a payment from the customer with this mobile number
func (s *CustomerService) Settle(ctx context.Context, scope Scope, mobile string, payment PaymentInput) (*SettlementResult, error) {
	if !scope.IsAdmin() && !scope.IsStore() {
		return nil, apperror.ErrUnauthorized
	}
	if err := payment.validate(); err != nil {
		return nil, err
	}
	if !payment.Amount().IsPositive() {
		return nil, apperror.NewFieldError("payment", "payment amount must be positive")
	}

	var result *SettlementResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByMobile(ctx, strings.TrimSpace(mobile))
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		result, err = s.settle(ctx, customer, payment)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settle pays unpaid bills oldest first and stops at the first bill the
// available money cannot cover. Coins come from the raw payment.
func (s *CustomerService) settle(ctx context.Context, customer *entity.Customer, payment PaymentInput) (*SettlementResult, error) {
	amount := payment.Amount()
	available := amount.Add(customer.RemainingPaid)

	unpaid, err := s.txnRepo.ListUnpaid(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	settled := make([]entity.Transaction, 0, len(unpaid))
	for _, txn := range unpaid {
		due := txn.NetDue()
		if available.LessThan(due) {
			break
		}
		if err := s.txnRepo.MarkPaid(ctx, txn.ID, now); err != nil {
			return nil, err
		}
		if txn.BillID != nil {
			if err := s.billRepo.UpdatePaymentStatus(ctx, *txn.BillID, enum.PaymentStatusPaid); err != nil {
				return nil, err
			}
		}
		available = available.Sub(due)
		txn.PaymentStatus = enum.PaymentStatusPaid
		txn.PaidAt = &now
		settled = append(settled, txn)
	}

	coins := coinsFor(amount, s.coinUnit)
	customer.PaidAmount = customer.PaidAmount.Add(amount)
	customer.Coins += coins
	customer.RemainingPaid = available
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	record := &entity.Transaction{
		CustomerID:     customer.ID,
		Amount:         amount,
		Cash:           payment.Cash,
		UPI:            payment.UPI,
		BankTransfer:   payment.BankTransfer,
		Wallet:         customer.PendingAmount,
		CoinsGenerated: coins,
		PaymentStatus:  enum.PaymentStatusPaid,
		PaidAt:         &now,
	}
	if err := s.txnRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &SettlementResult{
		Customer:       customer,
		Payment:        record,
		Settled:        settled,
		CoinsGenerated: coins,
	}, nil
}

// GetByMobile returns a customer with the pending amount recomputed
func (s *CustomerService) GetByMobile(ctx context.Context, scope Scope, mobile string) (*entity.Customer, error) {
	if !scope.IsAdmin() && !scope.IsStore() {
		return nil, apperror.ErrUnauthorized
	}
	customer, err := s.customerRepo.GetByMobile(ctx, strings.TrimSpace(mobile))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	customer.PendingAmount = customer.Pending()
	return customer, nil
}

// ListUnpaid returns the customer's unpaid bill entries oldest first
func (s *CustomerService) ListUnpaid(ctx context.Context, scope Scope, mobile string) ([]entity.Transaction, error) {
	customer, err := s.GetByMobile(ctx, scope, mobile)
	if err != nil {
		return nil, err
	}
	return s.txnRepo.ListUnpaid(ctx, customer.ID)
}

// ListTransactions pages through every ledger entry of the customer
func (s *CustomerService) ListTransactions(ctx context.Context, scope Scope, mobile string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	customer, err := s.GetByMobile(ctx, scope, mobile)
	if err != nil {
		return nil, err
	}
	txns, total, err := s.txnRepo.ListByCustomer(ctx, customer.ID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// ListCustomers lists customers, optionally filtered by name or mobile
func (s *CustomerService) ListCustomers(ctx context.Context, scope Scope, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
