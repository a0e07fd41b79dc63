package service

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseReturnService sends warehouse stock back to vendors
type PurchaseReturnService struct {
	tx           repository.TxManager
	returnRepo   repository.PurchaseReturnRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	companyRepo  repository.CompanyRepository
	ledger       *StockLedger
	numbers      *NumberingService
}

// NewPurchaseReturnService creates a new purchase return service
func NewPurchaseReturnService(
	tx repository.TxManager,
	returnRepo repository.PurchaseReturnRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	ledger *StockLedger,
	numbers *NumberingService,
) *PurchaseReturnService {
	return &PurchaseReturnService{
		tx:           tx,
		returnRepo:   returnRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		companyRepo:  companyRepo,
		ledger:       ledger,
		numbers:      numbers,
	}
}

// PurchaseReturnLineInput represents a returned product. Price and TaxPercent
// default to the latest purchase line of the product.
type PurchaseReturnLineInput struct {
	ProductID  uuid.UUID
	Quantity   int
	Price      *decimal.Decimal
	TaxPercent *decimal.Decimal
}

// PurchaseReturnInput represents the create purchase return input
type PurchaseReturnInput struct {
	CompanyID uuid.UUID
	Remarks   *string
	Lines     []PurchaseReturnLineInput
}

// CreatePurchaseReturn removes returned quantities from warehouse stock
func (s *PurchaseReturnService) CreatePurchaseReturn(ctx context.Context, scope Scope, input *PurchaseReturnInput) (*entity.PurchaseReturn, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if input.CompanyID == uuid.Nil {
		return nil, apperror.NewFieldError("company_id", "company_id is required")
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewFieldError("lines", "at least one line is required")
	}

	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	seen := make(map[uuid.UUID]bool, len(input.Lines))
	details := make([]entity.PurchaseReturnDetail, 0, len(input.Lines))
	total := decimal.Zero

	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewFieldError("lines.quantity", "quantity must be positive")
		}
		if seen[line.ProductID] {
			return nil, apperror.NewFieldError("lines.product_id", "duplicate product in return")
		}
		seen[line.ProductID] = true

		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		if line.Quantity > product.Unit {
			return nil, apperror.NewInsufficientStockError(product.Name, product.Unit, line.Quantity)
		}

		purchased, err := s.purchaseRepo.SumPurchasedQuantity(ctx, input.CompanyID, product.ID)
		if err != nil {
			return nil, err
		}
		if line.Quantity > purchased {
			return nil, apperror.NewExceedsOriginalError(product.Name, purchased, line.Quantity)
		}

		price, tax, err := s.returnPricing(ctx, line, product)
		if err != nil {
			return nil, err
		}
		lineTotal := withTax(price, tax).Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		details = append(details, entity.PurchaseReturnDetail{
			ProductID:         product.ID,
			Name:              product.Name,
			PurchasedQuantity: purchased,
			ReturnQuantity:    line.Quantity,
			Price:             price,
			TaxPercent:        tax,
			Total:             lineTotal,
		})
	}

	returnNo, err := s.numbers.Next(ctx, CounterPurchaseReturn)
	if err != nil {
		return nil, err
	}

	ret := &entity.PurchaseReturn{
		ReturnNo:    returnNo,
		CompanyID:   input.CompanyID,
		CreatedByID: scope.ActorID,
		TotalAmount: total,
		Remarks:     input.Remarks,
		Details:     details,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, d := range details {
			if _, err := s.ledger.Adjust(ctx, Warehouse(), d.ProductID, -d.ReturnQuantity); err != nil {
				return err
			}
		}
		return s.returnRepo.Create(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	return s.returnRepo.GetWithDetails(ctx, ret.ID)
}

func (s *PurchaseReturnService) returnPricing(ctx context.Context, line PurchaseReturnLineInput, product *entity.Product) (decimal.Decimal, decimal.Decimal, error) {
	if line.Price != nil && line.TaxPercent != nil {
		return *line.Price, *line.TaxPercent, nil
	}

	price, tax := product.PurchasePrice, product.TaxPercent
	latest, err := s.purchaseRepo.LatestDetail(ctx, product.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if latest != nil {
		price, tax = latest.PurchasePrice, latest.TaxPercent
		if !latest.PurchasePriceAfterDiscount.IsZero() {
			price = latest.PurchasePriceAfterDiscount
		}
	}
	if line.Price != nil {
		price = *line.Price
	}
	if line.TaxPercent != nil {
		tax = *line.TaxPercent
	}
	return price, tax, nil
}

// ListPurchaseReturns lists vendor returns, optionally for one company
func (s *PurchaseReturnService) ListPurchaseReturns(ctx context.Context, scope Scope, params *pagination.PaginationParams, companyID *uuid.UUID) (*pagination.PaginatedResult[entity.PurchaseReturn], error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	returns, total, err := s.returnRepo.List(ctx, params, companyID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}
