package service

import (
	"context"
	"strings"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseService handles vendor purchase intake and revision
type PurchaseService struct {
	tx           repository.TxManager
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	companyRepo  repository.CompanyRepository
	ledger       *StockLedger
	barcodes     *BarcodeGenerator
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	tx repository.TxManager,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	ledger *StockLedger,
	barcodes *BarcodeGenerator,
) *PurchaseService {
	return &PurchaseService{
		tx:           tx,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		companyRepo:  companyRepo,
		ledger:       ledger,
		barcodes:     barcodes,
	}
}

// PurchaseLineInput represents a product line of a purchase
type PurchaseLineInput struct {
	Name                       string
	Type                       string
	HSN                        string
	Quantity                   int
	PurchasePrice              decimal.Decimal
	PurchasePriceAfterDiscount decimal.Decimal
	ProfitPercent              decimal.Decimal
	PriceBeforeTax             decimal.Decimal
	TaxPercent                 decimal.Decimal
	SellingPrice               decimal.Decimal
	PrintPrice                 decimal.Decimal
}

// PurchaseInput represents the create and update purchase input
type PurchaseInput struct {
	CompanyID       uuid.UUID
	Date            time.Time
	InvoiceNo       string
	OrderNo         string
	Discount        decimal.Decimal
	Remarks         *string
	TransportName   *string
	TransportCharge decimal.Decimal
	Lines           []PurchaseLineInput
}

func (in *PurchaseInput) validate() error {
	var errs []apperror.FieldError
	if in.CompanyID == uuid.Nil {
		errs = append(errs, apperror.FieldError{Field: "company_id", Message: "company_id is required"})
	}
	if len(in.Lines) == 0 {
		errs = append(errs, apperror.FieldError{Field: "lines", Message: "at least one line is required"})
	}
	seen := make(map[string]bool, len(in.Lines))
	for i := range in.Lines {
		in.Lines[i].Name = strings.TrimSpace(in.Lines[i].Name)
		line := in.Lines[i]
		switch {
		case line.Name == "":
			errs = append(errs, apperror.FieldError{Field: "lines.name", Message: "name is required"})
		case seen[line.Name]:
			errs = append(errs, apperror.FieldError{Field: "lines.name", Message: "duplicate product " + line.Name})
		}
		seen[line.Name] = true
		if line.Quantity <= 0 {
			errs = append(errs, apperror.FieldError{Field: "lines.quantity", Message: "quantity must be positive"})
		}
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	return nil
}

// CreatePurchase records a vendor invoice and adds its quantities to warehouse stock
func (s *PurchaseService) CreatePurchase(ctx context.Context, scope Scope, input *PurchaseInput) (*entity.Purchase, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.requireCompany(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{CreatedByID: scope.ActorID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkVendorBinding(ctx, input, nil); err != nil {
			return err
		}

		details, err := s.intake(ctx, input.Lines, nil)
		if err != nil {
			return err
		}
		applyPurchaseHeader(purchase, input)
		purchase.Details = details
		return s.purchaseRepo.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// UpdatePurchase revises a purchase: every old line is rolled back out of
// warehouse stock before the new lines are applied. A rollback is floored at
// the stock on hand and the shortfall is taken out of the new line for the
// same product, so the final unit is always current - old + new.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, scope Scope, id uuid.UUID, input *PurchaseInput) (*entity.Purchase, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if err := s.requireCompany(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkVendorBinding(ctx, input, &purchase.ID); err != nil {
			return err
		}

		shortfall, err := s.planRevision(ctx, purchase.Details, input.Lines)
		if err != nil {
			return err
		}
		for _, old := range purchase.Details {
			rollback := old.Quantity - shortfall[old.ProductID]
			if rollback == 0 {
				continue
			}
			if _, err := s.ledger.Adjust(ctx, Warehouse(), old.ProductID, -rollback); err != nil {
				return err
			}
		}

		details, err := s.intake(ctx, input.Lines, shortfall)
		if err != nil {
			return err
		}
		applyPurchaseHeader(purchase, input)
		updatedBy := scope.ActorID
		purchase.UpdatedByID = &updatedBy
		purchase.Details = details
		purchase.Company = nil
		return s.purchaseRepo.Update(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// planRevision checks that every old product ends at current - old + new >= 0
// and returns, per product, how much of the old quantity is no longer on hand
func (s *PurchaseService) planRevision(ctx context.Context, oldLines []entity.PurchaseDetail, newLines []PurchaseLineInput) (map[uuid.UUID]int, error) {
	incoming := make(map[uuid.UUID]int, len(newLines))
	for _, line := range newLines {
		product, err := s.productRepo.GetByName(ctx, line.Name)
		if err != nil {
			return nil, err
		}
		if product != nil {
			incoming[product.ID] += line.Quantity
		}
	}

	outgoing := make(map[uuid.UUID]int, len(oldLines))
	names := make(map[uuid.UUID]string, len(oldLines))
	order := make([]uuid.UUID, 0, len(oldLines))
	for _, old := range oldLines {
		if _, seen := outgoing[old.ProductID]; !seen {
			order = append(order, old.ProductID)
			names[old.ProductID] = old.Name
		}
		outgoing[old.ProductID] += old.Quantity
	}

	shortfall := make(map[uuid.UUID]int)
	for _, productID := range order {
		current, err := s.ledger.Quantity(ctx, Warehouse(), productID)
		if err != nil {
			return nil, err
		}
		old, added := outgoing[productID], incoming[productID]
		if current-old+added < 0 {
			return nil, apperror.NewInsufficientStockError(names[productID], current, old-added)
		}
		if old > current {
			shortfall[productID] = old - current
		}
	}
	return shortfall, nil
}

// GetPurchase retrieves a purchase with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Purchase, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, scope Scope, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

func (s *PurchaseService) requireCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewNotFoundError("Company")
	}
	return nil
}

// checkVendorBinding fails if any named product was bought from another company
func (s *PurchaseService) checkVendorBinding(ctx context.Context, input *PurchaseInput, excludePurchaseID *uuid.UUID) error {
	for _, line := range input.Lines {
		product, err := s.productRepo.GetByName(ctx, line.Name)
		if err != nil {
			return err
		}
		if product == nil {
			continue
		}
		bound, err := s.purchaseRepo.BoundToOtherCompany(ctx, product.ID, input.CompanyID, excludePurchaseID)
		if err != nil {
			return err
		}
		if bound {
			return apperror.NewVendorConflictError(line.Name)
		}
	}
	return nil
}

// intake creates unseen products, overwrites pricing and adds each line to
// warehouse stock less any rollback shortfall carried for that product
func (s *PurchaseService) intake(ctx context.Context, lines []PurchaseLineInput, shortfall map[uuid.UUID]int) ([]entity.PurchaseDetail, error) {
	details := make([]entity.PurchaseDetail, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.GetByName(ctx, line.Name)
		if err != nil {
			return nil, err
		}

		if product == nil {
			barcode, err := s.barcodes.Generate(ctx)
			if err != nil {
				return nil, err
			}
			product = &entity.Product{Name: line.Name, Barcode: barcode, IsActive: true}
			applyLinePricing(product, line)
			if err := s.productRepo.Create(ctx, product); err != nil {
				return nil, err
			}
		} else {
			applyLinePricing(product, line)
			if err := s.productRepo.UpdatePricing(ctx, product); err != nil {
				return nil, err
			}
		}

		if credit := line.Quantity - shortfall[product.ID]; credit > 0 {
			if _, err := s.ledger.Adjust(ctx, Warehouse(), product.ID, credit); err != nil {
				return nil, err
			}
		}

		details = append(details, entity.PurchaseDetail{
			ProductID:                  product.ID,
			Name:                       line.Name,
			Type:                       line.Type,
			HSN:                        line.HSN,
			Quantity:                   line.Quantity,
			PurchasePrice:              line.PurchasePrice,
			PurchasePriceAfterDiscount: line.PurchasePriceAfterDiscount,
			ProfitPercent:              line.ProfitPercent,
			PriceBeforeTax:             line.PriceBeforeTax,
			TaxPercent:                 line.TaxPercent,
			SellingPrice:               line.SellingPrice,
			PrintPrice:                 line.PrintPrice,
		})
	}
	return details, nil
}

// Last purchase wins: catalog pricing follows the newest line
func applyLinePricing(product *entity.Product, line PurchaseLineInput) {
	product.Type = line.Type
	product.HSN = line.HSN
	product.PurchasePrice = line.PurchasePrice
	product.PriceBeforeTax = line.PriceBeforeTax
	product.TaxPercent = line.TaxPercent
	product.SellingPrice = line.SellingPrice
	product.PrintPrice = line.PrintPrice
}

func applyPurchaseHeader(purchase *entity.Purchase, input *PurchaseInput) {
	purchase.CompanyID = input.CompanyID
	purchase.Date = input.Date
	purchase.InvoiceNo = input.InvoiceNo
	purchase.OrderNo = input.OrderNo
	purchase.Discount = input.Discount
	purchase.Remarks = input.Remarks
	purchase.TransportName = input.TransportName
	purchase.TransportCharge = input.TransportCharge
}
