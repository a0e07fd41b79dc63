package service

import (
	"context"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// AssignmentService moves warehouse stock to stores
type AssignmentService struct {
	tx             repository.TxManager
	assignmentRepo repository.AssignmentRepository
	productRepo    repository.ProductRepository
	bucketRepo     repository.StoreProductRepository
	storeRepo      repository.StoreRepository
	ledger         *StockLedger
	numbers        *NumberingService
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	tx repository.TxManager,
	assignmentRepo repository.AssignmentRepository,
	productRepo repository.ProductRepository,
	bucketRepo repository.StoreProductRepository,
	storeRepo repository.StoreRepository,
	ledger *StockLedger,
	numbers *NumberingService,
) *AssignmentService {
	return &AssignmentService{
		tx:             tx,
		assignmentRepo: assignmentRepo,
		productRepo:    productRepo,
		bucketRepo:     bucketRepo,
		storeRepo:      storeRepo,
		ledger:         ledger,
		numbers:        numbers,
	}
}

// AssignmentLineInput represents a product to assign
type AssignmentLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateAssignmentInput represents the create assignment input
type CreateAssignmentInput struct {
	StoreID uuid.UUID
	Lines   []AssignmentLineInput
}

// CreateAssignment takes stock out of the warehouse for a store. Either every
// line is applied or none is. The store bucket is credited on Receive.
func (s *AssignmentService) CreateAssignment(ctx context.Context, scope Scope, input *CreateAssignmentInput) (*entity.Assignment, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewFieldError("lines", "at least one line is required")
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	seen := make(map[uuid.UUID]bool, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewFieldError("lines.quantity", "quantity must be positive")
		}
		if seen[line.ProductID] {
			return nil, apperror.NewFieldError("lines.product_id", "duplicate product in assignment")
		}
		seen[line.ProductID] = true

		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		if product.Unit < line.Quantity {
			return nil, apperror.NewInsufficientStockError(product.Name, product.Unit, line.Quantity)
		}
	}

	assignmentNo, err := s.numbers.Next(ctx, CounterAssignment)
	if err != nil {
		return nil, err
	}

	assignment := &entity.Assignment{
		AssignmentNo: assignmentNo,
		StoreID:      store.ID,
		Status:       enum.AssignmentStatusProcess,
		CreatedByID:  scope.ActorID,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, line := range input.Lines {
			if _, err := s.ledger.Adjust(ctx, Warehouse(), line.ProductID, -line.Quantity); err != nil {
				return err
			}
			bucket, err := s.bucketRepo.Ensure(ctx, store.ID, line.ProductID)
			if err != nil {
				return err
			}
			assignment.Lines = append(assignment.Lines, entity.AssignmentLine{
				ProductID:      line.ProductID,
				AssignQuantity: line.Quantity,
				QuantityBefore: bucket.Quantity,
				QuantityAfter:  bucket.Quantity + line.Quantity,
			})
		}
		return s.assignmentRepo.Create(ctx, assignment)
	})
	if err != nil {
		return nil, err
	}

	return s.assignmentRepo.GetWithLines(ctx, assignment.ID)
}

// Dispatch marks an assignment as shipped. No stock moves.
func (s *AssignmentService) Dispatch(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Assignment, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status != enum.AssignmentStatusProcess {
		return nil, apperror.NewStateConflictError("Only assignments in Process can be dispatched, current status is " + assignment.Status.String())
	}

	now := time.Now()
	assignment.Status = enum.AssignmentStatusDispatched
	assignment.DispatchedAt = &now
	if err := s.transition(ctx, assignment, enum.AssignmentStatusProcess); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Receive delivers a dispatched assignment into the store bucket
func (s *AssignmentService) Receive(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireStoreOrAdmin(assignment.StoreID); err != nil {
		return nil, err
	}
	if assignment.Status != enum.AssignmentStatusDispatched {
		return nil, apperror.NewStateConflictError("Only dispatched assignments can be received, current status is " + assignment.Status.String())
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := time.Now()
		assignment.Status = enum.AssignmentStatusDelivered
		assignment.DeliveredAt = &now
		if err := s.transition(ctx, assignment, enum.AssignmentStatusDispatched); err != nil {
			return err
		}

		for i := range assignment.Lines {
			line := &assignment.Lines[i]
			after, err := s.ledger.Adjust(ctx, StoreBucket(assignment.StoreID), line.ProductID, line.AssignQuantity)
			if err != nil {
				return err
			}
			line.QuantityBefore = after - line.AssignQuantity
			line.QuantityAfter = after
			if err := s.assignmentRepo.UpdateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// Cancel voids an assignment still in Process and restores warehouse stock
func (s *AssignmentService) Cancel(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireStoreOrAdmin(assignment.StoreID); err != nil {
		return nil, err
	}
	if assignment.Status != enum.AssignmentStatusProcess {
		return nil, apperror.NewStateConflictError("Only assignments in Process can be canceled, current status is " + assignment.Status.String())
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := time.Now()
		actorID, actorType := scope.ActorID, scope.ActorType
		assignment.Status = enum.AssignmentStatusCanceled
		assignment.CanceledAt = &now
		assignment.CanceledByID = &actorID
		assignment.CanceledByType = &actorType
		if err := s.transition(ctx, assignment, enum.AssignmentStatusProcess); err != nil {
			return err
		}

		for _, line := range assignment.Lines {
			if _, err := s.ledger.Adjust(ctx, Warehouse(), line.ProductID, line.AssignQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// transition writes the new status only if the row is still in from, so a
// concurrent caller that lost the race gets a StateConflict and moves no stock
func (s *AssignmentService) transition(ctx context.Context, assignment *entity.Assignment, from enum.AssignmentStatus) error {
	ok, err := s.assignmentRepo.Transition(ctx, assignment, from)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewStateConflictError("Assignment " + assignment.AssignmentNo + " is no longer " + from.String())
	}
	return nil
}

// GetAssignment retrieves an assignment visible to the caller
func (s *AssignmentService) GetAssignment(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireStoreOrAdmin(assignment.StoreID); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListAssignments lists assignments; stores only see their own
func (s *AssignmentService) ListAssignments(ctx context.Context, scope Scope, params *repository.AssignmentFilterParams) (*pagination.PaginatedResult[entity.Assignment], error) {
	if filter := scope.StoreFilter(); filter != nil {
		params.StoreID = filter
	}
	assignments, total, err := s.assignmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(assignments, pag), nil
}

func (s *AssignmentService) getAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.assignmentRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperror.NewNotFoundError("Assignment")
	}
	return assignment, nil
}
