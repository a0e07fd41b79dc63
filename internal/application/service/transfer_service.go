package service

import (
	"context"
	"net/http"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransferService handles store to store product requests
type TransferService struct {
	tx          repository.TxManager
	requestRepo repository.ProductRequestRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	ledger      *StockLedger
}

// NewTransferService creates a new transfer service
func NewTransferService(
	tx repository.TxManager,
	requestRepo repository.ProductRequestRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	ledger *StockLedger,
) *TransferService {
	return &TransferService{
		tx:          tx,
		requestRepo: requestRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		ledger:      ledger,
	}
}

// CreateRequestInput represents a request for stock from another store
type CreateRequestInput struct {
	SupplyingStoreID uuid.UUID
	ProductID        uuid.UUID
	Quantity         int
}

// CreateRequest opens a Pending request from the calling store
func (s *TransferService) CreateRequest(ctx context.Context, scope Scope, input *CreateRequestInput) (*entity.ProductRequest, error) {
	requesterID, err := scope.RequireStore()
	if err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, apperror.NewFieldError("quantity", "quantity must be positive")
	}
	if input.SupplyingStoreID == requesterID {
		return nil, apperror.NewFieldError("supplying_store_id", "a store cannot request from itself")
	}

	supplier, err := s.storeRepo.GetByID(ctx, input.SupplyingStoreID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	req := &entity.ProductRequest{
		RequestingStoreID: requesterID,
		SupplyingStoreID:  supplier.ID,
		ProductID:         product.ID,
		RequestedQuantity: input.Quantity,
		Status:            enum.RequestStatusPending,
		RequestedAt:       time.Now(),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept moves the accepted quantity from the supplying store to the requester
func (s *TransferService) Accept(ctx context.Context, scope Scope, id uuid.UUID, acceptedQty int) (*entity.ProductRequest, error) {
	req, err := s.pendingForSupplier(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if acceptedQty <= 0 {
		return nil, apperror.NewFieldError("accepted_quantity", "accepted_quantity must be positive")
	}
	if acceptedQty > req.RequestedQuantity {
		return nil, apperror.NewExceedsRequestedError(req.RequestedQuantity, acceptedQty)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := time.Now()
		req.AcceptedQuantity = acceptedQty
		req.Status = enum.RequestStatusAccepted
		req.AcceptedAt = &now
		if err := s.transition(ctx, req, enum.RequestStatusPending); err != nil {
			return err
		}

		if _, err := s.ledger.Adjust(ctx, StoreBucket(req.SupplyingStoreID), req.ProductID, -acceptedQty); err != nil {
			return err
		}
		_, err := s.ledger.Adjust(ctx, StoreBucket(req.RequestingStoreID), req.ProductID, acceptedQty)
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Reject declines a Pending request. No stock moves.
func (s *TransferService) Reject(ctx context.Context, scope Scope, id uuid.UUID) (*entity.ProductRequest, error) {
	req, err := s.pendingForSupplier(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = enum.RequestStatusRejected
	req.RejectedAt = &now
	if err := s.transition(ctx, req, enum.RequestStatusPending); err != nil {
		return nil, err
	}
	return req, nil
}

// Receive confirms arrival of an accepted transfer at the requesting store
func (s *TransferService) Receive(ctx context.Context, scope Scope, id uuid.UUID) (*entity.ProductRequest, error) {
	req, err := s.forRequester(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Status != enum.RequestStatusAccepted {
		return nil, apperror.NewStateConflictError("Only accepted requests can be received, current status is " + req.Status.String())
	}

	now := time.Now()
	req.Status = enum.RequestStatusReceived
	req.ReceivedAt = &now
	if err := s.transition(ctx, req, enum.RequestStatusAccepted); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel withdraws a Pending request
func (s *TransferService) Cancel(ctx context.Context, scope Scope, id uuid.UUID) (*entity.ProductRequest, error) {
	req, err := s.forRequester(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Status != enum.RequestStatusPending {
		return nil, apperror.NewStateConflictError("Only pending requests can be canceled, current status is " + req.Status.String())
	}

	now := time.Now()
	req.Status = enum.RequestStatusCanceled
	req.CanceledAt = &now
	if err := s.transition(ctx, req, enum.RequestStatusPending); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequests lists requests the caller takes part in; admins see all
func (s *TransferService) ListRequests(ctx context.Context, scope Scope, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ProductRequest], error) {
	reqs, total, err := s.requestRepo.ListForStore(ctx, scope.StoreFilter(), params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(reqs, pag), nil
}

func (s *TransferService) transition(ctx context.Context, req *entity.ProductRequest, from enum.RequestStatus) error {
	ok, err := s.requestRepo.Transition(ctx, req, from)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewStateConflictError("Product request is no longer " + from.String())
	}
	return nil
}

func (s *TransferService) getRequest(ctx context.Context, id uuid.UUID) (*entity.ProductRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperror.NewNotFoundError("Product request")
	}
	return req, nil
}

// pendingForSupplier loads a request only its supplying store may decide
func (s *TransferService) pendingForSupplier(ctx context.Context, scope Scope, id uuid.UUID) (*entity.ProductRequest, error) {
	req, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.IsStore() || scope.ActorID != req.SupplyingStoreID {
		return nil, apperror.NewAppError(http.StatusForbidden, apperror.KindForbidden, "Only the supplying store can decide this request")
	}
	if req.Status != enum.RequestStatusPending {
		return nil, apperror.NewStateConflictError("Request is already " + req.Status.String())
	}
	return req, nil
}

func (s *TransferService) forRequester(ctx context.Context, scope Scope, id uuid.UUID) (*entity.ProductRequest, error) {
	req, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.IsStore() || scope.ActorID != req.RequestingStoreID {
		return nil, apperror.NewAppError(http.StatusForbidden, apperror.KindForbidden, "Only the requesting store can update this request")
	}
	return req, nil
}
