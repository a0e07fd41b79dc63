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

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) domainRepo.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	return conn(ctx, r.db).Create(assignment).Error
}

func (r *assignmentRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	var assignment entity.Assignment
	err := conn(ctx, r.db).
		Preload("Store").Preload("Lines").Preload("Lines.Product").
		First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assignment, err
}

func (r *assignmentRepository) Transition(ctx context.Context, assignment *entity.Assignment, from enum.AssignmentStatus) (bool, error) {
	result := conn(ctx, r.db).Model(assignment).
		Where("status = ?", from).
		Select("Status", "DispatchedAt", "DeliveredAt", "CanceledAt", "CanceledByID", "CanceledByType", "UpdatedAt").
		Updates(assignment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *assignmentRepository) UpdateLine(ctx context.Context, line *entity.AssignmentLine) error {
	return conn(ctx, r.db).Model(&entity.AssignmentLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]interface{}{
			"quantity_before": line.QuantityBefore,
			"quantity_after":  line.QuantityAfter,
		}).Error
}

func (r *assignmentRepository) List(ctx context.Context, params *domainRepo.AssignmentFilterParams) ([]entity.Assignment, int64, error) {
	var assignments []entity.Assignment
	var total int64

	query := conn(ctx, r.db).Model(&entity.Assignment{}).Scopes(StoreScope(params.StoreID))
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Store").Preload("Lines").
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, total, err
}

type productRequestRepository struct {
	db *gorm.DB
}

// NewProductRequestRepository creates a new product request repository
func NewProductRequestRepository(db *gorm.DB) domainRepo.ProductRequestRepository {
	return &productRequestRepository{db: db}
}

func (r *productRequestRepository) Create(ctx context.Context, req *entity.ProductRequest) error {
	return conn(ctx, r.db).Create(req).Error
}

func (r *productRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductRequest, error) {
	var req entity.ProductRequest
	err := conn(ctx, r.db).Preload("Product").First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

func (r *productRequestRepository) Transition(ctx context.Context, req *entity.ProductRequest, from enum.RequestStatus) (bool, error) {
	result := conn(ctx, r.db).Model(req).
		Where("status = ?", from).
		Select("Status", "AcceptedQuantity", "AcceptedAt", "RejectedAt", "ReceivedAt", "CanceledAt", "UpdatedAt").
		Updates(req)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *productRequestRepository) ListForStore(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductRequest, int64, error) {
	var reqs []entity.ProductRequest
	var total int64

	query := conn(ctx, r.db).Model(&entity.ProductRequest{})
	if storeID != nil {
		query = query.Where("requesting_store_id = ? OR supplying_store_id = ?", *storeID, *storeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(Paginate(params)).
		Preload("Product").
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, total, err
}
