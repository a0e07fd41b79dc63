package handler

import (
	"context"
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/request"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssignmentHandler handles warehouse to store assignments
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// Create handles assigning warehouse stock to a store
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req request.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateAssignmentInput{
		StoreID: req.StoreID,
		Lines:   make([]service.AssignmentLineInput, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.AssignmentLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), middleware.ScopeFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Assignment created successfully", assignment)
}

type assignmentTransition func(ctx context.Context, scope service.Scope, id uuid.UUID) (*entity.Assignment, error)

func (h *AssignmentHandler) transition(c *gin.Context, fn assignmentTransition, message string) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	assignment, err := fn(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, assignment)
}

// Dispatch handles marking an assignment as shipped
func (h *AssignmentHandler) Dispatch(c *gin.Context) {
	h.transition(c, h.assignmentService.Dispatch, "Assignment dispatched")
}

// Receive handles delivery into the store
func (h *AssignmentHandler) Receive(c *gin.Context) {
	h.transition(c, h.assignmentService.Receive, "Assignment received")
}

// Cancel handles voiding an assignment
func (h *AssignmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.assignmentService.Cancel, "Assignment canceled")
}

// Get handles retrieving an assignment
func (h *AssignmentHandler) Get(c *gin.Context) {
	h.transition(c, h.assignmentService.GetAssignment, "Assignment retrieved successfully")
}

// List handles listing assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter request.AssignmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AssignmentFilterParams{Pagination: pageParams(filter.Page, filter.PerPage)}
	storeID, err := optionalUUID("store_id", filter.StoreID)
	if err != nil {
		response.Error(c, err)
		return
	}
	params.StoreID = storeID
	if filter.Status != "" {
		status := enum.AssignmentStatus(filter.Status)
		if !status.Valid() {
			response.Error(c, apperror.NewFieldError("status", "unknown status "+filter.Status))
			return
		}
		params.Status = &status
	}

	result, err := h.assignmentService.ListAssignments(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Assignments retrieved successfully", result)
}
