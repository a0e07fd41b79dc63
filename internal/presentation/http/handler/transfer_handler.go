package handler

import (
	"context"
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/request"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles store to store product requests
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Create handles opening a request to another store
func (h *TransferHandler) Create(c *gin.Context) {
	var req request.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pr, err := h.transferService.CreateRequest(c.Request.Context(), middleware.ScopeFrom(c), &service.CreateRequestInput{
		SupplyingStoreID: req.SupplyingStoreID,
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product request created successfully", pr)
}

// Accept handles the supplier accepting a request
func (h *TransferHandler) Accept(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.AcceptTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pr, err := h.transferService.Accept(c.Request.Context(), middleware.ScopeFrom(c), id, req.AcceptedQuantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product request accepted", pr)
}

type requestTransition func(ctx context.Context, scope service.Scope, id uuid.UUID) (*entity.ProductRequest, error)

func (h *TransferHandler) transition(c *gin.Context, fn requestTransition, message string) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	pr, err := fn(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, pr)
}

// Reject handles the supplier declining a request
func (h *TransferHandler) Reject(c *gin.Context) {
	h.transition(c, h.transferService.Reject, "Product request rejected")
}

// Receive handles the requester confirming arrival
func (h *TransferHandler) Receive(c *gin.Context) {
	h.transition(c, h.transferService.Receive, "Product request received")
}

// Cancel handles the requester withdrawing a request
func (h *TransferHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transferService.Cancel, "Product request canceled")
}

// List handles listing requests the caller takes part in
func (h *TransferHandler) List(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.transferService.ListRequests(c.Request.Context(), middleware.ScopeFrom(c), pageParams(q.Page, q.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Product requests retrieved successfully", result)
}
