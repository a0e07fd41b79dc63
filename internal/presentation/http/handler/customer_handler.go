package handler

import (
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/request"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer balances and payments
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), middleware.ScopeFrom(c), pageParams(q.Page, q.PerPage), q.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Customers retrieved successfully", result)
}

// GetByMobile handles looking up a customer's balances
func (h *CustomerHandler) GetByMobile(c *gin.Context) {
	customer, err := h.customerService.GetByMobile(c.Request.Context(), middleware.ScopeFrom(c), c.Param("mobile"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Unpaid handles listing a customer's open credit bills, oldest first
func (h *CustomerHandler) Unpaid(c *gin.Context) {
	txns, err := h.customerService.ListUnpaid(c.Request.Context(), middleware.ScopeFrom(c), c.Param("mobile"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unpaid bills retrieved successfully", txns)
}

// Transactions handles a customer's ledger history
func (h *CustomerHandler) Transactions(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListTransactions(c.Request.Context(), middleware.ScopeFrom(c), c.Param("mobile"), pageParams(q.Page, q.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Transactions retrieved successfully", result)
}

// Settle handles a payment against the customer's outstanding balance
func (h *CustomerHandler) Settle(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.customerService.Settle(c.Request.Context(), middleware.ScopeFrom(c), c.Param("mobile"), *toPaymentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", result)
}
