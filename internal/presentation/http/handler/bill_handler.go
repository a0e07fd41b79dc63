package handler

import (
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/request"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// BillHandler handles point-of-sale bills and sale returns
type BillHandler struct {
	billingService *service.BillingService
	returnService  *service.SaleReturnService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService, returnService *service.SaleReturnService) *BillHandler {
	return &BillHandler{billingService: billingService, returnService: returnService}
}

func toPaymentInput(p *request.PaymentRequest) *service.PaymentInput {
	if p == nil {
		return nil
	}
	return &service.PaymentInput{Cash: p.Cash, UPI: p.UPI, BankTransfer: p.BankTransfer}
}

// Create handles issuing a bill
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.CreateBillInput{
		StoreID: req.StoreID,
		Customer: service.BillCustomerInput{
			Name:   req.CustomerName,
			Mobile: req.CustomerMobile,
			GST:    req.CustomerGST,
		},
		Discount:  req.Discount,
		UsedCoins: req.UsedCoins,
		Payment:   toPaymentInput(req.Payment),
		Items:     make([]service.BillItemInput, 0, len(req.Items)),
	}
	if date != nil {
		input.Date = *date
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.BillItemInput{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			PriceBeforeTax: item.PriceBeforeTax,
			Discount:       item.Discount,
		})
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), middleware.ScopeFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles retrieving a bill with its items
func (h *BillHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := billFilter(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.billingService.ListBills(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Bills retrieved successfully", result)
}

func billFilter(filter *request.BillFilterRequest) (*repository.BillFilterParams, error) {
	params := &repository.BillFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Mobile:     filter.Mobile,
	}

	storeID, err := optionalUUID("store_id", filter.StoreID)
	if err != nil {
		return nil, err
	}
	params.StoreID = storeID

	if filter.Status != "" {
		status := enum.PaymentStatus(filter.Status)
		if !status.Valid() {
			return nil, apperror.NewFieldError("status", "unknown status "+filter.Status)
		}
		params.Status = &status
	}

	if params.StartDate, err = parseDate("start_date", filter.StartDate); err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", filter.EndDate)
	if err != nil {
		return nil, err
	}
	params.EndDate = endOfDay(end)
	return params, nil
}

// CreateReturn handles a customer returning goods against an invoice
func (h *BillHandler) CreateReturn(c *gin.Context) {
	var req request.CreateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateSaleReturnInput{
		InvoiceNo: req.InvoiceNo,
		Method:    req.Method,
		Items:     make([]service.SaleReturnItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.SaleReturnItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	ret, err := h.returnService.CreateSaleReturn(c.Request.Context(), middleware.ScopeFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale return recorded successfully", ret)
}

// ListReturns handles listing sale returns
func (h *BillHandler) ListReturns(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.returnService.ListSaleReturns(c.Request.Context(), middleware.ScopeFrom(c), pageParams(q.Page, q.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sale returns retrieved successfully", result)
}
