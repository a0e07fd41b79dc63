package handler

import (
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/request"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles vendor purchases and purchase returns
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
	returnService   *service.PurchaseReturnService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService, returnService *service.PurchaseReturnService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, returnService: returnService}
}

func toPurchaseInput(req *request.PurchaseRequest) (*service.PurchaseInput, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	input := &service.PurchaseInput{
		CompanyID:       req.CompanyID,
		InvoiceNo:       req.InvoiceNo,
		OrderNo:         req.OrderNo,
		Discount:        req.Discount,
		Remarks:         req.Remarks,
		TransportName:   req.TransportName,
		TransportCharge: req.TransportCharge,
		Lines:           make([]service.PurchaseLineInput, 0, len(req.Lines)),
	}
	if date != nil {
		input.Date = *date
	}
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.PurchaseLineInput{
			Name:                       l.Name,
			Type:                       l.Type,
			HSN:                        l.HSN,
			Quantity:                   l.Quantity,
			PurchasePrice:              l.PurchasePrice,
			PurchasePriceAfterDiscount: l.PurchasePriceAfterDiscount,
			ProfitPercent:              l.ProfitPercent,
			PriceBeforeTax:             l.PriceBeforeTax,
			TaxPercent:                 l.TaxPercent,
			SellingPrice:               l.SellingPrice,
			PrintPrice:                 l.PrintPrice,
		})
	}
	return input, nil
}

// Create handles recording a vendor invoice
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input, err := toPurchaseInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), middleware.ScopeFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// Update handles revising a purchase
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input, err := toPurchaseInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), middleware.ScopeFrom(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase updated successfully", purchase)
}

// Get handles retrieving a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PurchaseFilterParams{Pagination: pageParams(filter.Page, filter.PerPage)}
	var err error
	if params.CompanyID, err = optionalUUID("company_id", filter.CompanyID); err != nil {
		response.Error(c, err)
		return
	}
	if params.StartDate, err = parseDate("start_date", filter.StartDate); err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDate("end_date", filter.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	params.EndDate = endOfDay(end)

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Purchases retrieved successfully", result)
}

// CreateReturn handles sending stock back to a vendor
func (h *PurchaseHandler) CreateReturn(c *gin.Context) {
	var req request.PurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.PurchaseReturnInput{
		CompanyID: req.CompanyID,
		Remarks:   req.Remarks,
		Lines:     make([]service.PurchaseReturnLineInput, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.PurchaseReturnLineInput{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			Price:      l.Price,
			TaxPercent: l.TaxPercent,
		})
	}

	ret, err := h.returnService.CreatePurchaseReturn(c.Request.Context(), middleware.ScopeFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase return created successfully", ret)
}

// ListReturns handles listing vendor returns
func (h *PurchaseHandler) ListReturns(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	companyID, err := optionalUUID("company_id", c.Query("company_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.returnService.ListPurchaseReturns(c.Request.Context(), middleware.ScopeFrom(c), pageParams(q.Page, q.PerPage), companyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Purchase returns retrieved successfully", result)
}
