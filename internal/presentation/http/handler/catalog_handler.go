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

// CatalogHandler handles products, vendor companies and stores
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateProduct handles catalog product creation
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), middleware.ScopeFrom(c), &service.CreateProductInput{
		Name:           req.Name,
		Type:           req.Type,
		HSN:            req.HSN,
		PurchasePrice:  req.PurchasePrice,
		PriceBeforeTax: req.PriceBeforeTax,
		TaxPercent:     req.TaxPercent,
		SellingPrice:   req.SellingPrice,
		PrintPrice:     req.PrintPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// ListProducts handles listing catalog products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: pageParams(q.Page, q.PerPage),
		Search:     q.Search,
		ActiveOnly: c.Query("active") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// GetProductByBarcode handles the barcode scan lookup
func (h *CatalogHandler) GetProductByBarcode(c *gin.Context) {
	product, err := h.catalogService.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// CreateCompany handles vendor creation
func (h *CatalogHandler) CreateCompany(c *gin.Context) {
	var req request.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.catalogService.CreateCompany(c.Request.Context(), middleware.ScopeFrom(c), &service.CreateCompanyInput{
		Name:      req.Name,
		GSTNumber: req.GSTNumber,
		Mobile:    req.Mobile,
		Address:   req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// ListCompanies handles listing vendors
func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.catalogService.ListCompanies(c.Request.Context(), middleware.ScopeFrom(c), pageParams(q.Page, q.PerPage), q.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Companies retrieved successfully", result)
}

// CreateStore handles store account creation
func (h *CatalogHandler) CreateStore(c *gin.Context) {
	var req request.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store, err := h.catalogService.CreateStore(c.Request.Context(), middleware.ScopeFrom(c), &service.CreateStoreInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store created successfully", store)
}

// ListStores handles listing stores
func (h *CatalogHandler) ListStores(c *gin.Context) {
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.catalogService.ListStores(c.Request.Context(), middleware.ScopeFrom(c), pageParams(q.Page, q.PerPage), q.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Stores retrieved successfully", result)
}

// SetStoreActive handles enabling or disabling a store
func (h *CatalogHandler) SetStoreActive(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.SetStoreActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store, err := h.catalogService.SetStoreActive(c.Request.Context(), middleware.ScopeFrom(c), id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store updated successfully", store)
}

// StoreStock handles listing the stock buckets of a store
func (h *CatalogHandler) StoreStock(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var q request.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.catalogService.StoreStock(c.Request.Context(), middleware.ScopeFrom(c), id, pageParams(q.Page, q.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Stock retrieved successfully", result)
}
