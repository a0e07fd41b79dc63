package routes

import (
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/config"
	domainRepo "github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/handler"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Catalog    *handler.CatalogHandler
	Purchase   *handler.PurchaseHandler
	Assignment *handler.AssignmentHandler
	Transfer   *handler.TransferHandler
	Bill       *handler.BillHandler
	Customer   *handler.CustomerHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ActorRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/admin/login", h.Auth.AdminLogin)
		auth.POST("/store/login", h.Auth.StoreLogin)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	protected.GET("/auth/me", h.Auth.Me)

	registerCatalogRoutes(protected, h)
	registerPurchaseRoutes(protected, h)
	registerAssignmentRoutes(protected, h)
	registerTransferRoutes(protected, h)
	registerBillRoutes(protected, h, idempotent)
	registerCustomerRoutes(protected, h, idempotent)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/barcode/:barcode", h.Catalog.GetProductByBarcode)
		products.POST("", middleware.RequireAdmin(), h.Catalog.CreateProduct)
	}

	companies := protected.Group("/companies")
	companies.Use(middleware.RequireAdmin())
	{
		companies.GET("", h.Catalog.ListCompanies)
		companies.POST("", h.Catalog.CreateCompany)
	}

	stores := protected.Group("/stores")
	{
		stores.GET("", middleware.RequireAdmin(), h.Catalog.ListStores)
		stores.POST("", middleware.RequireAdmin(), h.Catalog.CreateStore)
		stores.PATCH("/:id/status", middleware.RequireAdmin(), h.Catalog.SetStoreActive)
		stores.GET("/:id/stock", h.Catalog.StoreStock)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequireAdmin())
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.PUT("/:id", h.Purchase.Update)
	}

	returns := protected.Group("/purchase-returns")
	returns.Use(middleware.RequireAdmin())
	{
		returns.GET("", h.Purchase.ListReturns)
		returns.POST("", h.Purchase.CreateReturn)
	}
}

func registerAssignmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	assignments := protected.Group("/assignments")
	{
		assignments.GET("", h.Assignment.List)
		assignments.POST("", middleware.RequireAdmin(), h.Assignment.Create)
		assignments.GET("/:id", h.Assignment.Get)
		assignments.POST("/:id/dispatch", middleware.RequireAdmin(), h.Assignment.Dispatch)
		assignments.POST("/:id/receive", h.Assignment.Receive)
		assignments.POST("/:id/cancel", h.Assignment.Cancel)
	}
}

func registerTransferRoutes(protected *gin.RouterGroup, h *Handlers) {
	requests := protected.Group("/product-requests")
	{
		requests.GET("", h.Transfer.List)
		requests.POST("", middleware.RequireStore(), h.Transfer.Create)
		requests.POST("/:id/accept", middleware.RequireStore(), h.Transfer.Accept)
		requests.POST("/:id/reject", middleware.RequireStore(), h.Transfer.Reject)
		requests.POST("/:id/receive", middleware.RequireStore(), h.Transfer.Receive)
		requests.POST("/:id/cancel", middleware.RequireStore(), h.Transfer.Cancel)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		// Bill creation replays on a repeated Idempotency-Key
		bills.POST("", idempotent, h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
	}

	returns := protected.Group("/sale-returns")
	{
		returns.GET("", h.Bill.ListReturns)
		returns.POST("", h.Bill.CreateReturn)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	customers := protected.Group("/customers")
	{
		customers.GET("", middleware.RequireAdmin(), h.Customer.List)
		customers.GET("/:mobile", h.Customer.GetByMobile)
		customers.GET("/:mobile/unpaid", h.Customer.Unpaid)
		customers.GET("/:mobile/transactions", h.Customer.Transactions)
		customers.POST("/:mobile/payments", idempotent, h.Customer.Settle)
	}
}
