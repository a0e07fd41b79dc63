package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/config"
	"github.com/ajjstores/retail-ledger-api/internal/infrastructure/database"
	"github.com/ajjstores/retail-ledger-api/internal/infrastructure/repository"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/handler"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/routes"
	"github.com/ajjstores/retail-ledger-api/pkg/logger"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.App.Env, cfg.App.LogLevel)
	log := logger.L()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	adminRepo := repository.NewAdminRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	productRepo := repository.NewProductRepository(db)
	bucketRepo := repository.NewStoreProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	purchaseReturnRepo := repository.NewPurchaseReturnRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	productRequestRepo := repository.NewProductRequestRepository(db)
	billRepo := repository.NewBillRepository(db)
	saleReturnRepo := repository.NewSaleReturnRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	ledger := service.NewStockLedger(productRepo, bucketRepo)
	numbers := service.NewNumberingService(counterRepo, cfg.Ledger.NumberPrefix)
	barcodes := service.NewBarcodeGenerator(productRepo, cfg.Ledger.BarcodeRetries)

	authService := service.NewAuthService(adminRepo, storeRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo, bucketRepo, companyRepo, storeRepo, barcodes)
	purchaseService := service.NewPurchaseService(txManager, purchaseRepo, productRepo, companyRepo, ledger, barcodes)
	purchaseReturnService := service.NewPurchaseReturnService(txManager, purchaseReturnRepo, purchaseRepo, productRepo, companyRepo, ledger, numbers)
	assignmentService := service.NewAssignmentService(txManager, assignmentRepo, productRepo, bucketRepo, storeRepo, ledger, numbers)
	transferService := service.NewTransferService(txManager, productRequestRepo, productRepo, storeRepo, ledger)
	customerService := service.NewCustomerService(txManager, customerRepo, transactionRepo, billRepo, cfg.Ledger.CoinUnit)
	billingService := service.NewBillingService(txManager, billRepo, productRepo, storeRepo, customerRepo, transactionRepo, ledger, numbers, customerService)
	saleReturnService := service.NewSaleReturnService(txManager, saleReturnRepo, billRepo, customerRepo, transactionRepo, ledger, numbers, cfg.Ledger.CoinUnit)

	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Purchase:   handler.NewPurchaseHandler(purchaseService, purchaseReturnService),
		Assignment: handler.NewAssignmentHandler(assignmentService),
		Transfer:   handler.NewTransferHandler(transferService),
		Bill:       handler.NewBillHandler(billingService, saleReturnService),
		Customer:   handler.NewCustomerHandler(customerService),
	}

	rateLimiter := middleware.NewActorRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("env", cfg.App.Env).Infof("Starting %s server on port %s", cfg.App.Name, port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

type expiredKeyPurger interface {
	DeleteExpired(ctx context.Context) error
}

func purgeIdempotencyKeys(ctx context.Context, repo expiredKeyPurger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				logger.L().WithError(err).Warn("purge idempotency keys")
			}
		}
	}
}
