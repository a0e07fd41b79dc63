package service

import (
	"context"
	"strings"
	"testing"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/infrastructure/database"
	infraRepo "github.com/ajjstores/retail-ledger-api/internal/infrastructure/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testCoinUnit = 100

type testEnv struct {
	db    *gorm.DB
	ctx   context.Context
	admin Scope

	ledger      *StockLedger
	numbers     *NumberingService
	barcodes    *BarcodeGenerator
	catalog     *CatalogService
	purchases   *PurchaseService
	pReturns    *PurchaseReturnService
	assignments *AssignmentService
	transfers   *TransferService
	customers   *CustomerService
	billing     *BillingService
	sReturns    *SaleReturnService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.NewSQLiteDB(dsn, false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tx := infraRepo.NewTxManager(db)
	productRepo := infraRepo.NewProductRepository(db)
	bucketRepo := infraRepo.NewStoreProductRepository(db)
	storeRepo := infraRepo.NewStoreRepository(db)
	companyRepo := infraRepo.NewCompanyRepository(db)
	purchaseRepo := infraRepo.NewPurchaseRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	txnRepo := infraRepo.NewTransactionRepository(db)
	billRepo := infraRepo.NewBillRepository(db)

	env := &testEnv{db: db, ctx: context.Background(), admin: AdminScope(uuid.New())}
	env.ledger = NewStockLedger(productRepo, bucketRepo)
	env.numbers = NewNumberingService(infraRepo.NewCounterRepository(db), "AJJ")
	env.barcodes = NewBarcodeGenerator(productRepo, 10)
	env.catalog = NewCatalogService(productRepo, bucketRepo, companyRepo, storeRepo, env.barcodes)
	env.purchases = NewPurchaseService(tx, purchaseRepo, productRepo, companyRepo, env.ledger, env.barcodes)
	env.pReturns = NewPurchaseReturnService(tx, infraRepo.NewPurchaseReturnRepository(db), purchaseRepo, productRepo, companyRepo, env.ledger, env.numbers)
	env.assignments = NewAssignmentService(tx, infraRepo.NewAssignmentRepository(db), productRepo, bucketRepo, storeRepo, env.ledger, env.numbers)
	env.transfers = NewTransferService(tx, infraRepo.NewProductRequestRepository(db), productRepo, storeRepo, env.ledger)
	env.customers = NewCustomerService(tx, customerRepo, txnRepo, billRepo, testCoinUnit)
	env.billing = NewBillingService(tx, billRepo, productRepo, storeRepo, customerRepo, txnRepo, env.ledger, env.numbers, env.customers)
	env.sReturns = NewSaleReturnService(tx, infraRepo.NewSaleReturnRepository(db), billRepo, customerRepo, txnRepo, env.ledger, env.numbers, testCoinUnit)
	return env
}

func (e *testEnv) store(t *testing.T, name string) entity.Store {
	t.Helper()
	s := entity.Store{Name: name, Email: strings.ToLower(name) + "@ajj.test", Password: "x", IsActive: true}
	if err := e.db.Create(&s).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return s
}

func (e *testEnv) company(t *testing.T, name string) entity.Company {
	t.Helper()
	c := entity.Company{Name: name}
	if err := e.db.Create(&c).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return c
}

// product seeds a catalog entry priced at price with no tax
func (e *testEnv) product(t *testing.T, name string, unit int, price int64) entity.Product {
	t.Helper()
	barcode, err := e.barcodes.Generate(e.ctx)
	if err != nil {
		t.Fatalf("barcode: %v", err)
	}
	p := entity.Product{
		Name:           name,
		Barcode:        barcode,
		Unit:           unit,
		PriceBeforeTax: decimal.NewFromInt(price),
		SellingPrice:   decimal.NewFromInt(price),
		IsActive:       true,
	}
	if err := e.db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func (e *testEnv) stockStore(t *testing.T, storeID, productID uuid.UUID, qty int) {
	t.Helper()
	if _, err := e.ledger.Adjust(e.ctx, StoreBucket(storeID), productID, qty); err != nil {
		t.Fatalf("stock store: %v", err)
	}
}

func (e *testEnv) warehouseQty(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	qty, err := e.ledger.Quantity(e.ctx, Warehouse(), productID)
	if err != nil {
		t.Fatalf("warehouse quantity: %v", err)
	}
	return qty
}

func (e *testEnv) storeQty(t *testing.T, storeID, productID uuid.UUID) int {
	t.Helper()
	qty, err := e.ledger.Quantity(e.ctx, StoreBucket(storeID), productID)
	if err != nil {
		t.Fatalf("store quantity: %v", err)
	}
	return qty
}

func (e *testEnv) customer(t *testing.T, mobile string) entity.Customer {
	t.Helper()
	var c entity.Customer
	if err := e.db.Where("mobile = ?", mobile).First(&c).Error; err != nil {
		t.Fatalf("load customer: %v", err)
	}
	return c
}

func wantKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !apperror.Is(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
