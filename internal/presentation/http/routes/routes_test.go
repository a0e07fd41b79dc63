package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/config"
	"github.com/ajjstores/retail-ledger-api/internal/infrastructure/database"
	"github.com/ajjstores/retail-ledger-api/internal/infrastructure/repository"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/handler"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

const (
	adminEmail    = "admin@ajj.test"
	adminPassword = "secret-admin"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    apperror.Kind   `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		App:    config.AppConfig{Name: "retail-ledger-api", Env: "test"},
		Ledger: config.LedgerConfig{NumberPrefix: "AJJ", CoinUnit: 100, BarcodeRetries: 10},
		Admin:  config.AdminConfig{Email: adminEmail, Password: adminPassword, Name: "Owner"},
	}
	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	jwtManager := utils.NewJWTManager("test-secret", cfg.App.Name, time.Hour)
	tx := repository.NewTxManager(db)
	storeRepo := repository.NewStoreRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	productRepo := repository.NewProductRepository(db)
	bucketRepo := repository.NewStoreProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	billRepo := repository.NewBillRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	ledger := service.NewStockLedger(productRepo, bucketRepo)
	numbers := service.NewNumberingService(repository.NewCounterRepository(db), cfg.Ledger.NumberPrefix)
	barcodes := service.NewBarcodeGenerator(productRepo, cfg.Ledger.BarcodeRetries)
	customers := service.NewCustomerService(tx, customerRepo, txnRepo, billRepo, cfg.Ledger.CoinUnit)

	purchases := service.NewPurchaseService(tx, purchaseRepo, productRepo, companyRepo, ledger, barcodes)
	purchaseReturns := service.NewPurchaseReturnService(tx, repository.NewPurchaseReturnRepository(db), purchaseRepo, productRepo, companyRepo, ledger, numbers)
	assignments := service.NewAssignmentService(tx, repository.NewAssignmentRepository(db), productRepo, bucketRepo, storeRepo, ledger, numbers)
	transfers := service.NewTransferService(tx, repository.NewProductRequestRepository(db), productRepo, storeRepo, ledger)
	billing := service.NewBillingService(tx, billRepo, productRepo, storeRepo, customerRepo, txnRepo, ledger, numbers, customers)
	saleReturns := service.NewSaleReturnService(tx, repository.NewSaleReturnRepository(db), billRepo, customerRepo, txnRepo, ledger, numbers, cfg.Ledger.CoinUnit)
	auth := service.NewAuthService(repository.NewAdminRepository(db), storeRepo, jwtManager)
	catalog := service.NewCatalogService(productRepo, bucketRepo, companyRepo, storeRepo, barcodes)

	h := &Handlers{
		Auth:       handler.NewAuthHandler(auth),
		Catalog:    handler.NewCatalogHandler(catalog),
		Purchase:   handler.NewPurchaseHandler(purchases, purchaseReturns),
		Assignment: handler.NewAssignmentHandler(assignments),
		Transfer:   handler.NewTransferHandler(transfers),
		Bill:       handler.NewBillHandler(billing, saleReturns),
		Customer:   handler.NewCustomerHandler(customers),
	}

	router := Setup(h, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})
	return &apiClient{t: t, router: router}
}

func (a *apiClient) do(method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("%s %s: decode response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

// must performs the request and fails unless it returns the wanted status
func (a *apiClient) must(status int, method, path, token string, body any, out any) {
	a.t.Helper()
	w, env := a.do(method, path, token, body)
	if w.Code != status {
		a.t.Fatalf("%s %s: status = %d, want %d (%s)", method, path, w.Code, status, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			a.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

func (a *apiClient) login(actor, email, password string) string {
	a.t.Helper()
	var out struct {
		AccessToken string `json:"access_token"`
	}
	a.must(http.StatusOK, http.MethodPost, "/api/v1/auth/"+actor+"/login", "", map[string]string{
		"email": email, "password": password,
	}, &out)
	if out.AccessToken == "" {
		a.t.Fatalf("%s login returned no token", actor)
	}
	return out.AccessToken
}

type idRef struct {
	ID string `json:"id"`
}

func (a *apiClient) createStore(adminToken, name string) (string, string) {
	a.t.Helper()
	email := strings.ToLower(name) + "@ajj.test"
	var store idRef
	a.must(http.StatusCreated, http.MethodPost, "/api/v1/stores", adminToken, map[string]string{
		"name": name, "email": email, "password": "store-pass",
	}, &store)
	return store.ID, a.login("store", email, "store-pass")
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)

	w, env := api.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized || env.Kind != apperror.KindUnauthorized {
		t.Fatalf("no token: status %d kind %q", w.Code, env.Kind)
	}

	w, env = api.do(http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{
		"email": adminEmail, "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized || env.Kind != apperror.KindUnauthorized {
		t.Fatalf("bad password: status %d kind %q", w.Code, env.Kind)
	}

	token := api.login("admin", adminEmail, adminPassword)
	var me struct {
		ActorType string `json:"actor_type"`
		Email     string `json:"email"`
	}
	api.must(http.StatusOK, http.MethodGet, "/api/v1/auth/me", token, nil, &me)
	if me.ActorType != "admin" || me.Email != adminEmail {
		t.Fatalf("me = %+v", me)
	}
}

func TestStoreCannotUseAdminRoutes(t *testing.T) {
	api := newAPI(t)
	adminToken := api.login("admin", adminEmail, adminPassword)
	_, storeToken := api.createStore(adminToken, "Anna")

	w, env := api.do(http.MethodPost, "/api/v1/companies", storeToken, map[string]string{"name": "Weaves"})
	if w.Code != http.StatusForbidden || env.Kind != apperror.KindForbidden {
		t.Fatalf("store on admin route: status %d kind %q", w.Code, env.Kind)
	}

	w, env = api.do(http.MethodPost, "/api/v1/product-requests", adminToken, map[string]any{
		"supplying_store_id": "00000000-0000-0000-0000-000000000001",
		"product_id":         "00000000-0000-0000-0000-000000000002",
		"quantity":           1,
	})
	if w.Code != http.StatusForbidden || env.Kind != apperror.KindForbidden {
		t.Fatalf("admin on store route: status %d kind %q", w.Code, env.Kind)
	}
}

func TestSaleFlowWithIdempotentBill(t *testing.T) {
	api := newAPI(t)
	adminToken := api.login("admin", adminEmail, adminPassword)
	storeID, storeToken := api.createStore(adminToken, "Anna")

	var company idRef
	api.must(http.StatusCreated, http.MethodPost, "/api/v1/companies", adminToken, map[string]string{"name": "Weaves"}, &company)

	var purchase struct {
		Details []struct {
			ProductID string `json:"product_id"`
		} `json:"details"`
	}
	api.must(http.StatusCreated, http.MethodPost, "/api/v1/purchases", adminToken, map[string]any{
		"company_id": company.ID,
		"date":       "2026-10-01",
		"lines": []map[string]any{{
			"name": "Kurta", "quantity": 5,
			"purchase_price": "80", "price_before_tax": "100", "tax_percent": "0",
			"selling_price": "100", "print_price": "100",
		}},
	}, &purchase)
	if len(purchase.Details) != 1 {
		t.Fatalf("purchase details = %d", len(purchase.Details))
	}
	productID := purchase.Details[0].ProductID

	var assignment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	api.must(http.StatusCreated, http.MethodPost, "/api/v1/assignments", adminToken, map[string]any{
		"store_id": storeID,
		"lines":    []map[string]any{{"product_id": productID, "quantity": 5}},
	}, &assignment)

	w, env := api.do(http.MethodPost, "/api/v1/assignments/"+assignment.ID+"/dispatch", storeToken, nil)
	if w.Code != http.StatusForbidden || env.Kind != apperror.KindForbidden {
		t.Fatalf("store dispatch: status %d kind %q", w.Code, env.Kind)
	}
	api.must(http.StatusOK, http.MethodPost, "/api/v1/assignments/"+assignment.ID+"/dispatch", adminToken, nil, nil)
	api.must(http.StatusOK, http.MethodPost, "/api/v1/assignments/"+assignment.ID+"/receive", storeToken, nil, &assignment)
	if assignment.Status != "Delivered" {
		t.Fatalf("assignment status = %q", assignment.Status)
	}

	bill := map[string]any{
		"items": []map[string]any{{"product_id": productID, "quantity": 1}},
	}
	w1, first := api.do(http.MethodPost, "/api/v1/bills", storeToken, bill, "Idempotency-Key", "bill-1")
	if w1.Code != http.StatusCreated {
		t.Fatalf("create bill: status %d (%s)", w1.Code, w1.Body.String())
	}
	w2, second := api.do(http.MethodPost, "/api/v1/bills", storeToken, bill, "Idempotency-Key", "bill-1")
	if w2.Code != http.StatusCreated || w2.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("replay: status %d replayed %q", w2.Code, w2.Header().Get("X-Idempotency-Replayed"))
	}

	var b1, b2 struct {
		InvoiceNo string `json:"invoice_no"`
	}
	json.Unmarshal(first.Data, &b1)
	json.Unmarshal(second.Data, &b2)
	if b1.InvoiceNo != "AJJ-0001" || b2.InvoiceNo != b1.InvoiceNo {
		t.Fatalf("invoice numbers = %q, %q", b1.InvoiceNo, b2.InvoiceNo)
	}

	other := map[string]any{
		"items": []map[string]any{{"product_id": productID, "quantity": 2}},
	}
	w, env = api.do(http.MethodPost, "/api/v1/bills", storeToken, other, "Idempotency-Key", "bill-1")
	if w.Code != http.StatusUnprocessableEntity || env.Kind != apperror.KindConflict {
		t.Fatalf("reused key: status %d kind %q", w.Code, env.Kind)
	}

	var stock struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
	}
	api.must(http.StatusOK, http.MethodGet, "/api/v1/stores/"+storeID+"/stock", storeToken, nil, &stock)
	if len(stock.Items) != 1 || stock.Items[0].Quantity != 4 {
		t.Fatalf("store stock = %+v", stock.Items)
	}

	w, env = api.do(http.MethodPost, "/api/v1/bills", storeToken, map[string]any{
		"items": []map[string]any{{"product_id": productID, "quantity": 9}},
	})
	if w.Code != http.StatusConflict || env.Kind != apperror.KindInsufficientStock {
		t.Fatalf("oversell: status %d kind %q", w.Code, env.Kind)
	}
}

func TestListValidation(t *testing.T) {
	api := newAPI(t)
	token := api.login("admin", adminEmail, adminPassword)

	w, env := api.do(http.MethodGet, "/api/v1/bills?status=Maybe", token, nil)
	if w.Code != http.StatusUnprocessableEntity || env.Kind != apperror.KindValidation {
		t.Fatalf("bad status filter: status %d kind %q", w.Code, env.Kind)
	}

	w, env = api.do(http.MethodGet, "/api/v1/assignments/not-a-uuid", token, nil)
	if w.Code != http.StatusUnprocessableEntity || env.Kind != apperror.KindValidation {
		t.Fatalf("bad id: status %d kind %q", w.Code, env.Kind)
	}
}
