package service

import (
	"testing"

	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/google/uuid"
)

func TestBarcodeGeneratorGivesUpAfterRetries(t *testing.T) {
	env := newTestEnv(t)
	taken := env.product(t, "Taken", 0, 1).Barcode

	gen := NewBarcodeGenerator(env.catalog.productRepo, 3)
	calls := 0
	gen.candidate = func() string {
		calls++
		return taken
	}

	_, err := gen.Generate(env.ctx)
	wantKind(t, err, apperror.KindBarcodeExhausted)
	if calls != 3 {
		t.Errorf("candidates tried = %d, want 3", calls)
	}

	gen.candidate = func() string { return "54321" }
	code, err := gen.Generate(env.ctx)
	if err != nil || code != "54321" {
		t.Errorf("generate = %q, %v", code, err)
	}
}

func TestCatalogProducts(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.catalog.CreateProduct(env.ctx, env.admin, &CreateProductInput{Name: "  Kettle ", SellingPrice: dec(900)})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if p.Name != "Kettle" || p.Unit != 0 {
		t.Errorf("product = %q unit %d", p.Name, p.Unit)
	}

	_, err = env.catalog.CreateProduct(env.ctx, env.admin, &CreateProductInput{Name: "Kettle"})
	wantKind(t, err, apperror.KindConflict)

	_, err = env.catalog.CreateProduct(env.ctx, StoreScopeOf(uuid.New()), &CreateProductInput{Name: "Toaster"})
	wantKind(t, err, apperror.KindForbidden)

	found, err := env.catalog.GetProductByBarcode(env.ctx, p.Barcode)
	if err != nil || found.ID != p.ID {
		t.Fatalf("barcode lookup = %v, %v", found, err)
	}
	_, err = env.catalog.GetProductByBarcode(env.ctx, "00000")
	wantKind(t, err, apperror.KindNotFound)
}

func TestCatalogStoresAndStock(t *testing.T) {
	env := newTestEnv(t)

	store, err := env.catalog.CreateStore(env.ctx, env.admin, &CreateStoreInput{
		Name:     "Lake Road",
		Email:    "Lake@AJJ.test",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if store.Email != "lake@ajj.test" || !utils.CheckPasswordHash("secret1", store.Password) {
		t.Errorf("store credentials not normalized and hashed")
	}

	_, err = env.catalog.CreateStore(env.ctx, env.admin, &CreateStoreInput{Name: "Dup", Email: "lake@ajj.test", Password: "secret1"})
	wantKind(t, err, apperror.KindConflict)

	p := env.product(t, "Candle", 0, 25)
	env.stockStore(t, store.ID, p.ID, 4)

	stock, err := env.catalog.StoreStock(env.ctx, StoreScopeOf(store.ID), store.ID, pagination.DefaultPagination())
	if err != nil {
		t.Fatalf("store stock: %v", err)
	}
	if len(stock.Items) != 1 || stock.Items[0].Quantity != 4 {
		t.Errorf("stock = %+v", stock.Items)
	}

	_, err = env.catalog.StoreStock(env.ctx, StoreScopeOf(uuid.New()), store.ID, pagination.DefaultPagination())
	wantKind(t, err, apperror.KindForbidden)

	disabled, err := env.catalog.SetStoreActive(env.ctx, env.admin, store.ID, false)
	if err != nil || disabled.IsActive {
		t.Fatalf("disable store = %v, %v", disabled, err)
	}
}
