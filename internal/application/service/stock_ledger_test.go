package service

import (
	"sync"
	"testing"

	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/google/uuid"
)

func TestAdjustNeverDrivesStockNegative(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Rice 5kg", 5, 300)

	steps := []struct {
		delta   int
		want    int
		wantErr bool
	}{
		{delta: -3, want: 2},
		{delta: -3, want: 2, wantErr: true},
		{delta: 4, want: 6},
		{delta: -6, want: 0},
		{delta: -1, want: 0, wantErr: true},
	}
	for i, step := range steps {
		_, err := env.ledger.Adjust(env.ctx, Warehouse(), p.ID, step.delta)
		if step.wantErr {
			wantKind(t, err, apperror.KindInsufficientStock)
		} else if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := env.warehouseQty(t, p.ID); got != step.want {
			t.Fatalf("step %d: quantity = %d, want %d", i, got, step.want)
		}
	}
}

func TestAdjustConcurrentDecrementsStopAtZero(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "Central")
	p := env.product(t, "Soap", 0, 40)
	env.stockStore(t, store.ID, p.ID, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.ledger.Adjust(env.ctx, StoreBucket(store.ID), p.ID, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("successful decrements = %d, want 10", succeeded)
	}
	if got := env.storeQty(t, store.ID, p.ID); got != 0 {
		t.Errorf("store quantity = %d, want 0", got)
	}
}

func TestAdjustStoreBucket(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "North")
	p := env.product(t, "Oil 1L", 0, 150)

	if got := env.storeQty(t, store.ID, p.ID); got != 0 {
		t.Fatalf("absent bucket = %d, want 0", got)
	}

	_, err := env.ledger.Adjust(env.ctx, StoreBucket(store.ID), p.ID, -1)
	wantKind(t, err, apperror.KindInsufficientStock)

	after, err := env.ledger.Adjust(env.ctx, StoreBucket(store.ID), p.ID, 7)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if after != 7 {
		t.Errorf("after credit = %d, want 7", after)
	}
}

func TestAdjustUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ledger.Adjust(env.ctx, Warehouse(), uuid.New(), 1)
	wantKind(t, err, apperror.KindNotFound)
}
