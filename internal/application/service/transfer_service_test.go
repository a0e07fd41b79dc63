package service

import (
	"testing"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
)

func TestTransferAcceptMovesStock(t *testing.T) {
	env := newTestEnv(t)
	requester := env.store(t, "Requester")
	supplier := env.store(t, "Supplier")
	p := env.product(t, "Biscuits", 0, 30)
	env.stockStore(t, supplier.ID, p.ID, 10)

	req, err := env.transfers.CreateRequest(env.ctx, StoreScopeOf(requester.ID), &CreateRequestInput{
		SupplyingStoreID: supplier.ID,
		ProductID:        p.ID,
		Quantity:         6,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if req.Status != enum.RequestStatusPending {
		t.Fatalf("status = %s, want Pending", req.Status)
	}

	_, err = env.transfers.Accept(env.ctx, StoreScopeOf(requester.ID), req.ID, 4)
	wantKind(t, err, apperror.KindForbidden)

	_, err = env.transfers.Accept(env.ctx, StoreScopeOf(supplier.ID), req.ID, 7)
	wantKind(t, err, apperror.KindExceedsRequested)

	accepted, err := env.transfers.Accept(env.ctx, StoreScopeOf(supplier.ID), req.ID, 4)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != enum.RequestStatusAccepted || accepted.AcceptedQuantity != 4 {
		t.Errorf("accepted = %s/%d, want Accepted/4", accepted.Status, accepted.AcceptedQuantity)
	}
	if got := env.storeQty(t, supplier.ID, p.ID); got != 6 {
		t.Errorf("supplier = %d, want 6", got)
	}
	if got := env.storeQty(t, requester.ID, p.ID); got != 4 {
		t.Errorf("requester = %d, want 4", got)
	}

	_, err = env.transfers.Reject(env.ctx, StoreScopeOf(supplier.ID), req.ID)
	wantKind(t, err, apperror.KindStateConflict)

	received, err := env.transfers.Receive(env.ctx, StoreScopeOf(requester.ID), req.ID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if received.Status != enum.RequestStatusReceived {
		t.Errorf("status = %s, want Received", received.Status)
	}
}

func TestTransferAcceptNeedsSupplierStock(t *testing.T) {
	env := newTestEnv(t)
	requester := env.store(t, "Requester")
	supplier := env.store(t, "Supplier")
	p := env.product(t, "Cola", 0, 40)
	env.stockStore(t, supplier.ID, p.ID, 2)

	req, err := env.transfers.CreateRequest(env.ctx, StoreScopeOf(requester.ID), &CreateRequestInput{
		SupplyingStoreID: supplier.ID,
		ProductID:        p.ID,
		Quantity:         5,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	_, err = env.transfers.Accept(env.ctx, StoreScopeOf(supplier.ID), req.ID, 3)
	wantKind(t, err, apperror.KindInsufficientStock)
	if got := env.storeQty(t, requester.ID, p.ID); got != 0 {
		t.Errorf("requester credited on failed accept: %d", got)
	}
}

func TestTransferRejectAndCancel(t *testing.T) {
	env := newTestEnv(t)
	requester := env.store(t, "Requester")
	supplier := env.store(t, "Supplier")
	p := env.product(t, "Jam", 0, 70)
	env.stockStore(t, supplier.ID, p.ID, 5)

	first, err := env.transfers.CreateRequest(env.ctx, StoreScopeOf(requester.ID), &CreateRequestInput{
		SupplyingStoreID: supplier.ID, ProductID: p.ID, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	rejected, err := env.transfers.Reject(env.ctx, StoreScopeOf(supplier.ID), first.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != enum.RequestStatusRejected {
		t.Errorf("status = %s, want Rejected", rejected.Status)
	}
	if got := env.storeQty(t, supplier.ID, p.ID); got != 5 {
		t.Errorf("supplier stock moved on reject: %d", got)
	}

	second, err := env.transfers.CreateRequest(env.ctx, StoreScopeOf(requester.ID), &CreateRequestInput{
		SupplyingStoreID: supplier.ID, ProductID: p.ID, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if _, err := env.transfers.Cancel(env.ctx, StoreScopeOf(requester.ID), second.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err = env.transfers.Accept(env.ctx, StoreScopeOf(supplier.ID), second.ID, 1)
	wantKind(t, err, apperror.KindStateConflict)

	_, err = env.transfers.CreateRequest(env.ctx, StoreScopeOf(requester.ID), &CreateRequestInput{
		SupplyingStoreID: requester.ID, ProductID: p.ID, Quantity: 1,
	})
	wantKind(t, err, apperror.KindValidation)
}
