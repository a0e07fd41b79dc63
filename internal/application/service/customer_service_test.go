package service

import (
	"testing"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/google/uuid"
)

func creditBill(t *testing.T, env *testEnv, scope Scope, mobile string, productID uuid.UUID, qty int) {
	t.Helper()
	if _, err := env.billing.CreateBill(env.ctx, scope, &CreateBillInput{
		Customer: BillCustomerInput{Mobile: mobile},
		Items:    []BillItemInput{{ProductID: productID, Quantity: qty}},
	}); err != nil {
		t.Fatalf("credit bill: %v", err)
	}
}

func TestSettleStopsAtFirstUncoveredBill(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "Main")
	p := env.product(t, "Dal", 0, 100)
	env.stockStore(t, store.ID, p.ID, 10)
	scope := StoreScopeOf(store.ID)
	const mobile = "9000000002"

	creditBill(t, env, scope, mobile, p.ID, 1)
	creditBill(t, env, scope, mobile, p.ID, 5)

	result, err := env.customers.Settle(env.ctx, scope, mobile, PaymentInput{Cash: dec(150)})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if len(result.Settled) != 1 || !result.Settled[0].BillAmount.Equal(dec(100)) {
		t.Fatalf("settled = %+v, want only the 100 bill", result.Settled)
	}
	if !result.Customer.RemainingPaid.Equal(dec(50)) {
		t.Errorf("remaining paid = %s, want 50", result.Customer.RemainingPaid)
	}
	if result.CoinsGenerated != 1 {
		t.Errorf("coins = %d, want 1", result.CoinsGenerated)
	}

	unpaid, err := env.customers.ListUnpaid(env.ctx, scope, mobile)
	if err != nil {
		t.Fatalf("list unpaid: %v", err)
	}
	if len(unpaid) != 1 || !unpaid[0].BillAmount.Equal(dec(500)) {
		t.Fatalf("unpaid = %+v, want the 500 bill", unpaid)
	}

	result, err = env.customers.Settle(env.ctx, scope, mobile, PaymentInput{UPI: dec(450)})
	if err != nil {
		t.Fatalf("second settle: %v", err)
	}
	if len(result.Settled) != 1 || !result.Customer.RemainingPaid.IsZero() {
		t.Errorf("second settle = %d settled, remaining %s", len(result.Settled), result.Customer.RemainingPaid)
	}
	if result.Payment.PaymentStatus != enum.PaymentStatusPaid || !result.Payment.UPI.Equal(dec(450)) {
		t.Errorf("payment record = %+v", result.Payment)
	}

	c := env.customer(t, mobile)
	if !c.PendingAmount.IsZero() {
		t.Errorf("pending = %s, want 0", c.PendingAmount)
	}
}

func TestSettleValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.customers.Settle(env.ctx, env.admin, "9000000003", PaymentInput{Cash: dec(10)})
	wantKind(t, err, apperror.KindNotFound)

	_, err = env.customers.Settle(env.ctx, env.admin, "9000000003", PaymentInput{})
	wantKind(t, err, apperror.KindValidation)

	_, err = env.customers.Settle(env.ctx, env.admin, "9000000003", PaymentInput{Cash: dec(-5), UPI: dec(10)})
	wantKind(t, err, apperror.KindValidation)

	_, err = env.customers.Settle(env.ctx, Scope{}, "9000000003", PaymentInput{Cash: dec(10)})
	wantKind(t, err, apperror.KindUnauthorized)
}
