package service

import (
	"testing"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func walkInBill(productID uuid.UUID, qty int) *CreateBillInput {
	return &CreateBillInput{
		Items: []BillItemInput{{ProductID: productID, Quantity: qty}},
	}
}

func TestBillDeductsStoreStock(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "Main")
	p := env.product(t, "Pen", 0, 10)
	env.stockStore(t, store.ID, p.ID, 3)
	scope := StoreScopeOf(store.ID)

	bill, err := env.billing.CreateBill(env.ctx, scope, walkInBill(p.ID, 3))
	if err != nil {
		t.Fatalf("first bill: %v", err)
	}
	if bill.InvoiceNo != "AJJ-0001" {
		t.Errorf("invoice no = %q, want AJJ-0001", bill.InvoiceNo)
	}
	if bill.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("walk-in status = %s, want paid", bill.PaymentStatus)
	}
	if !bill.TotalAmount.Equal(dec(30)) {
		t.Errorf("total = %s, want 30", bill.TotalAmount)
	}
	if got := env.storeQty(t, store.ID, p.ID); got != 0 {
		t.Fatalf("store after bill = %d, want 0", got)
	}

	_, err = env.billing.CreateBill(env.ctx, scope, walkInBill(p.ID, 3))
	wantKind(t, err, apperror.KindInsufficientStock)

	var count int64
	env.db.Model(&entity.Bill{}).Count(&count)
	if count != 1 {
		t.Errorf("bills saved = %d, want 1", count)
	}
}

func TestBillPricing(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "Main")
	p := env.product(t, "Shirt", 0, 1000)
	env.db.Model(&p).Update("tax_percent", decimal.NewFromInt(12))
	env.stockStore(t, store.ID, p.ID, 5)

	bill, err := env.billing.CreateBill(env.ctx, StoreScopeOf(store.ID), &CreateBillInput{
		Discount: dec(16),
		Items:    []BillItemInput{{ProductID: p.ID, Quantity: 2, Discount: dec(100)}},
	})
	if err != nil {
		t.Fatalf("bill: %v", err)
	}
	item := bill.Items[0]
	// (1000 - 100) * 1.12 = 1008 per unit
	if !item.FinalPrice.Equal(dec(1008)) {
		t.Errorf("final price = %s, want 1008", item.FinalPrice)
	}
	if !bill.SubTotal.Equal(dec(2016)) || !bill.TotalAmount.Equal(dec(2000)) {
		t.Errorf("sub/total = %s/%s, want 2016/2000", bill.SubTotal, bill.TotalAmount)
	}
}

func TestBillScope(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "Main")
	other := env.store(t, "Other")
	p := env.product(t, "Pen", 0, 10)
	env.stockStore(t, store.ID, p.ID, 5)

	_, err := env.billing.CreateBill(env.ctx, env.admin, walkInBill(p.ID, 1))
	wantKind(t, err, apperror.KindValidation)

	input := walkInBill(p.ID, 1)
	input.StoreID = &store.ID
	bill, err := env.billing.CreateBill(env.ctx, env.admin, input)
	if err != nil {
		t.Fatalf("admin bill for store: %v", err)
	}

	_, err = env.billing.CreateBill(env.ctx, StoreScopeOf(other.ID), input)
	wantKind(t, err, apperror.KindForbidden)

	_, err = env.billing.GetBill(env.ctx, StoreScopeOf(other.ID), bill.ID)
	wantKind(t, err, apperror.KindForbidden)
}

func TestBillChargesCustomer(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t, "Main")
	p := env.product(t, "Rice", 0, 100)
	env.stockStore(t, store.ID, p.ID, 20)
	scope := StoreScopeOf(store.ID)

	bill, err := env.billing.CreateBill(env.ctx, scope, &CreateBillInput{
		Customer: BillCustomerInput{Name: "Asha", Mobile: "9000000001"},
		Items:    []BillItemInput{{ProductID: p.ID, Quantity: 10}},
		Payment:  &PaymentInput{Cash: dec(600), UPI: dec(400)},
	})
	if err != nil {
		t.Fatalf("bill: %v", err)
	}
	if bill.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("fully paid bill status = %s", bill.PaymentStatus)
	}
	if bill.PaymentMethod != "Cash,UPI" {
		t.Errorf("payment method = %q", bill.PaymentMethod)
	}

	c := env.customer(t, "9000000001")
	if !c.TotalAmount.Equal(dec(1000)) || !c.PaidAmount.Equal(dec(1000)) || c.Coins != 10 {
		t.Errorf("customer = total %s paid %s coins %d, want 1000/1000/10", c.TotalAmount, c.PaidAmount, c.Coins)
	}

	// spend coins on a credit bill
	bill, err = env.billing.CreateBill(env.ctx, scope, &CreateBillInput{
		Customer:  BillCustomerInput{Mobile: "9000000001"},
		UsedCoins: 4,
		Items:     []BillItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("coin bill: %v", err)
	}
	if bill.PaymentStatus != enum.PaymentStatusUnpaid {
		t.Errorf("credit bill status = %s, want unpaid", bill.PaymentStatus)
	}
	c = env.customer(t, "9000000001")
	if c.Coins != 6 || c.UsedCoins != 4 {
		t.Errorf("coins = %d used = %d, want 6/4", c.Coins, c.UsedCoins)
	}
	// paid 1000 - total 1200 + used 4
	if !c.PendingAmount.Equal(dec(-196)) {
		t.Errorf("pending = %s, want -196", c.PendingAmount)
	}

	_, err = env.billing.CreateBill(env.ctx, scope, &CreateBillInput{
		Customer:  BillCustomerInput{Mobile: "9000000001"},
		UsedCoins: 50,
		Items:     []BillItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	wantKind(t, err, apperror.KindValidation)
}
