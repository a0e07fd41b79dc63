package service

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
)

func TestNumberingConcurrentInvoicesAreContiguous(t *testing.T) {
	env := newTestEnv(t)
	const n = 20

	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.numbers.Next(env.ctx, CounterInvoice)
		}(i)
	}
	wg.Wait()

	seqs := make([]int, 0, n)
	for i, no := range results {
		if errs[i] != nil {
			t.Fatalf("next: %v", errs[i])
		}
		if !strings.HasPrefix(no, "AJJ-") {
			t.Fatalf("number %q has wrong prefix", no)
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(no, "AJJ-"))
		if err != nil {
			t.Fatalf("parse %q: %v", no, err)
		}
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)
	for i, seq := range seqs {
		if seq != i+1 {
			t.Fatalf("sequence %v is not contiguous from 1", seqs)
		}
	}
}

func TestNumberingPrefixesPerCounter(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		counter string
		want    string
	}{
		{CounterInvoice, "AJJ-0001"},
		{CounterAssignment, "AJJ-A-0001"},
		{CounterPurchaseReturn, "AJJ-PR-0001"},
		{CounterSaleReturn, "AJJ-SR-0001"},
		{CounterInvoice, "AJJ-0002"},
	}
	for _, tt := range tests {
		got, err := env.numbers.Next(env.ctx, tt.counter)
		if err != nil {
			t.Fatalf("next %s: %v", tt.counter, err)
		}
		if got != tt.want {
			t.Errorf("next %s = %q, want %q", tt.counter, got, tt.want)
		}
	}

	_, err := env.numbers.Next(env.ctx, "nope")
	wantKind(t, err, apperror.KindValidation)
}
