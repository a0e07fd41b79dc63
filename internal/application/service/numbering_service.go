package service

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
)

// Counter names known to the numbering service
const (
	CounterInvoice        = "invoice"
	CounterAssignment     = "assignment"
	CounterPurchaseReturn = "purchasereturn"
	CounterSaleReturn     = "salereturn"
)

// NumberingService mints human-readable document numbers from named counters
type NumberingService struct {
	counterRepo repository.CounterRepository
	prefixes    map[string]string
}

// NewNumberingService creates a numbering service; base is the invoice prefix
func NewNumberingService(counterRepo repository.CounterRepository, base string) *NumberingService {
	return &NumberingService{
		counterRepo: counterRepo,
		prefixes: map[string]string{
			CounterInvoice:        base,
			CounterAssignment:     base + "-A",
			CounterPurchaseReturn: base + "-PR",
			CounterSaleReturn:     base + "-SR",
		},
	}
}

// Next returns the next number of the counter. Numbers are never reused,
// even when the document they were minted for is not saved.
func (s *NumberingService) Next(ctx context.Context, counter string) (string, error) {
	prefix, ok := s.prefixes[counter]
	if !ok {
		return "", apperror.NewBadRequestError("Unknown counter " + counter)
	}

	seq, err := s.counterRepo.Next(ctx, counter)
	if err != nil {
		return "", err
	}
	return utils.FormatDocumentNo(prefix, seq), nil
}
