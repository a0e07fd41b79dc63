package service

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
)

// BarcodeGenerator picks unused 5-digit product barcodes
type BarcodeGenerator struct {
	productRepo repository.ProductRepository
	retries     int
	candidate   func() string
}

// NewBarcodeGenerator creates a generator that gives up after retries collisions
func NewBarcodeGenerator(productRepo repository.ProductRepository, retries int) *BarcodeGenerator {
	if retries < 1 {
		retries = 1
	}
	return &BarcodeGenerator{
		productRepo: productRepo,
		retries:     retries,
		candidate:   utils.RandomBarcode,
	}
}

// Generate returns a barcode no product uses yet
func (g *BarcodeGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.retries; i++ {
		code := g.candidate()
		exists, err := g.productRepo.BarcodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperror.NewBarcodeExhaustedError(g.retries)
}
