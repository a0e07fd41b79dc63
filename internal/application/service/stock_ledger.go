package service

import (
	"context"
	"errors"

	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bucket selects warehouse stock or one store's stock
type Bucket struct {
	StoreID *uuid.UUID
}

// Warehouse is the central Product.Unit bucket
func Warehouse() Bucket {
	return Bucket{}
}

// StoreBucket is the StoreProduct bucket of storeID
func StoreBucket(storeID uuid.UUID) Bucket {
	return Bucket{StoreID: &storeID}
}

func (b Bucket) IsWarehouse() bool {
	return b.StoreID == nil
}

// StockLedger applies signed quantity changes to stock buckets
type StockLedger struct {
	productRepo repository.ProductRepository
	bucketRepo  repository.StoreProductRepository
}

// NewStockLedger creates a new stock ledger
func NewStockLedger(productRepo repository.ProductRepository, bucketRepo repository.StoreProductRepository) *StockLedger {
	return &StockLedger{
		productRepo: productRepo,
		bucketRepo:  bucketRepo,
	}
}

// Adjust applies delta to the bucket and returns the new quantity.
// A negative delta larger than the bucket fails with InsufficientStock and
// leaves the bucket unchanged; a positive delta creates a missing store bucket.
func (l *StockLedger) Adjust(ctx context.Context, bucket Bucket, productID uuid.UUID, delta int) (int, error) {
	product, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, apperror.NewNotFoundError("Product")
	}

	switch {
	case delta < 0:
		var ok bool
		if bucket.IsWarehouse() {
			ok, err = l.productRepo.AtomicDecrementUnit(ctx, productID, -delta)
		} else {
			ok, err = l.bucketRepo.AtomicDecrement(ctx, *bucket.StoreID, productID, -delta)
		}
		if err != nil {
			return 0, err
		}
		if !ok {
			available, err := l.Quantity(ctx, bucket, productID)
			if err != nil {
				return 0, err
			}
			return 0, apperror.NewInsufficientStockError(product.Name, available, -delta)
		}
	case delta > 0:
		if bucket.IsWarehouse() {
			err = l.productRepo.IncrementUnit(ctx, productID, delta)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperror.NewNotFoundError("Product")
			}
		} else {
			err = l.bucketRepo.Increment(ctx, *bucket.StoreID, productID, delta)
		}
		if err != nil {
			return 0, err
		}
	}

	return l.Quantity(ctx, bucket, productID)
}

// Quantity reads the bucket; an absent store bucket holds zero
func (l *StockLedger) Quantity(ctx context.Context, bucket Bucket, productID uuid.UUID) (int, error) {
	if bucket.IsWarehouse() {
		product, err := l.productRepo.GetByID(ctx, productID)
		if err != nil {
			return 0, err
		}
		if product == nil {
			return 0, apperror.NewNotFoundError("Product")
		}
		return product.Unit, nil
	}

	sp, err := l.bucketRepo.Get(ctx, *bucket.StoreID, productID)
	if err != nil {
		return 0, err
	}
	if sp == nil {
		return 0, nil
	}
	return sp.Quantity, nil
}
