package repository

import (
	"context"
	"strings"

	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key for the active gorm transaction
const txKey ctxKey = "gorm_tx"

// withTx adds a transaction handle to context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// conn returns the transaction carried by ctx, or db bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// findOne loads the first row matching query into dest. A miss is not an error.
func findOne(db *gorm.DB, dest interface{}, query interface{}, args ...interface{}) (bool, error) {
	result := db.Where(query, args...).Limit(1).Find(dest)
	return result.RowsAffected > 0, result.Error
}

// StoreScope filters store-owned rows. A nil store returns all rows (admin).
func StoreScope(storeID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if storeID == nil {
			return db
		}
		return db.Where("store_id = ?", *storeID)
	}
}

// SearchScope matches term case-insensitively against the given columns
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// Paginate applies the page window. Callers validate params first.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
