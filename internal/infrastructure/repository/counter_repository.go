package repository

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	domainRepo "github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next uses: UPDATE counters SET seq = seq + 1 WHERE name = ?
// The row lock taken by the update is held until the read-back commits.
func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	var counter entity.Counter
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Counter{}).
			Where("name = ?", name).
			Update("seq", gorm.Expr("seq + ?", 1))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// First use: insert at zero (a concurrent creator wins harmlessly), then increment
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&entity.Counter{Name: name, Seq: 0}).Error; err != nil {
				return err
			}
			if err := tx.Model(&entity.Counter{}).
				Where("name = ?", name).
				Update("seq", gorm.Expr("seq + ?", 1)).Error; err != nil {
				return err
			}
		}

		return tx.First(&counter, "name = ?", name).Error
	})
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
