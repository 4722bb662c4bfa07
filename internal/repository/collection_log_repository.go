package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// CollectionLogRepository records one audit row per collection run.
type CollectionLogRepository interface {
	Insert(ctx context.Context, log *entity.CollectionLog) error
}

type gormCollectionLogRepository struct {
	db *gorm.DB
}

// NewCollectionLogRepository creates a GORM-backed CollectionLogRepository.
func NewCollectionLogRepository(db *gorm.DB) CollectionLogRepository {
	return &gormCollectionLogRepository{db: db}
}

func (r *gormCollectionLogRepository) Insert(ctx context.Context, log *entity.CollectionLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return exception.NewAppError("repository", exception.KindPersistence, "failed to insert collection log", err, exception.IsTemporary(err))
	}
	return nil
}
