package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// CleanupRepository provides the retention sweep primitives. Cutoff values are
// preformatted strings matching each table's date column encoding, so the same
// comparison works for ISO timestamps and YYYYMMDDHHMM columns alike.
type CleanupRepository interface {
	// CountOlderThan counts rows whose dateColumn sorts strictly before cutoff.
	CountOlderThan(ctx context.Context, table, dateColumn, cutoff string) (int64, error)
	// DeleteOlderThan deletes rows whose dateColumn sorts strictly before
	// cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, table, dateColumn, cutoff string) (int64, error)
	// FetchMarineObservationsOlderThan returns the marine observation rows a
	// sweep is about to delete, for archival.
	FetchMarineObservationsOlderThan(ctx context.Context, cutoff string) ([]entity.MarineObservation, error)
}

type gormCleanupRepository struct {
	db *gorm.DB
}

// NewCleanupRepository creates a GORM-backed CleanupRepository.
func NewCleanupRepository(db *gorm.DB) CleanupRepository {
	return &gormCleanupRepository{db: db}
}

func (r *gormCleanupRepository) CountOlderThan(ctx context.Context, table, dateColumn, cutoff string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s < ?", dateColumn), cutoff).
		Count(&count).Error
	if err != nil {
		return 0, exception.NewAppError("repository", exception.KindPersistence, "failed to count expired rows in "+table, err, exception.IsTemporary(err))
	}
	return count, nil
}

func (r *gormCleanupRepository) DeleteOlderThan(ctx context.Context, table, dateColumn, cutoff string) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %s WHERE %s < ?", table, dateColumn), cutoff)
	if result.Error != nil {
		return 0, exception.NewAppError("repository", exception.KindPersistence, "failed to delete expired rows in "+table, result.Error, exception.IsTemporary(result.Error))
	}
	return result.RowsAffected, nil
}

func (r *gormCleanupRepository) FetchMarineObservationsOlderThan(ctx context.Context, cutoff string) ([]entity.MarineObservation, error) {
	var rows []entity.MarineObservation
	err := r.db.WithContext(ctx).
		Where("observation_time_kst < ?", cutoff).
		Order("observation_time_kst ASC").
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to fetch marine observations for archival", err, exception.IsTemporary(err))
	}
	return rows, nil
}
