package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// RegionRepository reads the provider-region to location-code mapping table.
type RegionRepository interface {
	// ListByForecastType returns every mapping row of one forecast type.
	ListByForecastType(ctx context.Context, forecastType string) ([]entity.RegionMapping, error)
	// FindByLocationCode returns the mapping rows pointing at one location code.
	FindByLocationCode(ctx context.Context, locationCode string) ([]entity.RegionMapping, error)
}

type gormRegionRepository struct {
	db *gorm.DB
}

// NewRegionRepository creates a GORM-backed RegionRepository.
func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &gormRegionRepository{db: db}
}

func (r *gormRegionRepository) ListByForecastType(ctx context.Context, forecastType string) ([]entity.RegionMapping, error) {
	var rows []entity.RegionMapping
	err := r.db.WithContext(ctx).
		Where("forecast_type = ?", forecastType).
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list region mappings", err, exception.IsTemporary(err))
	}
	return rows, nil
}

func (r *gormRegionRepository) FindByLocationCode(ctx context.Context, locationCode string) ([]entity.RegionMapping, error) {
	var rows []entity.RegionMapping
	err := r.db.WithContext(ctx).
		Where("location_code = ?", locationCode).
		Find(&rows).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to find region mappings for "+locationCode, err, exception.IsTemporary(err))
	}
	return rows, nil
}
