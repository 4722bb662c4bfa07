package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// LocationRepository reads the location reference data feeding every collector.
type LocationRepository interface {
	// ListAll returns every location.
	ListAll(ctx context.Context) ([]entity.Location, error)
	// ListWithCoordinates returns locations that carry both latitude and longitude.
	ListWithCoordinates(ctx context.Context) ([]entity.Location, error)
	// ListWithGrid returns locations that carry a forecast grid cell.
	ListWithGrid(ctx context.Context) ([]entity.Location, error)
	// FindByCode returns the location for a code, or a not_found error.
	FindByCode(ctx context.Context, code string) (*entity.Location, error)
}

type gormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a GORM-backed LocationRepository.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &gormLocationRepository{db: db}
}

func (r *gormLocationRepository) ListAll(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	if err := r.db.WithContext(ctx).Find(&locations).Error; err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list locations", err, exception.IsTemporary(err))
	}
	return locations, nil
}

func (r *gormLocationRepository) ListWithCoordinates(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	err := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&locations).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list locations with coordinates", err, exception.IsTemporary(err))
	}
	return locations, nil
}

func (r *gormLocationRepository) ListWithGrid(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	err := r.db.WithContext(ctx).
		Where("grid_nx IS NOT NULL AND grid_ny IS NOT NULL").
		Find(&locations).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list locations with grid cells", err, exception.IsTemporary(err))
	}
	return locations, nil
}

func (r *gormLocationRepository) FindByCode(ctx context.Context, code string) (*entity.Location, error) {
	var location entity.Location
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exception.NewAppError("repository", exception.KindNotFound, "location not found: "+code, err, false)
		}
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to find location "+code, err, exception.IsTemporary(err))
	}
	return &location, nil
}
