package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// AdRepository backs the admin campaign CRUD API and the event tracker.
type AdRepository interface {
	// List returns all campaigns ordered by priority, then newest first.
	List(ctx context.Context) ([]entity.AdCampaign, error)
	// Get returns one campaign, or a not_found error.
	Get(ctx context.Context, id string) (*entity.AdCampaign, error)
	// Create inserts a new campaign.
	Create(ctx context.Context, ad *entity.AdCampaign) error
	// Update overwrites the mutable fields of an existing campaign.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.AdCampaign, error)
	// Delete removes a campaign. Deleting a missing id is a not_found error.
	Delete(ctx context.Context, id string) error
	// ListActive returns active campaigns whose display window covers the given
	// date (YYYY-MM-DD), ordered by priority.
	ListActive(ctx context.Context, date string) ([]entity.AdCampaign, error)
	// InsertEvent records one impression or click.
	InsertEvent(ctx context.Context, event *entity.AdEvent) error
}

type gormAdRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a GORM-backed AdRepository.
func NewAdRepository(db *gorm.DB) AdRepository {
	return &gormAdRepository{db: db}
}

func (r *gormAdRepository) List(ctx context.Context) ([]entity.AdCampaign, error) {
	var ads []entity.AdCampaign
	err := r.db.WithContext(ctx).
		Order("priority DESC").
		Order("created_at DESC").
		Find(&ads).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list ad campaigns", err, exception.IsTemporary(err))
	}
	return ads, nil
}

func (r *gormAdRepository) Get(ctx context.Context, id string) (*entity.AdCampaign, error) {
	var ad entity.AdCampaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exception.NewAppError("repository", exception.KindNotFound, "ad campaign not found: "+id, err, false)
		}
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to find ad campaign "+id, err, exception.IsTemporary(err))
	}
	return &ad, nil
}

func (r *gormAdRepository) Create(ctx context.Context, ad *entity.AdCampaign) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return exception.NewAppError("repository", exception.KindPersistence, "failed to create ad campaign", err, exception.IsTemporary(err))
	}
	return nil
}

func (r *gormAdRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.AdCampaign, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.AdCampaign{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to update ad campaign "+id, result.Error, exception.IsTemporary(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, exception.NewAppError("repository", exception.KindNotFound, "ad campaign not found: "+id, nil, false)
	}
	return r.Get(ctx, id)
}

func (r *gormAdRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.AdCampaign{})
	if result.Error != nil {
		return exception.NewAppError("repository", exception.KindPersistence, "failed to delete ad campaign "+id, result.Error, exception.IsTemporary(result.Error))
	}
	if result.RowsAffected == 0 {
		return exception.NewAppError("repository", exception.KindNotFound, "ad campaign not found: "+id, nil, false)
	}
	return nil
}

func (r *gormAdRepository) ListActive(ctx context.Context, date string) ([]entity.AdCampaign, error) {
	var ads []entity.AdCampaign
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND display_start_date <= ? AND display_end_date >= ?", true, date, date).
		Order("priority DESC").
		Find(&ads).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list active ad campaigns", err, exception.IsTemporary(err))
	}
	return ads, nil
}

func (r *gormAdRepository) InsertEvent(ctx context.Context, event *entity.AdEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return exception.NewAppError("repository", exception.KindPersistence, "failed to insert ad event", err, exception.IsTemporary(err))
	}
	return nil
}
