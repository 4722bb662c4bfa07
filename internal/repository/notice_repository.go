package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// NoticeRepository reads client-facing notice posts.
type NoticeRepository interface {
	// List returns up to limit posts, pinned first, newest first within each group.
	List(ctx context.Context, limit int) ([]entity.NoticePost, error)
	// Get returns one post, or a not_found error.
	Get(ctx context.Context, id string) (*entity.NoticePost, error)
}

type gormNoticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository creates a GORM-backed NoticeRepository.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &gormNoticeRepository{db: db}
}

func (r *gormNoticeRepository) List(ctx context.Context, limit int) ([]entity.NoticePost, error) {
	var posts []entity.NoticePost
	err := r.db.WithContext(ctx).
		Order("is_pinned DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to list notice posts", err, exception.IsTemporary(err))
	}
	return posts, nil
}

func (r *gormNoticeRepository) Get(ctx context.Context, id string) (*entity.NoticePost, error) {
	var post entity.NoticePost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exception.NewAppError("repository", exception.KindNotFound, "notice post not found: "+id, err, false)
		}
		return nil, exception.NewAppError("repository", exception.KindPersistence, "failed to find notice post "+id, err, exception.IsTemporary(err))
	}
	return &post, nil
}
