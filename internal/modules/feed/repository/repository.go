package repository

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"gorm.io/gorm"
)

type FeedRepository interface {
	Create(ctx context.Context, event *entity.FeedEvent) error
	FindByUser(ctx context.Context, userID int64) ([]entity.FeedEvent, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(ctx context.Context, event *entity.FeedEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByUser returns the user's journal oldest first. Events sharing a
// timestamp keep insertion order through the id.
func (r *feedRepository) FindByUser(ctx context.Context, userID int64) ([]entity.FeedEvent, error) {
	events := []entity.FeedEvent{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&events).Error
	return events, err
}
