package repository

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// Update changes content and polarity only.
	Update(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	// FindAll lists the most useful reviews first, optionally for one film.
	FindAll(ctx context.Context, filmID *int64, count int) ([]entity.Review, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error

	ReactionRepository
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.Useful = 0
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"content":     review.Content,
			"is_positive": review.IsPositive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("review", review.ID)
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	var reviews []entity.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&reviews).Error; err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, apperror.NotFound("review", id)
	}
	return &reviews[0], nil
}

func (r *reviewRepository) FindAll(ctx context.Context, filmID *int64, count int) ([]entity.Review, error) {
	if count <= 0 {
		return nil, apperror.Invalid("count must be positive, got %d", count)
	}

	reviews := []entity.Review{}
	q := r.db.WithContext(ctx).Order("useful DESC").Order("id ASC").Limit(count)
	if filmID != nil {
		q = q.Where("film_id = ?", *filmID)
	}
	err := q.Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Review{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&entity.ReviewReaction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("review", id)
		}
		return nil
	})
}
