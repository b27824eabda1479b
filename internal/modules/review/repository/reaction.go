package repository

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository is the per (review, user) vote state machine:
// none, useful, not useful. Each call runs as one transaction holding the
// review row lock, so the counter always equals the signed sum of live votes.
// All methods return the review's usefulness after the change.
type ReactionRepository interface {
	AddLike(ctx context.Context, reviewID, userID int64) (int, error)
	AddDislike(ctx context.Context, reviewID, userID int64) (int, error)
	RemoveReaction(ctx context.Context, reviewID, userID int64) (int, error)
	FindReaction(ctx context.Context, reviewID, userID int64) (*entity.ReviewReaction, error)
}

func (r *reviewRepository) AddLike(ctx context.Context, reviewID, userID int64) (int, error) {
	return r.react(ctx, reviewID, userID, &entity.ReviewReaction{ReviewID: reviewID, UserID: userID, IsUseful: true})
}

func (r *reviewRepository) AddDislike(ctx context.Context, reviewID, userID int64) (int, error) {
	return r.react(ctx, reviewID, userID, &entity.ReviewReaction{ReviewID: reviewID, UserID: userID, IsUseful: false})
}

func (r *reviewRepository) RemoveReaction(ctx context.Context, reviewID, userID int64) (int, error) {
	return r.react(ctx, reviewID, userID, nil)
}

// FindReaction returns nil when the user has not voted on the review.
func (r *reviewRepository) FindReaction(ctx context.Context, reviewID, userID int64) (*entity.ReviewReaction, error) {
	var reactions []entity.ReviewReaction
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Limit(1).
		Find(&reactions).Error
	if err != nil || len(reactions) == 0 {
		return nil, err
	}
	return &reactions[0], nil
}

// react undoes the prior vote, if any, and then applies next, if any.
func (r *reviewRepository) react(ctx context.Context, reviewID, userID int64, next *entity.ReviewReaction) (int, error) {
	var useful int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []entity.Review
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", reviewID).
			Limit(1).
			Find(&locked).Error; err != nil {
			return err
		}
		if len(locked) == 0 {
			return apperror.NotFound("review", reviewID)
		}

		var prior []entity.ReviewReaction
		if err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
			Limit(1).
			Find(&prior).Error; err != nil {
			return err
		}

		if len(prior) > 0 {
			if err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
				Delete(&entity.ReviewReaction{}).Error; err != nil {
				return err
			}
			if err := adjustUseful(tx, reviewID, -prior[0].Delta()); err != nil {
				return err
			}
		}

		if next != nil {
			if err := tx.Create(next).Error; err != nil {
				return err
			}
			if err := adjustUseful(tx, reviewID, next.Delta()); err != nil {
				return err
			}
		}

		return tx.Model(&entity.Review{}).
			Select("useful").
			Where("id = ?", reviewID).
			Scan(&useful).Error
	})
	return useful, err
}

func adjustUseful(tx *gorm.DB, reviewID int64, delta int) error {
	return tx.Model(&entity.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("useful", gorm.Expr("useful + ?", delta)).Error
}
