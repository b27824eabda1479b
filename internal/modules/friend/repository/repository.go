package repository

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRepository interface {
	// Add inserts the edge and reports whether it was new.
	Add(ctx context.Context, userID, friendID int64) (bool, error)
	// Remove deletes the edge and reports whether it existed.
	Remove(ctx context.Context, userID, friendID int64) (bool, error)
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
	CommonFriendIDs(ctx context.Context, userID, otherID int64) ([]int64, error)
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Add(ctx context.Context, userID, friendID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Friendship{UserID: userID, FriendID: friendID})
	return result.RowsAffected > 0, result.Error
}

func (r *friendRepository) Remove(ctx context.Context, userID, friendID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&entity.Friendship{})
	return result.RowsAffected > 0, result.Error
}

func (r *friendRepository) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&entity.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id").
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (r *friendRepository) CommonFriendIDs(ctx context.Context, userID, otherID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT f1.friend_id
		FROM friendships f1
		JOIN friendships f2 ON f2.friend_id = f1.friend_id
		WHERE f1.user_id = ? AND f2.user_id = ?
		ORDER BY f1.friend_id`, userID, otherID).
		Scan(&ids).Error
	return ids, err
}
