package repository

import (
	"context"

	"gorm.io/gorm"
)

type RecommendationRepository interface {
	// NearestNeighbor returns the other user sharing the most liked films with
	// userID, lowest id on ties. ok is false when nobody shares a like.
	NearestNeighbor(ctx context.Context, userID int64) (neighborID int64, ok bool, err error)
	// UnseenLikes lists films liked by neighborID but not by userID.
	UnseenLikes(ctx context.Context, userID, neighborID int64) ([]int64, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

type neighborRow struct {
	UserID int64
	Shared int64
}

func (r *recommendationRepository) NearestNeighbor(ctx context.Context, userID int64) (int64, bool, error) {
	var rows []neighborRow
	err := r.db.WithContext(ctx).
		Table("film_likes AS mine").
		Select("theirs.user_id AS user_id, COUNT(*) AS shared").
		Joins("JOIN film_likes theirs ON theirs.film_id = mine.film_id AND theirs.user_id <> mine.user_id").
		Where("mine.user_id = ?", userID).
		Group("theirs.user_id").
		Order("shared DESC").
		Order("theirs.user_id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return 0, false, err
	}
	return rows[0].UserID, true, nil
}

func (r *recommendationRepository) UnseenLikes(ctx context.Context, userID, neighborID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Table("film_likes").
		Where("user_id = ?", neighborID).
		Where("film_id NOT IN (?)", r.db.Table("film_likes").Select("film_id").Where("user_id = ?", userID)).
		Order("film_id").
		Pluck("film_id", &ids).Error
	return ids, err
}
