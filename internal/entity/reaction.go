package entity

import (
	"time"
)

type Review struct {
	ID         int64     `gorm:"primaryKey" json:"reviewId"`
	FilmID     int64     `gorm:"not null;index" json:"filmId"`
	UserID     int64     `gorm:"not null;index" json:"userId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsPositive bool      `gorm:"not null" json:"isPositive"`
	Useful     int       `gorm:"not null;default:0" json:"useful"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
}

// ReviewReaction holds at most one vote per (review, user).
type ReviewReaction struct {
	ReviewID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID   int64 `gorm:"primaryKey;autoIncrement:false;index"`
	IsUseful bool  `gorm:"not null"`
}

func (r *ReviewReaction) TableName() string {
	return "review_reactions"
}

// Delta is the contribution of this reaction to Review.Useful.
func (r *ReviewReaction) Delta() int {
	if r.IsUseful {
		return 1
	}
	return -1
}
