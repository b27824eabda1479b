package dto

type CreateReviewRequest struct {
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"isPositive" binding:"required"`
	UserID     int64  `json:"userId" binding:"required,gt=0"`
	FilmID     int64  `json:"filmId" binding:"required,gt=0"`
}

// UpdateReviewRequest may carry userId and filmId, but only content and
// polarity are applied.
type UpdateReviewRequest struct {
	ReviewID   int64  `json:"reviewId" binding:"required,gt=0"`
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"isPositive" binding:"required"`
}

type ListReviewsQuery struct {
	FilmID *int64 `form:"filmId" binding:"omitempty,gt=0"`
	Count  int    `form:"count,default=10" binding:"gt=0"`
}
