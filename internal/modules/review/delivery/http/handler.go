package handler

import (
	"context"
	"net/http"

	"anoa.com/filmorate/internal/entity"
	reviewDto "anoa.com/filmorate/internal/modules/review/dto"
	review "anoa.com/filmorate/internal/modules/review/service"
	"anoa.com/filmorate/pkg/response"
	"anoa.com/filmorate/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service review.ReviewService
}

func NewReviewHandler(service review.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req reviewDto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreateReview(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req reviewDto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.UpdateReview(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.GetReview(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	var q reviewDto.ListReviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.GetReviews(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) AddLike(c *gin.Context) {
	h.react(c, h.service.AddLike)
}

func (h *ReviewHandler) AddDislike(c *gin.Context) {
	h.react(c, h.service.AddDislike)
}

// RemoveReaction serves both DELETE .../like/:userId and .../dislike/:userId.
func (h *ReviewHandler) RemoveReaction(c *gin.Context) {
	h.react(c, h.service.RemoveReaction)
}

func (h *ReviewHandler) react(c *gin.Context, apply func(ctx context.Context, reviewID, userID int64) (*entity.Review, error)) {
	reviewID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, err := response.ParamID(c, "userId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := apply(c.Request.Context(), reviewID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
