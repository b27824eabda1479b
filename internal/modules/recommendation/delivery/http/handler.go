package handler

import (
	"net/http"

	filmDto "anoa.com/filmorate/internal/modules/film/dto"
	recommendation "anoa.com/filmorate/internal/modules/recommendation/service"
	"anoa.com/filmorate/pkg/response"
	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	service recommendation.RecommendationService
}

func NewRecommendationHandler(service recommendation.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	films, err := h.service.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, filmDto.NewFilmResponses(films))
}
