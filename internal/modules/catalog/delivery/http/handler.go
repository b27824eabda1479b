package handler

import (
	"net/http"

	catalog "anoa.com/filmorate/internal/modules/catalog/service"
	"anoa.com/filmorate/pkg/response"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service catalog.CatalogService
}

func NewCatalogHandler(service catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) GetAllGenres(c *gin.Context) {
	genres, err := h.service.GetAllGenres(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (h *CatalogHandler) GetGenre(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	genre, err := h.service.GetGenre(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (h *CatalogHandler) GetAllMpa(c *gin.Context) {
	ratings, err := h.service.GetAllMpa(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (h *CatalogHandler) GetMpa(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rating, err := h.service.GetMpa(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}
