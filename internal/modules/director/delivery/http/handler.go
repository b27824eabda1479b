package handler

import (
	"net/http"

	"anoa.com/filmorate/internal/modules/director/dto"
	director "anoa.com/filmorate/internal/modules/director/service"
	"anoa.com/filmorate/pkg/response"
	"anoa.com/filmorate/pkg/validator"
	"github.com/gin-gonic/gin"
)

type DirectorHandler struct {
	service director.DirectorService
}

func NewDirectorHandler(service director.DirectorService) *DirectorHandler {
	return &DirectorHandler{service: service}
}

func (h *DirectorHandler) CreateDirector(c *gin.Context) {
	var req dto.CreateDirectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	d, err := h.service.CreateDirector(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DirectorHandler) UpdateDirector(c *gin.Context) {
	var req dto.UpdateDirectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	d, err := h.service.UpdateDirector(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DirectorHandler) GetDirector(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	d, err := h.service.GetDirector(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DirectorHandler) GetAllDirectors(c *gin.Context) {
	directors, err := h.service.GetAllDirectors(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, directors)
}

func (h *DirectorHandler) DeleteDirector(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteDirector(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
