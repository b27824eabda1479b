package handler

import (
	"net/http"
	"strconv"

	filmDto "anoa.com/filmorate/internal/modules/film/dto"
	film "anoa.com/filmorate/internal/modules/film/service"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/response"
	"anoa.com/filmorate/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FilmHandler struct {
	service film.Service
}

func NewFilmHandler(service film.Service) *FilmHandler {
	return &FilmHandler{service: service}
}

func (h *FilmHandler) CreateFilm(c *gin.Context) {
	var req filmDto.CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreateFilm(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *FilmHandler) UpdateFilm(c *gin.Context) {
	var req filmDto.UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.UpdateFilm(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FilmHandler) GetFilm(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.GetFilm(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FilmHandler) GetAllFilms(c *gin.Context) {
	res, err := h.service.GetAllFilms(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FilmHandler) DeleteFilm(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteFilm(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FilmHandler) AddLike(c *gin.Context) {
	filmID, userID, ok := filmAndUser(c)
	if !ok {
		return
	}

	if err := h.service.AddLike(c.Request.Context(), filmID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FilmHandler) RemoveLike(c *gin.Context) {
	filmID, userID, ok := filmAndUser(c)
	if !ok {
		return
	}

	if err := h.service.RemoveLike(c.Request.Context(), filmID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FilmHandler) GetPopular(c *gin.Context) {
	var q filmDto.PopularQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.GetPopular(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FilmHandler) GetByDirector(c *gin.Context) {
	directorID, err := response.ParamID(c, "directorId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.GetByDirector(c.Request.Context(), directorID, c.Query("sortBy"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FilmHandler) Search(c *gin.Context) {
	var q filmDto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FilmHandler) GetCommon(c *gin.Context) {
	userID, err := queryID(c, "userId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	friendID, err := queryID(c, "friendId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.GetCommon(c.Request.Context(), userID, friendID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func filmAndUser(c *gin.Context) (int64, int64, bool) {
	filmID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return 0, 0, false
	}
	userID, err := response.ParamID(c, "userId")
	if err != nil {
		response.ResponseError(c, err)
		return 0, 0, false
	}
	return filmID, userID, true
}

func queryID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid("%s must be a positive integer", name)
	}
	return id, nil
}
