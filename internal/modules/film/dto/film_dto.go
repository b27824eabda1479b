package dto

import (
	"anoa.com/filmorate/internal/entity"
	commonDto "anoa.com/filmorate/pkg/dto"
)

type CreateFilmRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description" binding:"max=200"`
	ReleaseDate commonDto.Date    `json:"releaseDate" binding:"required,releasedate"`
	Duration    int               `json:"duration" binding:"gt=0"`
	Mpa         commonDto.IDRef   `json:"mpa"`
	Genres      []commonDto.IDRef `json:"genres" binding:"dive"`
	Directors   []commonDto.IDRef `json:"directors" binding:"dive"`
}

type UpdateFilmRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
	CreateFilmRequest
}

type PopularQuery struct {
	Count   int    `form:"count,default=10" binding:"gt=0"`
	GenreID *int64 `form:"genreId" binding:"omitempty,gt=0"`
	Year    *int   `form:"year" binding:"omitempty,gt=0"`
}

type SearchQuery struct {
	Query string `form:"query"`
	By    string `form:"by,default=title"`
}

type FilmResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ReleaseDate commonDto.Date       `json:"releaseDate"`
	Duration    int                  `json:"duration"`
	Mpa         commonDto.NamedRef   `json:"mpa"`
	Genres      []commonDto.NamedRef `json:"genres"`
	Directors   []commonDto.NamedRef `json:"directors"`
	Likes       []int64              `json:"likes"`
	LikesCount  int                  `json:"likesCount"`
}

func NewFilmResponse(f *entity.Film) FilmResponse {
	genres := make([]commonDto.NamedRef, 0, len(f.Genres))
	for _, g := range f.Genres {
		genres = append(genres, commonDto.NamedRef{ID: g.ID, Name: g.Name})
	}
	directors := make([]commonDto.NamedRef, 0, len(f.Directors))
	for _, d := range f.Directors {
		directors = append(directors, commonDto.NamedRef{ID: d.ID, Name: d.Name})
	}
	likes := f.Likes
	if likes == nil {
		likes = []int64{}
	}

	return FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: commonDto.NewDate(f.ReleaseDate),
		Duration:    f.Duration,
		Mpa:         commonDto.NamedRef{ID: f.Mpa.ID, Name: f.Mpa.Name},
		Genres:      genres,
		Directors:   directors,
		Likes:       likes,
		LikesCount:  len(likes),
	}
}

func NewFilmResponses(films []entity.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for i := range films {
		out = append(out, NewFilmResponse(&films[i]))
	}
	return out
}
