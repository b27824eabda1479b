package catalog

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/modules/catalog/repository"
)

// CatalogService serves the read-only reference data: genres and MPA ratings.
type CatalogService interface {
	GetGenre(ctx context.Context, id int64) (*entity.Genre, error)
	GetAllGenres(ctx context.Context) ([]entity.Genre, error)
	GetMpa(ctx context.Context, id int64) (*entity.MpaRating, error)
	GetAllMpa(ctx context.Context) ([]entity.MpaRating, error)
}

type catalogService struct {
	genres repository.GenreRepository
	mpa    repository.MpaRepository
}

func NewCatalogService(genres repository.GenreRepository, mpa repository.MpaRepository) CatalogService {
	return &catalogService{genres: genres, mpa: mpa}
}

func (s *catalogService) GetGenre(ctx context.Context, id int64) (*entity.Genre, error) {
	return s.genres.FindByID(ctx, id)
}

func (s *catalogService) GetAllGenres(ctx context.Context) ([]entity.Genre, error) {
	return s.genres.FindAll(ctx)
}

func (s *catalogService) GetMpa(ctx context.Context, id int64) (*entity.MpaRating, error) {
	return s.mpa.FindByID(ctx, id)
}

func (s *catalogService) GetAllMpa(ctx context.Context) ([]entity.MpaRating, error) {
	return s.mpa.FindAll(ctx)
}
