package director

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/modules/director/dto"
	"anoa.com/filmorate/internal/modules/director/repository"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/logger"
)

type DirectorService interface {
	CreateDirector(ctx context.Context, req dto.CreateDirectorRequest) (*entity.Director, error)
	UpdateDirector(ctx context.Context, req dto.UpdateDirectorRequest) (*entity.Director, error)
	GetDirector(ctx context.Context, id int64) (*entity.Director, error)
	GetAllDirectors(ctx context.Context) ([]entity.Director, error)
	DeleteDirector(ctx context.Context, id int64) error
}

// FilmReindexer refreshes the search documents of films whose director
// names changed.
type FilmReindexer interface {
	ReindexFilms(ctx context.Context, filmIDs []int64)
}

type directorService struct {
	repo    repository.DirectorRepository
	reindex FilmReindexer
}

func NewDirectorService(repo repository.DirectorRepository, reindex FilmReindexer) DirectorService {
	return &directorService{repo: repo, reindex: reindex}
}

func (s *directorService) CreateDirector(ctx context.Context, req dto.CreateDirectorRequest) (*entity.Director, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("director name must not be blank")
	}

	director := &entity.Director{Name: name}
	if err := s.repo.Create(ctx, director); err != nil {
		return nil, fmt.Errorf("create director: %w", err)
	}
	return director, nil
}

func (s *directorService) UpdateDirector(ctx context.Context, req dto.UpdateDirectorRequest) (*entity.Director, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("director name must not be blank")
	}

	director := &entity.Director{ID: req.ID, Name: name}
	if err := s.repo.Update(ctx, director); err != nil {
		return nil, err
	}
	s.reindexFilms(ctx, director.ID)
	return director, nil
}

func (s *directorService) GetDirector(ctx context.Context, id int64) (*entity.Director, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *directorService) GetAllDirectors(ctx context.Context) ([]entity.Director, error) {
	return s.repo.FindAll(ctx)
}

func (s *directorService) DeleteDirector(ctx context.Context, id int64) error {
	filmIDs, err := s.repo.FilmIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("load director films: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.reindex != nil {
		s.reindex.ReindexFilms(ctx, filmIDs)
	}
	return nil
}

func (s *directorService) reindexFilms(ctx context.Context, directorID int64) {
	if s.reindex == nil {
		return
	}
	filmIDs, err := s.repo.FilmIDs(ctx, directorID)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("director_id", directorID).Msg("load director films for index failed")
		return
	}
	s.reindex.ReindexFilms(ctx, filmIDs)
}
