package film

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/filmorate/internal/entity"
	catalogRepo "anoa.com/filmorate/internal/modules/catalog/repository"
	directorRepo "anoa.com/filmorate/internal/modules/director/repository"
	feed "anoa.com/filmorate/internal/modules/feed/service"
	filmDto "anoa.com/filmorate/internal/modules/film/dto"
	repo "anoa.com/filmorate/internal/modules/film/repository"
	search "anoa.com/filmorate/internal/modules/search/service"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/logger"
)

type Service interface {
	CreateFilm(ctx context.Context, req filmDto.CreateFilmRequest) (*filmDto.FilmResponse, error)
	UpdateFilm(ctx context.Context, req filmDto.UpdateFilmRequest) (*filmDto.FilmResponse, error)
	GetFilm(ctx context.Context, id int64) (*filmDto.FilmResponse, error)
	GetAllFilms(ctx context.Context) ([]filmDto.FilmResponse, error)
	DeleteFilm(ctx context.Context, id int64) error

	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error

	GetPopular(ctx context.Context, q filmDto.PopularQuery) ([]filmDto.FilmResponse, error)
	GetByDirector(ctx context.Context, directorID int64, sortBy string) ([]filmDto.FilmResponse, error)
	Search(ctx context.Context, q filmDto.SearchQuery) ([]filmDto.FilmResponse, error)
	GetCommon(ctx context.Context, userID, friendID int64) ([]filmDto.FilmResponse, error)
}

type service struct {
	filmRepo     repo.Repository
	userRepo     userRepo.UserRepository
	genreRepo    catalogRepo.GenreRepository
	mpaRepo      catalogRepo.MpaRepository
	directorRepo directorRepo.DirectorRepository
	feed         feed.FeedService
	index        search.FilmIndex
}

// NewService wires the film service. index may be nil, in which case search
// runs against the database.
func NewService(
	filmRepo repo.Repository,
	userRepo userRepo.UserRepository,
	genreRepo catalogRepo.GenreRepository,
	mpaRepo catalogRepo.MpaRepository,
	directorRepo directorRepo.DirectorRepository,
	feed feed.FeedService,
	index search.FilmIndex,
) Service {
	return &service{
		filmRepo:     filmRepo,
		userRepo:     userRepo,
		genreRepo:    genreRepo,
		mpaRepo:      mpaRepo,
		directorRepo: directorRepo,
		feed:         feed,
		index:        index,
	}
}

func (s *service) CreateFilm(ctx context.Context, req filmDto.CreateFilmRequest) (*filmDto.FilmResponse, error) {
	genreIDs, directorIDs := uniqueIDs(req.Genres), uniqueIDs(req.Directors)
	if err := s.checkReferences(ctx, req.Mpa.ID, genreIDs, directorIDs); err != nil {
		return nil, err
	}

	film := toEntity(req)
	if err := s.filmRepo.Create(ctx, film, genreIDs, directorIDs); err != nil {
		return nil, fmt.Errorf("create film: %w", err)
	}

	return s.reload(ctx, film.ID)
}

func (s *service) UpdateFilm(ctx context.Context, req filmDto.UpdateFilmRequest) (*filmDto.FilmResponse, error) {
	if err := s.ensureFilm(ctx, req.ID); err != nil {
		return nil, err
	}
	genreIDs, directorIDs := uniqueIDs(req.Genres), uniqueIDs(req.Directors)
	if err := s.checkReferences(ctx, req.Mpa.ID, genreIDs, directorIDs); err != nil {
		return nil, err
	}

	film := toEntity(req.CreateFilmRequest)
	film.ID = req.ID
	if err := s.filmRepo.Update(ctx, film, genreIDs, directorIDs); err != nil {
		return nil, fmt.Errorf("update film %d: %w", req.ID, err)
	}

	return s.reload(ctx, film.ID)
}

func (s *service) reload(ctx context.Context, id int64) (*filmDto.FilmResponse, error) {
	film, err := s.filmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, film)

	res := filmDto.NewFilmResponse(film)
	return &res, nil
}

func (s *service) GetFilm(ctx context.Context, id int64) (*filmDto.FilmResponse, error) {
	film, err := s.filmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := filmDto.NewFilmResponse(film)
	return &res, nil
}

func (s *service) GetAllFilms(ctx context.Context) ([]filmDto.FilmResponse, error) {
	films, err := s.filmRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filmDto.NewFilmResponses(films), nil
}

func (s *service) DeleteFilm(ctx context.Context, id int64) error {
	if err := s.filmRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.DeleteFilm(ctx, id); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Int64("film_id", id).Msg("film index delete failed")
		}
	}
	return nil
}

// AddLike records the like once; repeating it is a no-op without a feed event.
func (s *service) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.ensureFilm(ctx, filmID); err != nil {
		return err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	added, err := s.filmRepo.AddLike(ctx, filmID, userID)
	if err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	if !added {
		return nil
	}
	s.reindexByID(ctx, filmID)
	return s.feed.AddEvent(ctx, userID, filmID, entity.OperationAdd, entity.EventLike)
}

func (s *service) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.ensureFilm(ctx, filmID); err != nil {
		return err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	removed, err := s.filmRepo.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if !removed {
		return nil
	}
	s.reindexByID(ctx, filmID)
	return s.feed.AddEvent(ctx, userID, filmID, entity.OperationRemove, entity.EventLike)
}

func (s *service) GetPopular(ctx context.Context, q filmDto.PopularQuery) ([]filmDto.FilmResponse, error) {
	films, err := s.filmRepo.FindPopular(ctx, q.Count, q.GenreID, q.Year)
	if err != nil {
		return nil, err
	}
	return filmDto.NewFilmResponses(films), nil
}

func (s *service) GetByDirector(ctx context.Context, directorID int64, sortBy string) ([]filmDto.FilmResponse, error) {
	if err := repo.ValidateSortKey(sortBy); err != nil {
		return nil, err
	}
	ok, err := s.directorRepo.ExistsByID(ctx, directorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("director", directorID)
	}

	films, err := s.filmRepo.FindByDirectorSorted(ctx, directorID, sortBy)
	if err != nil {
		return nil, err
	}
	return filmDto.NewFilmResponses(films), nil
}

func (s *service) Search(ctx context.Context, q filmDto.SearchQuery) ([]filmDto.FilmResponse, error) {
	fields, err := repo.ParseSearchFields(q.By)
	if err != nil {
		return nil, err
	}
	query := strings.TrimSpace(q.Query)

	if s.index != nil {
		films, err := s.searchIndex(ctx, query, fields)
		if err == nil {
			return filmDto.NewFilmResponses(films), nil
		}
		logger.Ctx(ctx).Warn().Err(err).Msg("search index unavailable, falling back to database")
	}

	films, err := s.filmRepo.Search(ctx, query, fields)
	if err != nil {
		return nil, err
	}
	return filmDto.NewFilmResponses(films), nil
}

func (s *service) searchIndex(ctx context.Context, query string, fields []repo.SearchField) ([]entity.Film, error) {
	attributes := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case repo.SearchTitle:
			attributes = append(attributes, "name")
		case repo.SearchDirector:
			attributes = append(attributes, "directors")
		}
	}

	ids, err := s.index.SearchIDs(ctx, query, attributes)
	if err != nil {
		return nil, err
	}
	return s.filmRepo.FindByIDs(ctx, ids)
}

func (s *service) GetCommon(ctx context.Context, userID, friendID int64) ([]filmDto.FilmResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, friendID); err != nil {
		return nil, err
	}

	films, err := s.filmRepo.FindCommon(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	return filmDto.NewFilmResponses(films), nil
}
