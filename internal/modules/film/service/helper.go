package film

import (
	"context"
	"time"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/modules/film/dto"
	"anoa.com/filmorate/pkg/apperror"
	commonDto "anoa.com/filmorate/pkg/dto"
	"anoa.com/filmorate/pkg/logger"
	"anoa.com/filmorate/pkg/sanitize"
)

// uniqueIDs drops duplicate references while keeping first-seen order.
func uniqueIDs(refs []commonDto.IDRef) []int64 {
	seen := make(map[int64]bool, len(refs))
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if !seen[ref.ID] {
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

func toEntity(req dto.CreateFilmRequest) *entity.Film {
	released := req.ReleaseDate.Time().UTC()
	return &entity.Film{
		Name:        req.Name,
		Description: sanitize.Text(req.Description),
		ReleaseDate: time.Date(released.Year(), released.Month(), released.Day(), 0, 0, 0, 0, time.UTC),
		Duration:    req.Duration,
		MpaID:       req.Mpa.ID,
	}
}

// checkReferences fails with NotFound before any write when the MPA rating,
// a genre or a director does not exist.
func (s *service) checkReferences(ctx context.Context, mpaID int64, genreIDs, directorIDs []int64) error {
	ok, err := s.mpaRepo.ExistsByID(ctx, mpaID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("mpa rating", mpaID)
	}

	missing, err := s.genreRepo.MissingIDs(ctx, genreIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperror.NotFound("genre", missing[0])
	}

	missing, err = s.directorRepo.MissingIDs(ctx, directorIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperror.NotFound("director", missing[0])
	}
	return nil
}

func (s *service) ensureUser(ctx context.Context, id int64) error {
	ok, err := s.userRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("user", id)
	}
	return nil
}

func (s *service) ensureFilm(ctx context.Context, id int64) error {
	ok, err := s.filmRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("film", id)
	}
	return nil
}

// reindex refreshes the search document; index failures never fail the write.
func (s *service) reindex(ctx context.Context, film *entity.Film) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexFilm(ctx, film); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("film_id", film.ID).Msg("film index update failed")
	}
}

func (s *service) reindexByID(ctx context.Context, id int64) {
	if s.index == nil {
		return
	}
	film, err := s.filmRepo.FindByID(ctx, id)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("film_id", id).Msg("film reload for index failed")
		return
	}
	s.reindex(ctx, film)
}
