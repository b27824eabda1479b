package service

import (
	"context"
	"fmt"

	filmRepo "anoa.com/filmorate/internal/modules/film/repository"
	"anoa.com/filmorate/pkg/logger"
)

// Syncer rewrites index documents for films whose searchable fields change
// outside the film service: director renames, director and user deletes, and
// rows that existed before the index did. A Syncer with a nil index is a no-op.
type Syncer struct {
	index FilmIndex
	films filmRepo.Repository
}

func NewSyncer(index FilmIndex, films filmRepo.Repository) *Syncer {
	return &Syncer{index: index, films: films}
}

// Backfill indexes every stored film.
func (s *Syncer) Backfill(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	films, err := s.films.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load films for index: %w", err)
	}
	if err := s.index.IndexFilms(ctx, films); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int("films", len(films)).Msg("film index backfilled")
	return nil
}

// ReindexFilms refreshes the documents of the given films. Failures are
// logged; the database write that triggered them has already committed.
func (s *Syncer) ReindexFilms(ctx context.Context, ids []int64) {
	if s.index == nil || len(ids) == 0 {
		return
	}
	films, err := s.films.FindByIDs(ctx, ids)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Ints64("film_ids", ids).Msg("film reload for index failed")
		return
	}
	if err := s.index.IndexFilms(ctx, films); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Ints64("film_ids", ids).Msg("film index update failed")
	}
}
