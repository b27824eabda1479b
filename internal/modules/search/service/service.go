package service

import (
	"context"
	"fmt"
	"strconv"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/logger"
	"anoa.com/filmorate/pkg/sanitize"
	"github.com/goccy/go-json"
	"github.com/meilisearch/meilisearch-go"
)

const filmsIndex = "films"

// FilmIndex is an external full-text index over film names and director
// names. The relational store stays authoritative; the index only yields ids.
type FilmIndex interface {
	IndexFilm(ctx context.Context, film *entity.Film) error
	IndexFilms(ctx context.Context, films []entity.Film) error
	DeleteFilm(ctx context.Context, id int64) error
	SearchIDs(ctx context.Context, query string, attributes []string) ([]int64, error)
}

type meiliFilmIndex struct {
	client meilisearch.ServiceManager
}

func NewMeiliFilmIndex(client meilisearch.ServiceManager) FilmIndex {
	s := &meiliFilmIndex{client: client}
	s.initIndex()
	return s
}

func (s *meiliFilmIndex) initIndex() {
	searchable := []string{"name", "directors"}
	if _, err := s.client.Index(filmsIndex).UpdateSearchableAttributes(&searchable); err != nil {
		logger.Warn().Err(err).Msg("failed to update films searchable attributes")
	}
	sortable := []string{"likes"}
	if _, err := s.client.Index(filmsIndex).UpdateSortableAttributes(&sortable); err != nil {
		logger.Warn().Err(err).Msg("failed to update films sortable attributes")
	}
}

type meiliFilmDoc struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Directors   []string `json:"directors"`
	Likes       int      `json:"likes"`
}

type meiliFilmHit struct {
	ID int64 `json:"id"`
}

func (s *meiliFilmIndex) IndexFilm(ctx context.Context, film *entity.Film) error {
	return s.IndexFilms(ctx, []entity.Film{*film})
}

func (s *meiliFilmIndex) IndexFilms(ctx context.Context, films []entity.Film) error {
	if len(films) == 0 {
		return nil
	}

	docs := make([]meiliFilmDoc, 0, len(films))
	for _, film := range films {
		docs = append(docs, newFilmDoc(&film))
	}

	primaryKey := "id"
	task, err := s.client.Index(filmsIndex).AddDocuments(docs, &primaryKey)
	if err != nil {
		return fmt.Errorf("index %d films: %w", len(docs), err)
	}
	logger.Ctx(ctx).Debug().Int("films", len(docs)).Interface("task_uid", task.TaskUID).Msg("films indexed")
	return nil
}

func newFilmDoc(film *entity.Film) meiliFilmDoc {
	directors := make([]string, 0, len(film.Directors))
	for _, d := range film.Directors {
		directors = append(directors, d.Name)
	}
	return meiliFilmDoc{
		ID:          film.ID,
		Name:        film.Name,
		Description: sanitize.Text(film.Description),
		Directors:   directors,
		Likes:       len(film.Likes),
	}
}

func (s *meiliFilmIndex) DeleteFilm(ctx context.Context, id int64) error {
	_, err := s.client.Index(filmsIndex).DeleteDocument(strconv.FormatInt(id, 10))
	return err
}

func (s *meiliFilmIndex) SearchIDs(ctx context.Context, query string, attributes []string) ([]int64, error) {
	resp, err := s.client.Index(filmsIndex).Search(query, &meilisearch.SearchRequest{
		AttributesToSearchOn: attributes,
		AttributesToRetrieve: []string{"id"},
		Sort:                 []string{"likes:desc"},
		Limit:                1000,
	})
	if err != nil {
		return nil, fmt.Errorf("meilisearch query: %w", err)
	}

	// Hits decode through JSON so the hit representation of the client
	// does not leak into callers.
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var hits []meiliFilmHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
