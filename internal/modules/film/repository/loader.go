package film

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"gorm.io/gorm"
)

// AssociationLoader fetches the many-to-many attributes of a batch of films
// with one query per attribute. Every requested id is present in the result,
// mapped to an empty slice when the film has no rows.
type AssociationLoader interface {
	// LoadGenres orders each film's genres by ascending genre id.
	LoadGenres(ctx context.Context, filmIDs []int64) (map[int64][]entity.Genre, error)
	LoadLikes(ctx context.Context, filmIDs []int64) (map[int64][]int64, error)
	LoadDirectors(ctx context.Context, filmIDs []int64) (map[int64][]entity.Director, error)
}

type associationLoader struct {
	db *gorm.DB
}

func NewAssociationLoader(db *gorm.DB) AssociationLoader {
	return &associationLoader{db: db}
}

type genreRow struct {
	FilmID int64
	ID     int64
	Name   string
}

func (l *associationLoader) LoadGenres(ctx context.Context, filmIDs []int64) (map[int64][]entity.Genre, error) {
	out := make(map[int64][]entity.Genre, len(filmIDs))
	for _, id := range filmIDs {
		out[id] = []entity.Genre{}
	}
	if len(filmIDs) == 0 {
		return out, nil
	}

	var rows []genreRow
	err := l.db.WithContext(ctx).Raw(`
		SELECT fg.film_id, g.id, g.name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id IN ?
		ORDER BY fg.film_id, g.id`, filmIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.FilmID] = append(out[row.FilmID], entity.Genre{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

type likeRow struct {
	FilmID int64
	UserID int64
}

func (l *associationLoader) LoadLikes(ctx context.Context, filmIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(filmIDs))
	for _, id := range filmIDs {
		out[id] = []int64{}
	}
	if len(filmIDs) == 0 {
		return out, nil
	}

	var rows []likeRow
	err := l.db.WithContext(ctx).
		Model(&entity.FilmLike{}).
		Select("film_id, user_id").
		Where("film_id IN ?", filmIDs).
		Order("film_id, user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.FilmID] = append(out[row.FilmID], row.UserID)
	}
	return out, nil
}

type directorRow struct {
	FilmID int64
	ID     int64
	Name   string
}

func (l *associationLoader) LoadDirectors(ctx context.Context, filmIDs []int64) (map[int64][]entity.Director, error) {
	out := make(map[int64][]entity.Director, len(filmIDs))
	for _, id := range filmIDs {
		out[id] = []entity.Director{}
	}
	if len(filmIDs) == 0 {
		return out, nil
	}

	var rows []directorRow
	err := l.db.WithContext(ctx).Raw(`
		SELECT fd.film_id, d.id, d.name
		FROM film_directors fd
		JOIN directors d ON d.id = fd.director_id
		WHERE fd.film_id IN ?
		ORDER BY fd.film_id, d.id`, filmIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.FilmID] = append(out[row.FilmID], entity.Director{ID: row.ID, Name: row.Name})
	}
	return out, nil
}
