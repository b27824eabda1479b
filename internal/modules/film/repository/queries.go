package film

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
)

const (
	SortByLikes = "likes"
	SortByYear  = "year"
)

type SearchField string

const (
	SearchTitle    SearchField = "title"
	SearchDirector SearchField = "director"
)

// ParseSearchFields reads a comma separated list such as "title,director".
func ParseSearchFields(by string) ([]SearchField, error) {
	var fields []SearchField
	seen := map[SearchField]bool{}
	for _, part := range strings.Split(by, ",") {
		f := SearchField(strings.ToLower(strings.TrimSpace(part)))
		switch f {
		case SearchTitle, SearchDirector:
		default:
			return nil, apperror.Invalid("unknown search field %q", part)
		}
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// rankedByLikes starts a query over films ordered by like count, most liked
// first, ties by id.
func (r *repository) rankedByLikes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("films AS f").
		Select("f.id").
		Joins("LEFT JOIN film_likes fl ON fl.film_id = f.id").
		Group("f.id").
		Order("COUNT(fl.user_id) DESC").
		Order("f.id ASC")
}

func (r *repository) FindPopular(ctx context.Context, count int, genreID *int64, year *int) ([]entity.Film, error) {
	if count <= 0 {
		return nil, apperror.Invalid("count must be positive, got %d", count)
	}

	q := r.rankedByLikes(ctx)
	if genreID != nil {
		q = q.Where("f.id IN (?)", r.db.Model(&entity.FilmGenre{}).Select("film_id").Where("genre_id = ?", *genreID))
	}
	if year != nil {
		from := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("f.release_date >= ? AND f.release_date < ?", from, from.AddDate(1, 0, 0))
	}

	var ids []int64
	if err := q.Limit(count).Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("popular films: %w", err)
	}
	return r.FindByIDs(ctx, ids)
}

// ValidateSortKey accepts exactly "likes" and "year".
func ValidateSortKey(sortBy string) error {
	switch sortBy {
	case SortByLikes, SortByYear:
		return nil
	}
	return apperror.Invalid("sortBy must be %q or %q, got %q", SortByLikes, SortByYear, sortBy)
}

// FindByDirectorSorted lists a director's films by like count or by release
// date. The sort key is checked before anything touches the database.
func (r *repository) FindByDirectorSorted(ctx context.Context, directorID int64, sortBy string) ([]entity.Film, error) {
	if err := ValidateSortKey(sortBy); err != nil {
		return nil, err
	}

	var q *gorm.DB
	switch sortBy {
	case SortByLikes:
		q = r.rankedByLikes(ctx).
			Joins("JOIN film_directors fd ON fd.film_id = f.id").
			Where("fd.director_id = ?", directorID)
	case SortByYear:
		q = r.db.WithContext(ctx).
			Table("films AS f").
			Select("f.id").
			Joins("JOIN film_directors fd ON fd.film_id = f.id").
			Where("fd.director_id = ?", directorID).
			Order("f.release_date ASC").
			Order("f.id ASC")
	}

	var ids []int64
	if err := q.Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("director films: %w", err)
	}
	return r.FindByIDs(ctx, ids)
}

// Search matches query case-insensitively as a substring of the film name
// and/or any of its directors' names.
func (r *repository) Search(ctx context.Context, query string, fields []SearchField) ([]entity.Film, error) {
	if len(fields) == 0 {
		return nil, apperror.Invalid("at least one search field is required")
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var conds []string
	var args []interface{}
	for _, f := range fields {
		switch f {
		case SearchTitle:
			conds = append(conds, "LOWER(f.name) LIKE ?")
			args = append(args, pattern)
		case SearchDirector:
			conds = append(conds, `f.id IN (
				SELECT sfd.film_id FROM film_directors sfd
				JOIN directors sd ON sd.id = sfd.director_id
				WHERE LOWER(sd.name) LIKE ?)`)
			args = append(args, pattern)
		}
	}

	var ids []int64
	err := r.rankedByLikes(ctx).
		Where("("+strings.Join(conds, " OR ")+")", args...).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	return r.FindByIDs(ctx, ids)
}

func (r *repository) FindCommon(ctx context.Context, userID, friendID int64) ([]entity.Film, error) {
	likedBy := func(id int64) *gorm.DB {
		return r.db.Model(&entity.FilmLike{}).Select("film_id").Where("user_id = ?", id)
	}

	var ids []int64
	err := r.rankedByLikes(ctx).
		Where("f.id IN (?)", likedBy(userID)).
		Where("f.id IN (?)", likedBy(friendID)).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("common films: %w", err)
	}
	return r.FindByIDs(ctx, ids)
}
