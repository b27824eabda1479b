package film

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, film *entity.Film, genreIDs, directorIDs []int64) error
	Update(ctx context.Context, film *entity.Film, genreIDs, directorIDs []int64) error
	FindByID(ctx context.Context, id int64) (*entity.Film, error)
	// FindByIDs keeps the order of ids and skips ids with no row.
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Film, error)
	FindAll(ctx context.Context) ([]entity.Film, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error

	AddLike(ctx context.Context, filmID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, filmID, userID int64) (bool, error)

	FindPopular(ctx context.Context, count int, genreID *int64, year *int) ([]entity.Film, error)
	FindByDirectorSorted(ctx context.Context, directorID int64, sortBy string) ([]entity.Film, error)
	Search(ctx context.Context, query string, fields []SearchField) ([]entity.Film, error)
	FindCommon(ctx context.Context, userID, friendID int64) ([]entity.Film, error)
}

type repository struct {
	db     *gorm.DB
	loader AssociationLoader
}

func NewRepository(db *gorm.DB, loader AssociationLoader) Repository {
	return &repository{db: db, loader: loader}
}

func (r *repository) Create(ctx context.Context, film *entity.Film, genreIDs, directorIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(film).Error; err != nil {
			return err
		}
		return replaceLinks(tx, film.ID, genreIDs, directorIDs)
	})
}

// Update replaces every column and both link sets; nothing is merged.
func (r *repository) Update(ctx context.Context, film *entity.Film, genreIDs, directorIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Film{}).
			Where("id = ?", film.ID).
			Updates(map[string]interface{}{
				"name":         film.Name,
				"description":  film.Description,
				"release_date": film.ReleaseDate,
				"duration":     film.Duration,
				"mpa_id":       film.MpaID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("film", film.ID)
		}

		if err := tx.Where("film_id = ?", film.ID).Delete(&entity.FilmGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", film.ID).Delete(&entity.FilmDirector{}).Error; err != nil {
			return err
		}
		return replaceLinks(tx, film.ID, genreIDs, directorIDs)
	})
}

func replaceLinks(tx *gorm.DB, filmID int64, genreIDs, directorIDs []int64) error {
	if len(genreIDs) > 0 {
		links := make([]entity.FilmGenre, 0, len(genreIDs))
		for _, id := range genreIDs {
			links = append(links, entity.FilmGenre{FilmID: filmID, GenreID: id})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}
	if len(directorIDs) > 0 {
		links := make([]entity.FilmDirector, 0, len(directorIDs))
		for _, id := range directorIDs {
			links = append(links, entity.FilmDirector{FilmID: filmID, DirectorID: id})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	films, err := r.FindByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, apperror.NotFound("film", id)
	}
	return &films[0], nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Film, error) {
	if len(ids) == 0 {
		return []entity.Film{}, nil
	}

	var rows []entity.Film
	if err := r.db.WithContext(ctx).
		Preload("Mpa").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// Reorder films to match the requested order
	byID := make(map[int64]entity.Film, len(rows))
	for _, f := range rows {
		byID[f.ID] = f
	}
	films := make([]entity.Film, 0, len(rows))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			films = append(films, f)
		}
	}

	if err := r.attach(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *repository) FindAll(ctx context.Context) ([]entity.Film, error) {
	var films []entity.Film
	if err := r.db.WithContext(ctx).Preload("Mpa").Order("id").Find(&films).Error; err != nil {
		return nil, err
	}
	if err := r.attach(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Film{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Delete drops the film with its links, likes and reviews in one transaction.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Film{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperror.NotFound("film", id)
		}

		if err := tx.Where("film_id = ?", id).Delete(&entity.FilmGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&entity.FilmDirector{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&entity.FilmLike{}).Error; err != nil {
			return err
		}

		reviews := tx.Model(&entity.Review{}).Select("id").Where("film_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&entity.ReviewReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&entity.Review{}).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.Film{}, id).Error
	})
}

func (r *repository) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.FilmLike{FilmID: filmID, UserID: userID})
	return result.RowsAffected > 0, result.Error
}

func (r *repository) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&entity.FilmLike{})
	return result.RowsAffected > 0, result.Error
}

// attach composes genres, directors and likes onto films in three queries.
func (r *repository) attach(ctx context.Context, films []entity.Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}

	genres, err := r.loader.LoadGenres(ctx, ids)
	if err != nil {
		return err
	}
	directors, err := r.loader.LoadDirectors(ctx, ids)
	if err != nil {
		return err
	}
	likes, err := r.loader.LoadLikes(ctx, ids)
	if err != nil {
		return err
	}

	for i := range films {
		id := films[i].ID
		films[i].Genres = genres[id]
		films[i].Directors = directors[id]
		films[i].Likes = likes[id]
	}
	return nil
}
