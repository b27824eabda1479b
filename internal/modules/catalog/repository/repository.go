package repository

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/database"
	"gorm.io/gorm"
)

type GenreRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)
	FindAll(ctx context.Context) ([]entity.Genre, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// MissingIDs returns the ids from the input that have no genre row.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type MpaRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.MpaRating, error)
	FindAll(ctx context.Context) ([]entity.MpaRating, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	var genres []entity.Genre
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, apperror.NotFound("genre", id)
	}
	return &genres[0], nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]entity.Genre, error) {
	genres := []entity.Genre{}
	err := r.db.WithContext(ctx).Order("id").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Genre{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *genreRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return database.MissingIDs(ctx, r.db, &entity.Genre{}, ids)
}

type mpaRepository struct {
	db *gorm.DB
}

func NewMpaRepository(db *gorm.DB) MpaRepository {
	return &mpaRepository{db: db}
}

func (r *mpaRepository) FindByID(ctx context.Context, id int64) (*entity.MpaRating, error) {
	var ratings []entity.MpaRating
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&ratings).Error; err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, apperror.NotFound("mpa rating", id)
	}
	return &ratings[0], nil
}

func (r *mpaRepository) FindAll(ctx context.Context) ([]entity.MpaRating, error) {
	ratings := []entity.MpaRating{}
	err := r.db.WithContext(ctx).Order("id").Find(&ratings).Error
	return ratings, err
}

func (r *mpaRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.MpaRating{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
