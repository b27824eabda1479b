package repository

import (
	"context"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/database"
	"gorm.io/gorm"
)

type DirectorRepository interface {
	Create(ctx context.Context, director *entity.Director) error
	Update(ctx context.Context, director *entity.Director) error
	FindByID(ctx context.Context, id int64) (*entity.Director, error)
	FindAll(ctx context.Context) ([]entity.Director, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
	// FilmIDs lists the films linked to a director.
	FilmIDs(ctx context.Context, directorID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

type directorRepository struct {
	db *gorm.DB
}

func NewDirectorRepository(db *gorm.DB) DirectorRepository {
	return &directorRepository{db: db}
}

func (r *directorRepository) Create(ctx context.Context, director *entity.Director) error {
	return r.db.WithContext(ctx).Create(director).Error
}

func (r *directorRepository) Update(ctx context.Context, director *entity.Director) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Director{}).
		Where("id = ?", director.ID).
		Update("name", director.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("director", director.ID)
	}
	return nil
}

func (r *directorRepository) FindByID(ctx context.Context, id int64) (*entity.Director, error) {
	var directors []entity.Director
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&directors).Error; err != nil {
		return nil, err
	}
	if len(directors) == 0 {
		return nil, apperror.NotFound("director", id)
	}
	return &directors[0], nil
}

func (r *directorRepository) FindAll(ctx context.Context) ([]entity.Director, error) {
	directors := []entity.Director{}
	err := r.db.WithContext(ctx).Order("id").Find(&directors).Error
	return directors, err
}

func (r *directorRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Director{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *directorRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return database.MissingIDs(ctx, r.db, &entity.Director{}, ids)
}

func (r *directorRepository) FilmIDs(ctx context.Context, directorID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&entity.FilmDirector{}).
		Where("director_id = ?", directorID).
		Order("film_id").
		Pluck("film_id", &ids).Error
	return ids, err
}

func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("director_id = ?", id).Delete(&entity.FilmDirector{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Director{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("director", id)
		}
		return nil
	})
}
