package repository

import (
	"context"
	"errors"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// EmailTaken reports whether another user (id != exceptID) owns email.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	// LikedFilmIDs lists the films the user has liked.
	LikedFilmIDs(ctx context.Context, id int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("email %s is already registered", user.Email)
	}
	return err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":    user.Email,
			"login":    user.Login,
			"name":     user.Name,
			"birthday": user.Birthday,
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("email %s is already registered", user.Email)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.NotFound("user", id)
	}
	return &users[0], nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	users := []entity.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	users := []entity.User{}
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *userRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the user together with every row that references it. Votes
// the user cast are taken back out of the usefulness counters first.
func (r *userRepository) LikedFilmIDs(ctx context.Context, id int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&entity.FilmLike{}).
		Where("user_id = ?", id).
		Order("film_id").
		Pluck("film_id", &ids).Error
	return ids, err
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperror.NotFound("user", id)
		}

		if err := tx.Exec(`
			UPDATE reviews SET useful = useful - (
				SELECT COALESCE(SUM(CASE WHEN rr.is_useful THEN 1 ELSE -1 END), 0)
				FROM review_reactions rr
				WHERE rr.review_id = reviews.id AND rr.user_id = ?
			)
			WHERE id IN (SELECT review_id FROM review_reactions WHERE user_id = ?)`, id, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.ReviewReaction{}).Error; err != nil {
			return err
		}

		authored := tx.Model(&entity.Review{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("review_id IN (?)", authored).Delete(&entity.ReviewReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Review{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&entity.FilmLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&entity.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.FeedEvent{}).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.User{}, id).Error
	})
}
