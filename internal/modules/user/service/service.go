package user

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/modules/user/dto"
	"anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/pkg/apperror"
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id int64) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]dto.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) error
}

// FilmReindexer refreshes search documents of films whose like counts
// changed when a user went away.
type FilmReindexer interface {
	ReindexFilms(ctx context.Context, filmIDs []int64)
}

type userService struct {
	repo    repository.UserRepository
	reindex FilmReindexer
}

func NewUserService(repo repository.UserRepository, reindex FilmReindexer) UserService {
	return &userService{repo: repo, reindex: reindex}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	user := toEntity(req)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	res := dto.NewUserResponse(user)
	return &res, nil
}

func (s *userService) UpdateUser(ctx context.Context, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	exists, err := s.repo.ExistsByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("user", req.ID)
	}
	if err := s.ensureEmailFree(ctx, req.Email, req.ID); err != nil {
		return nil, err
	}

	user := toEntity(req.CreateUserRequest)
	user.ID = req.ID
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", req.ID, err)
	}

	res := dto.NewUserResponse(user)
	return &res, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewUserResponse(user)
	return &res, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(users), nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	liked, err := s.repo.LikedFilmIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("load liked films: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.reindex != nil {
		s.reindex.ReindexFilms(ctx, liked)
	}
	return nil
}

func (s *userService) ensureEmailFree(ctx context.Context, email string, exceptID int64) error {
	taken, err := s.repo.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("email %s is already registered", email)
	}
	return nil
}

// toEntity applies the display-name default: a blank name becomes the login.
func toEntity(req dto.CreateUserRequest) *entity.User {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.Login
	}
	return &entity.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     name,
		Birthday: req.Birthday.Time(),
	}
}
