package review

import (
	"context"
	"fmt"

	"anoa.com/filmorate/internal/entity"
	feed "anoa.com/filmorate/internal/modules/feed/service"
	filmRepo "anoa.com/filmorate/internal/modules/film/repository"
	reviewDto "anoa.com/filmorate/internal/modules/review/dto"
	reviewRepo "anoa.com/filmorate/internal/modules/review/repository"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/sanitize"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req reviewDto.CreateReviewRequest) (*entity.Review, error)
	UpdateReview(ctx context.Context, req reviewDto.UpdateReviewRequest) (*entity.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	GetReview(ctx context.Context, id int64) (*entity.Review, error)
	GetReviews(ctx context.Context, q reviewDto.ListReviewsQuery) ([]entity.Review, error)

	AddLike(ctx context.Context, reviewID, userID int64) (*entity.Review, error)
	AddDislike(ctx context.Context, reviewID, userID int64) (*entity.Review, error)
	RemoveReaction(ctx context.Context, reviewID, userID int64) (*entity.Review, error)
}

type reviewService struct {
	repo     reviewRepo.ReviewRepository
	userRepo userRepo.UserRepository
	filmRepo filmRepo.Repository
	feed     feed.FeedService
}

func NewReviewService(repo reviewRepo.ReviewRepository, userRepo userRepo.UserRepository, filmRepo filmRepo.Repository, feed feed.FeedService) ReviewService {
	return &reviewService{
		repo:     repo,
		userRepo: userRepo,
		filmRepo: filmRepo,
		feed:     feed,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req reviewDto.CreateReviewRequest) (*entity.Review, error) {
	content, err := cleanContent(req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	ok, err := s.filmRepo.ExistsByID(ctx, req.FilmID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("film", req.FilmID)
	}

	review := &entity.Review{
		FilmID:     req.FilmID,
		UserID:     req.UserID,
		Content:    content,
		IsPositive: *req.IsPositive,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.feed.AddEvent(ctx, review.UserID, review.ID, entity.OperationAdd, entity.EventReview); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview keeps author, film and usefulness; the feed event is credited
// to the author.
func (s *reviewService) UpdateReview(ctx context.Context, req reviewDto.UpdateReviewRequest) (*entity.Review, error) {
	content, err := cleanContent(req.Content)
	if err != nil {
		return nil, err
	}
	review, err := s.repo.FindByID(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	review.Content = content
	review.IsPositive = *req.IsPositive
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review %d: %w", review.ID, err)
	}

	if err := s.feed.AddEvent(ctx, review.UserID, review.ID, entity.OperationUpdate, entity.EventReview); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, review.ID)
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.feed.AddEvent(ctx, review.UserID, review.ID, entity.OperationRemove, entity.EventReview)
}

func (s *reviewService) GetReview(ctx context.Context, id int64) (*entity.Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *reviewService) GetReviews(ctx context.Context, q reviewDto.ListReviewsQuery) ([]entity.Review, error) {
	return s.repo.FindAll(ctx, q.FilmID, q.Count)
}

func (s *reviewService) AddLike(ctx context.Context, reviewID, userID int64) (*entity.Review, error) {
	return s.react(ctx, reviewID, userID, s.repo.AddLike)
}

func (s *reviewService) AddDislike(ctx context.Context, reviewID, userID int64) (*entity.Review, error) {
	return s.react(ctx, reviewID, userID, s.repo.AddDislike)
}

func (s *reviewService) RemoveReaction(ctx context.Context, reviewID, userID int64) (*entity.Review, error) {
	return s.react(ctx, reviewID, userID, s.repo.RemoveReaction)
}

func (s *reviewService) react(ctx context.Context, reviewID, userID int64, apply func(context.Context, int64, int64) (int, error)) (*entity.Review, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := apply(ctx, reviewID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, reviewID)
}

func (s *reviewService) ensureUser(ctx context.Context, id int64) error {
	ok, err := s.userRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("user", id)
	}
	return nil
}

func cleanContent(raw string) (string, error) {
	content := sanitize.Text(raw)
	if content == "" {
		return "", apperror.Invalid("review content must not be blank")
	}
	return content, nil
}
