package recommendation

import (
	"context"
	"fmt"

	"anoa.com/filmorate/internal/entity"
	filmRepo "anoa.com/filmorate/internal/modules/film/repository"
	recRepo "anoa.com/filmorate/internal/modules/recommendation/repository"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/logger"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64) ([]entity.Film, error)
}

type recommendationService struct {
	repo     recRepo.RecommendationRepository
	userRepo userRepo.UserRepository
	filmRepo filmRepo.Repository
}

func NewRecommendationService(repo recRepo.RecommendationRepository, userRepo userRepo.UserRepository, filmRepo filmRepo.Repository) RecommendationService {
	return &recommendationService{repo: repo, userRepo: userRepo, filmRepo: filmRepo}
}

// GetRecommendations suggests the films liked by the single closest user that
// userID has not liked yet.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID int64) ([]entity.Film, error) {
	ok, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("user", userID)
	}

	neighborID, found, err := s.repo.NearestNeighbor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find neighbor for user %d: %w", userID, err)
	}
	if !found {
		return []entity.Film{}, nil
	}

	ids, err := s.repo.UnseenLikes(ctx, userID, neighborID)
	if err != nil {
		return nil, fmt.Errorf("neighbor likes: %w", err)
	}
	logger.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int64("neighbor_id", neighborID).
		Int("candidates", len(ids)).
		Msg("recommendations computed")

	return s.filmRepo.FindByIDs(ctx, ids)
}
