package service

import (
	"context"
	"fmt"
	"time"

	"anoa.com/filmorate/internal/entity"
	feedRepo "anoa.com/filmorate/internal/modules/feed/repository"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type FeedService interface {
	AddEvent(ctx context.Context, userID, entityID int64, op entity.Operation, eventType entity.EventType) error
	GetFeed(ctx context.Context, userID int64) ([]entity.FeedEvent, error)
	// EnsureUser returns NotFound when the user does not exist.
	EnsureUser(ctx context.Context, userID int64) error
}

type feedService struct {
	repo        feedRepo.FeedRepository
	userRepo    userRepo.UserRepository
	redisClient *redis.Client
	now         func() time.Time
}

func NewFeedService(repo feedRepo.FeedRepository, userRepo userRepo.UserRepository, redisClient *redis.Client) FeedService {
	return &feedService{
		repo:        repo,
		userRepo:    userRepo,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// Channel is the redis pub/sub channel carrying a user's new feed events.
func Channel(userID int64) string {
	return fmt.Sprintf("user_feed:%d", userID)
}

func (s *feedService) AddEvent(ctx context.Context, userID, entityID int64, op entity.Operation, eventType entity.EventType) error {
	event := &entity.FeedEvent{
		UserID:    userID,
		EntityID:  entityID,
		EventType: eventType,
		Operation: op,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("append feed event: %w", err)
	}

	// Publish to Redis if Redis is available
	if s.redisClient != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			err = s.redisClient.Publish(ctx, Channel(userID), payload).Err()
		}
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("feed publish failed")
		}
	}

	return nil
}

func (s *feedService) GetFeed(ctx context.Context, userID int64) ([]entity.FeedEvent, error) {
	if err := s.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, userID)
}

func (s *feedService) EnsureUser(ctx context.Context, userID int64) error {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound("user", userID)
	}
	return nil
}
