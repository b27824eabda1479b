package friend

import (
	"context"
	"fmt"

	"anoa.com/filmorate/internal/entity"
	feed "anoa.com/filmorate/internal/modules/feed/service"
	friendRepo "anoa.com/filmorate/internal/modules/friend/repository"
	"anoa.com/filmorate/internal/modules/user/dto"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/pkg/apperror"
)

type FriendService interface {
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	GetFriends(ctx context.Context, userID int64) ([]dto.UserResponse, error)
	GetCommonFriends(ctx context.Context, userID, otherID int64) ([]dto.UserResponse, error)
}

type friendService struct {
	repo     friendRepo.FriendRepository
	userRepo userRepo.UserRepository
	feed     feed.FeedService
}

func NewFriendService(repo friendRepo.FriendRepository, userRepo userRepo.UserRepository, feed feed.FeedService) FriendService {
	return &friendService{repo: repo, userRepo: userRepo, feed: feed}
}

// AddFriend is idempotent: re-adding an existing edge changes nothing and
// writes no feed event.
func (s *friendService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return apperror.Invalid("user %d cannot befriend themselves", userID)
	}
	if err := s.ensureUsers(ctx, userID, friendID); err != nil {
		return err
	}

	added, err := s.repo.Add(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}
	if !added {
		return nil
	}
	return s.feed.AddEvent(ctx, userID, friendID, entity.OperationAdd, entity.EventFriend)
}

func (s *friendService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.ensureUsers(ctx, userID, friendID); err != nil {
		return err
	}

	removed, err := s.repo.Remove(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}
	if !removed {
		return nil
	}
	return s.feed.AddEvent(ctx, userID, friendID, entity.OperationRemove, entity.EventFriend)
}

func (s *friendService) GetFriends(ctx context.Context, userID int64) ([]dto.UserResponse, error) {
	if err := s.ensureUsers(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.repo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

func (s *friendService) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]dto.UserResponse, error) {
	if err := s.ensureUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}

	ids, err := s.repo.CommonFriendIDs(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

func (s *friendService) resolve(ctx context.Context, ids []int64) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(users), nil
}

func (s *friendService) ensureUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		exists, err := s.userRepo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound("user", id)
		}
	}
	return nil
}
