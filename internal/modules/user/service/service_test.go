package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/modules/user/dto"
	"anoa.com/filmorate/internal/modules/user/repository"
	user "anoa.com/filmorate/internal/modules/user/service"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/apperror"
	commonDto "anoa.com/filmorate/pkg/dto"
)

func createRequest(email, login, name string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Email:    email,
		Login:    login,
		Name:     name,
		Birthday: commonDto.NewDate(testutil.Date(1991, time.February, 3)),
	}
}

func TestCreateUserDefaultsNameToLogin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := user.NewUserService(repository.NewUserRepository(db), nil)
	ctx := context.Background()

	tests := []struct {
		name, email, login, given, want string
	}{
		{"blank name", "a@example.com", "alice", "", "alice"},
		{"whitespace name", "b@example.com", "bob", "   ", "bob"},
		{"explicit name", "c@example.com", "carol", "Carol C.", "Carol C."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.CreateUser(ctx, createRequest(tt.email, tt.login, tt.given))
			if err != nil {
				t.Fatalf("CreateUser: %v", err)
			}
			if res.ID == 0 {
				t.Error("expected generated id")
			}
			if res.Name != tt.want {
				t.Errorf("name = %q, want %q", res.Name, tt.want)
			}
		})
	}
}

func TestEmailConflict(t *testing.T) {
	db := testutil.NewDB(t)
	svc := user.NewUserService(repository.NewUserRepository(db), nil)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, createRequest("dup@example.com", "first", ""))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateUser(ctx, createRequest("DUP@example.com", "second", "")); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate create: got %v, want conflict", err)
	}

	// Keeping one's own email on update is fine.
	update := dto.UpdateUserRequest{ID: first.ID, CreateUserRequest: createRequest("dup@example.com", "renamed", "")}
	res, err := svc.UpdateUser(ctx, update)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if res.Login != "renamed" || res.Name != "renamed" {
		t.Errorf("update result = %+v", res)
	}

	update.ID = 999
	if _, err := svc.UpdateUser(ctx, update); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("update of unknown user: %v", err)
	}
}

type recordingReindexer struct {
	calls [][]int64
}

func (r *recordingReindexer) ReindexFilms(_ context.Context, ids []int64) {
	r.calls = append(r.calls, ids)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testutil.NewDB(t)
	reindex := &recordingReindexer{}
	svc := user.NewUserService(repository.NewUserRepository(db), reindex)
	ctx := context.Background()

	gone := testutil.CreateUser(t, db, "gone")
	stays := testutil.CreateUser(t, db, "stays")
	f := testutil.CreateFilm(t, db, "F", testutil.Date(2000, time.January, 1))
	testutil.Like(t, db, f.ID, gone.ID)

	review := testutil.CreateReview(t, db, f.ID, stays.ID, "kept review")
	if err := db.Create(&entity.ReviewReaction{ReviewID: review.ID, UserID: gone.ID, IsUseful: true}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&entity.Review{}).Where("id = ?", review.ID).Update("useful", 1).Error; err != nil {
		t.Fatal(err)
	}
	testutil.CreateReview(t, db, f.ID, gone.ID, "authored by the deleted user")

	for _, edge := range []entity.Friendship{{UserID: gone.ID, FriendID: stays.ID}, {UserID: stays.ID, FriendID: gone.ID}} {
		if err := db.Create(&edge).Error; err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Create(&entity.FeedEvent{UserID: gone.ID, EntityID: f.ID, EventType: entity.EventLike, Operation: entity.OperationAdd, Timestamp: 1}).Error; err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteUser(ctx, gone.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	counts := []struct {
		name  string
		model interface{}
		where string
	}{
		{"likes", &entity.FilmLike{}, "user_id = ?"},
		{"friendships", &entity.Friendship{}, "user_id = ? OR friend_id = ?"},
		{"feed", &entity.FeedEvent{}, "user_id = ?"},
		{"reviews", &entity.Review{}, "user_id = ?"},
		{"reactions", &entity.ReviewReaction{}, "user_id = ?"},
	}
	for _, c := range counts {
		var n int64
		args := []interface{}{gone.ID}
		if c.name == "friendships" {
			args = append(args, gone.ID)
		}
		if err := db.Model(c.model).Where(c.where, args...).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", c.name, err)
		}
		if n != 0 {
			t.Errorf("%s: %d rows still reference the deleted user", c.name, n)
		}
	}

	var kept entity.Review
	if err := db.First(&kept, review.ID).Error; err != nil {
		t.Fatalf("surviving review: %v", err)
	}
	if kept.Useful != 0 {
		t.Errorf("useful = %d, want 0 after the voter was removed", kept.Useful)
	}

	if _, err := svc.GetUser(ctx, gone.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUser after delete: %v", err)
	}
	if err := svc.DeleteUser(ctx, gone.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
	if !reflect.DeepEqual(reindex.calls, [][]int64{{f.ID}}) {
		t.Errorf("reindexed %v, want the liked film %d once", reindex.calls, f.ID)
	}
}
