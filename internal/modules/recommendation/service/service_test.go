package recommendation_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"anoa.com/filmorate/internal/entity"
	filmRepo "anoa.com/filmorate/internal/modules/film/repository"
	recRepo "anoa.com/filmorate/internal/modules/recommendation/repository"
	recommendation "anoa.com/filmorate/internal/modules/recommendation/service"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/apperror"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) recommendation.RecommendationService {
	films := filmRepo.NewRepository(db, filmRepo.NewAssociationLoader(db))
	return recommendation.NewRecommendationService(recRepo.NewRecommendationRepository(db), userRepo.NewUserRepository(db), films)
}

func filmIDs(films []entity.Film) []int64 {
	out := []int64{}
	for _, f := range films {
		out = append(out, f.ID)
	}
	return out
}

func TestRecommendsNeighborsUnseenLikes(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	f1 := testutil.CreateFilm(t, db, "F1", testutil.Date(2001, time.January, 1), 2, 1)
	f2 := testutil.CreateFilm(t, db, "F2", testutil.Date(2002, time.January, 1))
	f3 := testutil.CreateFilm(t, db, "F3", testutil.Date(2003, time.January, 1), 3)
	testutil.Like(t, db, f1.ID, a.ID)
	testutil.Like(t, db, f1.ID, b.ID)
	testutil.Like(t, db, f2.ID, a.ID)
	testutil.Like(t, db, f3.ID, b.ID)

	got, err := svc.GetRecommendations(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	if !reflect.DeepEqual(filmIDs(got), []int64{f3.ID}) {
		t.Fatalf("got %v, want [%d]", filmIDs(got), f3.ID)
	}
	if len(got[0].Genres) != 1 || got[0].Genres[0].ID != 3 {
		t.Errorf("genres not attached: %+v", got[0].Genres)
	}
	if !reflect.DeepEqual(got[0].Likes, []int64{b.ID}) {
		t.Errorf("likes = %v", got[0].Likes)
	}
}

func TestNoNeighborYieldsEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	f1 := testutil.CreateFilm(t, db, "F1", testutil.Date(2001, time.January, 1))
	f2 := testutil.CreateFilm(t, db, "F2", testutil.Date(2002, time.January, 1))
	testutil.Like(t, db, f1.ID, a.ID)
	testutil.Like(t, db, f2.ID, b.ID)

	got, err := svc.GetRecommendations(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}

func TestNeighborSelection(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "a")
	low := testutil.CreateUser(t, db, "low")
	high := testutil.CreateUser(t, db, "high")
	best := testutil.CreateUser(t, db, "best")

	var films []entity.Film
	for i := 0; i < 6; i++ {
		films = append(films, testutil.CreateFilm(t, db, "F", testutil.Date(2000+i, time.January, 1)))
	}
	testutil.Like(t, db, films[0].ID, a.ID)
	testutil.Like(t, db, films[1].ID, a.ID)
	// low and high tie on one shared like; low has the smaller id.
	testutil.Like(t, db, films[0].ID, low.ID)
	testutil.Like(t, db, films[2].ID, low.ID)
	testutil.Like(t, db, films[0].ID, high.ID)
	testutil.Like(t, db, films[3].ID, high.ID)

	got, err := svc.GetRecommendations(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(filmIDs(got), []int64{films[2].ID}) {
		t.Errorf("tie should go to the lowest id neighbor: got %v", filmIDs(got))
	}

	// best shares two likes and wins outright.
	testutil.Like(t, db, films[0].ID, best.ID)
	testutil.Like(t, db, films[1].ID, best.ID)
	testutil.Like(t, db, films[4].ID, best.ID)
	testutil.Like(t, db, films[5].ID, best.ID)

	got, err = svc.GetRecommendations(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(filmIDs(got), []int64{films[4].ID, films[5].ID}) {
		t.Errorf("got %v, want films 5 and 6", filmIDs(got))
	}
}

func TestUnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	if _, err := newService(db).GetRecommendations(context.Background(), 5); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}
