package film_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"anoa.com/filmorate/internal/entity"
	film "anoa.com/filmorate/internal/modules/film/repository"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/apperror"
)

func filmIDs(films []entity.Film) []int64 {
	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func TestLoadGenresOrderedAndBatchIndependent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	loader := film.NewAssociationLoader(db)

	f1 := testutil.CreateFilm(t, db, "Alpha", testutil.Date(2000, time.May, 1), 4, 1, 2)
	f2 := testutil.CreateFilm(t, db, "Beta", testutil.Date(2001, time.May, 1), 6)
	f3 := testutil.CreateFilm(t, db, "Gamma", testutil.Date(2002, time.May, 1))

	batch, err := loader.LoadGenres(ctx, []int64{f3.ID, f1.ID, f2.ID})
	if err != nil {
		t.Fatalf("LoadGenres: %v", err)
	}

	var got []int64
	for _, g := range batch[f1.ID] {
		got = append(got, g.ID)
	}
	if !reflect.DeepEqual(got, []int64{1, 2, 4}) {
		t.Errorf("genres of f1 = %v, want [1 2 4]", got)
	}
	if g, ok := batch[f3.ID]; !ok || g == nil || len(g) != 0 {
		t.Errorf("film without genres should map to an empty slice, got %#v (present=%v)", g, ok)
	}

	for _, f := range []entity.Film{f1, f2, f3} {
		solo, err := loader.LoadGenres(ctx, []int64{f.ID})
		if err != nil {
			t.Fatalf("LoadGenres(%d): %v", f.ID, err)
		}
		if !reflect.DeepEqual(solo[f.ID], batch[f.ID]) {
			t.Errorf("film %d: solo %v != batch %v", f.ID, solo[f.ID], batch[f.ID])
		}
	}
}

func TestLoadLikesAndDirectors(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	loader := film.NewAssociationLoader(db)

	u1 := testutil.CreateUser(t, db, "u1")
	u2 := testutil.CreateUser(t, db, "u2")
	f1 := testutil.CreateFilm(t, db, "Alpha", testutil.Date(2000, time.May, 1))
	f2 := testutil.CreateFilm(t, db, "Beta", testutil.Date(2001, time.May, 1))
	testutil.Like(t, db, f1.ID, u2.ID)
	testutil.Like(t, db, f1.ID, u1.ID)
	d := testutil.CreateDirector(t, db, "Nolan", f1.ID)

	likes, err := loader.LoadLikes(ctx, []int64{f1.ID, f2.ID})
	if err != nil {
		t.Fatalf("LoadLikes: %v", err)
	}
	if !reflect.DeepEqual(likes[f1.ID], []int64{u1.ID, u2.ID}) {
		t.Errorf("likes of f1 = %v", likes[f1.ID])
	}
	if len(likes[f2.ID]) != 0 || likes[f2.ID] == nil {
		t.Errorf("likes of f2 = %#v, want empty slice", likes[f2.ID])
	}

	directors, err := loader.LoadDirectors(ctx, []int64{f1.ID, f2.ID})
	if err != nil {
		t.Fatalf("LoadDirectors: %v", err)
	}
	if len(directors[f1.ID]) != 1 || directors[f1.ID][0].ID != d.ID {
		t.Errorf("directors of f1 = %v", directors[f1.ID])
	}
	if directors[f2.ID] == nil {
		t.Error("f2 should have an empty director slice")
	}
}

func TestCreateAndFindByID(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))
	d := testutil.CreateDirector(t, db, "Villeneuve")

	f := &entity.Film{
		Name:        "Dune",
		Description: "Spice",
		ReleaseDate: testutil.Date(2021, time.October, 22),
		Duration:    155,
		MpaID:       3,
	}
	if err := repo.Create(ctx, f, []int64{6, 2, 6}, []int64{d.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := repo.FindByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Mpa.Name != "PG-13" {
		t.Errorf("mpa = %+v", got.Mpa)
	}
	if len(got.Genres) != 2 || got.Genres[0].ID != 2 || got.Genres[1].ID != 6 {
		t.Errorf("genres = %+v", got.Genres)
	}
	if len(got.Directors) != 1 || got.Directors[0].Name != "Villeneuve" {
		t.Errorf("directors = %+v", got.Directors)
	}

	got.Name = "Dune: Part One"
	if err := repo.Update(ctx, got, nil, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.FindByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if updated.Name != "Dune: Part One" || len(updated.Genres) != 0 || len(updated.Directors) != 0 {
		t.Errorf("update should replace the full record, got %+v", updated)
	}
}

func TestFindByIDMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	_, err := repo.FindByID(context.Background(), 99)
	var nf *apperror.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "film" || nf.ID != 99 {
		t.Fatalf("expected film 99 not found, got %v", err)
	}

	err = repo.Update(context.Background(), &entity.Film{ID: 99, Name: "x", MpaID: 1}, nil, nil)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update of missing film: got %v", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	u := testutil.CreateUser(t, db, "u")
	f := testutil.CreateFilm(t, db, "Doomed", testutil.Date(1999, time.March, 31), 1, 4)
	keep := testutil.CreateFilm(t, db, "Kept", testutil.Date(1999, time.March, 31), 1)
	testutil.CreateDirector(t, db, "Someone", f.ID)
	testutil.Like(t, db, f.ID, u.ID)
	r := testutil.CreateReview(t, db, f.ID, u.ID, "fine")
	if err := db.Create(&entity.ReviewReaction{ReviewID: r.ID, UserID: u.ID, IsUseful: true}).Error; err != nil {
		t.Fatalf("seed reaction: %v", err)
	}

	if err := repo.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	tables := []struct {
		model interface{}
		where string
		arg   int64
	}{
		{&entity.FilmGenre{}, "film_id = ?", f.ID},
		{&entity.FilmDirector{}, "film_id = ?", f.ID},
		{&entity.FilmLike{}, "film_id = ?", f.ID},
		{&entity.Review{}, "film_id = ?", f.ID},
		{&entity.ReviewReaction{}, "review_id = ?", r.ID},
	}
	for _, tt := range tables {
		var n int64
		if err := db.Model(tt.model).Where(tt.where, tt.arg).Count(&n).Error; err != nil {
			t.Fatalf("count %T: %v", tt.model, err)
		}
		if n != 0 {
			t.Errorf("%T still has %d rows for deleted film", tt.model, n)
		}
	}

	if _, err := repo.FindByID(ctx, f.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByID after delete: %v", err)
	}
	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if !reflect.DeepEqual(filmIDs(all), []int64{keep.ID}) {
		t.Errorf("FindAll = %v, want only %d", filmIDs(all), keep.ID)
	}

	if err := repo.Delete(ctx, f.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLikesAreASet(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))
	u := testutil.CreateUser(t, db, "u")
	f := testutil.CreateFilm(t, db, "F", testutil.Date(2010, time.January, 1))

	for i, want := range []bool{true, false} {
		added, err := repo.AddLike(ctx, f.ID, u.ID)
		if err != nil {
			t.Fatalf("AddLike #%d: %v", i, err)
		}
		if added != want {
			t.Errorf("AddLike #%d added = %v, want %v", i, added, want)
		}
	}

	got, _ := repo.FindByID(ctx, f.ID)
	if len(got.Likes) != 1 {
		t.Errorf("likes = %v", got.Likes)
	}

	removed, err := repo.RemoveLike(ctx, f.ID, u.ID)
	if err != nil || !removed {
		t.Errorf("RemoveLike = %v, %v", removed, err)
	}
	removed, err = repo.RemoveLike(ctx, f.ID, u.ID)
	if err != nil || removed {
		t.Errorf("second RemoveLike = %v, %v", removed, err)
	}
}
