package film_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	film "anoa.com/filmorate/internal/modules/film/repository"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/apperror"
)

func TestFindPopular(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	u1 := testutil.CreateUser(t, db, "u1")
	u2 := testutil.CreateUser(t, db, "u2")
	a := testutil.CreateFilm(t, db, "A", testutil.Date(2000, time.June, 1), 1)
	b := testutil.CreateFilm(t, db, "B", testutil.Date(2001, time.June, 1), 2)
	c := testutil.CreateFilm(t, db, "C", testutil.Date(2000, time.December, 31), 1)
	testutil.Like(t, db, b.ID, u1.ID)
	testutil.Like(t, db, b.ID, u2.ID)
	testutil.Like(t, db, c.ID, u1.ID)

	comedy := int64(1)
	y2000 := 2000

	tests := []struct {
		name    string
		count   int
		genreID *int64
		year    *int
		want    []int64
	}{
		{"all", 10, nil, nil, []int64{b.ID, c.ID, a.ID}},
		{"limited", 2, nil, nil, []int64{b.ID, c.ID}},
		{"by genre", 10, &comedy, nil, []int64{c.ID, a.ID}},
		{"by year", 10, nil, &y2000, []int64{c.ID, a.ID}},
		{"genre and year", 1, &comedy, &y2000, []int64{c.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindPopular(ctx, tt.count, tt.genreID, tt.year)
			if err != nil {
				t.Fatalf("FindPopular: %v", err)
			}
			if !reflect.DeepEqual(filmIDs(got), tt.want) {
				t.Errorf("got %v, want %v", filmIDs(got), tt.want)
			}
		})
	}

	if _, err := repo.FindPopular(ctx, 0, nil, nil); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("count 0: got %v", err)
	}
}

func TestFindByDirectorSorted(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	u := testutil.CreateUser(t, db, "u")
	old := testutil.CreateFilm(t, db, "Old", testutil.Date(1980, time.January, 1))
	recent := testutil.CreateFilm(t, db, "Recent", testutil.Date(2020, time.January, 1))
	other := testutil.CreateFilm(t, db, "Other", testutil.Date(1990, time.January, 1))
	d := testutil.CreateDirector(t, db, "Scott", recent.ID, old.ID)
	testutil.CreateDirector(t, db, "Somebody", other.ID)
	testutil.Like(t, db, recent.ID, u.ID)

	tests := []struct {
		sortBy string
		want   []int64
	}{
		{film.SortByYear, []int64{old.ID, recent.ID}},
		{film.SortByLikes, []int64{recent.ID, old.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			got, err := repo.FindByDirectorSorted(ctx, d.ID, tt.sortBy)
			if err != nil {
				t.Fatalf("FindByDirectorSorted: %v", err)
			}
			if !reflect.DeepEqual(filmIDs(got), tt.want) {
				t.Errorf("got %v, want %v", filmIDs(got), tt.want)
			}
		})
	}
}

func TestFindByDirectorSortedRejectsKeyBeforeQuerying(t *testing.T) {
	db := testutil.NewDB(t)
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// Any statement against a closed pool fails with a storage error, so an
	// InvalidArgument result proves nothing was executed.
	if err := sqlDB.Close(); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"bogus", "", "LIKES", "year "} {
		_, err := repo.FindByDirectorSorted(context.Background(), 1, key)
		if !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("sortBy %q: got %v, want invalid input", key, err)
		}
	}
}

func TestSearch(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	u := testutil.CreateUser(t, db, "u")
	crew := testutil.CreateFilm(t, db, "The Crew", testutil.Date(2001, time.January, 1))
	other := testutil.CreateFilm(t, db, "Unrelated", testutil.Date(2002, time.January, 1))
	screw := testutil.CreateFilm(t, db, "Screwball", testutil.Date(2003, time.January, 1))
	testutil.CreateDirector(t, db, "Andrew Crewson", other.ID)
	testutil.Like(t, db, screw.ID, u.ID)

	tests := []struct {
		name string
		by   string
		want []int64
	}{
		{"title", "title", []int64{screw.ID, crew.ID}},
		{"director", "director", []int64{other.ID}},
		{"both", "director,title", []int64{screw.ID, crew.ID, other.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := film.ParseSearchFields(tt.by)
			if err != nil {
				t.Fatalf("ParseSearchFields: %v", err)
			}
			got, err := repo.Search(ctx, "CREW", fields)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if !reflect.DeepEqual(filmIDs(got), tt.want) {
				t.Errorf("got %v, want %v", filmIDs(got), tt.want)
			}
		})
	}

	if _, err := film.ParseSearchFields("title,year"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("unknown field: got %v", err)
	}
}

func TestFindCommon(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := film.NewRepository(db, film.NewAssociationLoader(db))

	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	c := testutil.CreateUser(t, db, "c")
	f1 := testutil.CreateFilm(t, db, "F1", testutil.Date(2001, time.January, 1))
	f2 := testutil.CreateFilm(t, db, "F2", testutil.Date(2002, time.January, 1))
	f3 := testutil.CreateFilm(t, db, "F3", testutil.Date(2003, time.January, 1))
	testutil.Like(t, db, f1.ID, a.ID)
	testutil.Like(t, db, f1.ID, b.ID)
	testutil.Like(t, db, f2.ID, a.ID)
	testutil.Like(t, db, f2.ID, b.ID)
	testutil.Like(t, db, f2.ID, c.ID)
	testutil.Like(t, db, f3.ID, a.ID)

	got, err := repo.FindCommon(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("FindCommon: %v", err)
	}
	if !reflect.DeepEqual(filmIDs(got), []int64{f2.ID, f1.ID}) {
		t.Errorf("got %v, want [%d %d]", filmIDs(got), f2.ID, f1.ID)
	}
}
