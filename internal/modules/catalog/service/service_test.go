package catalog_test

import (
	"context"
	"errors"
	"testing"

	"anoa.com/filmorate/internal/modules/catalog/repository"
	catalog "anoa.com/filmorate/internal/modules/catalog/service"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/apperror"
)

func TestCatalogReads(t *testing.T) {
	db := testutil.NewDB(t)
	svc := catalog.NewCatalogService(repository.NewGenreRepository(db), repository.NewMpaRepository(db))
	ctx := context.Background()

	genres, err := svc.GetAllGenres(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(genres) != 6 || genres[0].Name != "Comedy" || genres[5].Name != "Action" {
		t.Errorf("genres = %+v", genres)
	}

	mpa, err := svc.GetMpa(ctx, 5)
	if err != nil || mpa.Name != "NC-17" {
		t.Errorf("GetMpa(5) = %+v, %v", mpa, err)
	}

	if _, err := svc.GetGenre(ctx, 7); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetGenre(7): %v", err)
	}
	if _, err := svc.GetMpa(ctx, 0); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetMpa(0): %v", err)
	}
}

func TestMissingGenreIDs(t *testing.T) {
	db := testutil.NewDB(t)
	genres := repository.NewGenreRepository(db)

	missing, err := genres.MissingIDs(context.Background(), []int64{1, 9, 3, 12})
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 2 || missing[0] != 9 || missing[1] != 12 {
		t.Errorf("missing = %v, want [9 12]", missing)
	}
}
