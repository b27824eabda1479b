package database_test

import (
	"context"
	"testing"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/database"
)

func TestMigrateSeedsReferenceData(t *testing.T) {
	db := testutil.NewDB(t)

	var mpa []entity.MpaRating
	if err := db.Order("id").Find(&mpa).Error; err != nil {
		t.Fatalf("load mpa: %v", err)
	}
	wantMpa := []string{"G", "PG", "PG-13", "R", "NC-17"}
	if len(mpa) != len(wantMpa) {
		t.Fatalf("got %d mpa ratings, want %d", len(mpa), len(wantMpa))
	}
	for i, m := range mpa {
		if m.ID != int64(i+1) || m.Name != wantMpa[i] {
			t.Errorf("mpa[%d] = %+v", i, m)
		}
	}

	var genres int64
	if err := db.Model(&entity.Genre{}).Count(&genres).Error; err != nil {
		t.Fatalf("count genres: %v", err)
	}
	if genres != 6 {
		t.Errorf("got %d genres, want 6", genres)
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var genres int64
	db.Model(&entity.Genre{}).Count(&genres)
	if genres != 6 {
		t.Errorf("seeds duplicated: %d genres", genres)
	}
	if got := database.Dialect(db); got != "sqlite3" {
		t.Errorf("Dialect = %q", got)
	}
}
