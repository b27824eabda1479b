package database_test

import (
	"errors"
	"path/filepath"
	"testing"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/internal/testutil"
	"anoa.com/filmorate/pkg/apperror"
	"anoa.com/filmorate/pkg/database"
	"gorm.io/gorm"
)

func TestDriverFailuresAreInternal(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()

	var users []entity.User
	err = db.Find(&users).Error
	if !errors.Is(err, apperror.ErrInternal) {
		t.Fatalf("query on closed db = %v, want ErrInternal", err)
	}
	if got := apperror.MapErrorToStatus(err); got != 500 {
		t.Errorf("status = %d, want 500", got)
	}
}

func TestRecordNotFoundStaysUnwrapped(t *testing.T) {
	db := testutil.NewDB(t)

	var u entity.User
	err := db.First(&u, 404).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("First(404) = %v", err)
	}
	if errors.Is(err, apperror.ErrInternal) {
		t.Errorf("missing row must not be reported as internal: %v", err)
	}
}

func TestMissingIDsKeepsInputOrder(t *testing.T) {
	db := testutil.NewDB(t)

	got, err := database.MissingIDs(t.Context(), db, &entity.Genre{}, []int64{9, 2, 9, 7, 1})
	if err != nil {
		t.Fatalf("MissingIDs: %v", err)
	}
	want := []int64{9, 7}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("MissingIDs = %v, want %v", got, want)
	}
}
