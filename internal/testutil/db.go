// Package testutil provides a migrated sqlite store and row builders for
// package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/database"
	"gorm.io/gorm"
)

// NewDB opens a fresh migrated sqlite database under t.TempDir().
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "filmorate.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func CreateUser(t *testing.T, db *gorm.DB, login string) entity.User {
	t.Helper()
	u := entity.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: Date(1990, time.January, 1),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", login, err)
	}
	return u
}

func CreateFilm(t *testing.T, db *gorm.DB, name string, released time.Time, genreIDs ...int64) entity.Film {
	t.Helper()
	f := entity.Film{
		Name:        name,
		Description: name + " description",
		ReleaseDate: released,
		Duration:    100,
		MpaID:       1,
	}
	if err := db.Omit("Mpa").Create(&f).Error; err != nil {
		t.Fatalf("create film %s: %v", name, err)
	}
	for _, gid := range genreIDs {
		if err := db.Create(&entity.FilmGenre{FilmID: f.ID, GenreID: gid}).Error; err != nil {
			t.Fatalf("link genre %d: %v", gid, err)
		}
	}
	return f
}

func CreateDirector(t *testing.T, db *gorm.DB, name string, filmIDs ...int64) entity.Director {
	t.Helper()
	d := entity.Director{Name: name}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("create director %s: %v", name, err)
	}
	for _, fid := range filmIDs {
		if err := db.Create(&entity.FilmDirector{FilmID: fid, DirectorID: d.ID}).Error; err != nil {
			t.Fatalf("link director to film %d: %v", fid, err)
		}
	}
	return d
}

func Like(t *testing.T, db *gorm.DB, filmID, userID int64) {
	t.Helper()
	if err := db.Create(&entity.FilmLike{FilmID: filmID, UserID: userID}).Error; err != nil {
		t.Fatalf("like film %d by %d: %v", filmID, userID, err)
	}
}

func CreateReview(t *testing.T, db *gorm.DB, filmID, userID int64, content string) entity.Review {
	t.Helper()
	r := entity.Review{FilmID: filmID, UserID: userID, Content: content, IsPositive: true}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	return r
}
