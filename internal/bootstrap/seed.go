// Package bootstrap fills an empty development database with demo rows.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/logger"
	"gorm.io/gorm"
)

type demoFilm struct {
	name     string
	released time.Time
	duration int
	mpaID    int64
	genres   []int64
	director string
}

var demoUsers = []entity.User{
	{Email: "ann@filmorate.dev", Login: "ann", Name: "Ann", Birthday: day(1988, time.March, 14)},
	{Email: "ben@filmorate.dev", Login: "ben", Name: "Ben", Birthday: day(1992, time.July, 2)},
	{Email: "cat@filmorate.dev", Login: "cat", Name: "cat", Birthday: day(2001, time.November, 23)},
}

var demoFilms = []demoFilm{
	{"The Grand Budapest Hotel", day(2014, time.March, 7), 99, 4, []int64{1, 2}, "Wes Anderson"},
	{"Spirited Away", day(2001, time.July, 20), 125, 2, []int64{3}, "Hayao Miyazaki"},
	{"Heat", day(1995, time.December, 15), 170, 4, []int64{4, 6}, "Michael Mann"},
	{"Fantastic Mr. Fox", day(2009, time.November, 13), 87, 2, []int64{1, 3}, "Wes Anderson"},
}

// ann and ben share a like, so ann gets a recommendation out of the box.
var demoLikes = map[string][]string{
	"ann": {"The Grand Budapest Hotel", "Heat"},
	"ben": {"The Grand Budapest Hotel", "Fantastic Mr. Fox"},
	"cat": {"Spirited Away"},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedDemoData is a no-op once any user exists.
func SeedDemoData(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info().Msg("database already has users, skipping demo seed")
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make(map[string]int64, len(demoUsers))
		for _, u := range demoUsers {
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Login, err)
			}
			users[u.Login] = u.ID
		}

		directors := map[string]int64{}
		films := make(map[string]int64, len(demoFilms))
		for _, df := range demoFilms {
			f := entity.Film{
				Name:        df.name,
				ReleaseDate: df.released,
				Duration:    df.duration,
				MpaID:       df.mpaID,
			}
			if err := tx.Omit("Mpa").Create(&f).Error; err != nil {
				return fmt.Errorf("seed film %s: %w", df.name, err)
			}
			films[df.name] = f.ID

			for _, g := range df.genres {
				if err := tx.Create(&entity.FilmGenre{FilmID: f.ID, GenreID: g}).Error; err != nil {
					return err
				}
			}

			dirID, ok := directors[df.director]
			if !ok {
				d := entity.Director{Name: df.director}
				if err := tx.Create(&d).Error; err != nil {
					return fmt.Errorf("seed director %s: %w", df.director, err)
				}
				dirID = d.ID
				directors[df.director] = dirID
			}
			if err := tx.Create(&entity.FilmDirector{FilmID: f.ID, DirectorID: dirID}).Error; err != nil {
				return err
			}
		}

		for login, titles := range demoLikes {
			for _, title := range titles {
				if err := tx.Create(&entity.FilmLike{FilmID: films[title], UserID: users[login]}).Error; err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int("users", len(demoUsers)).
		Int("films", len(demoFilms)).
		Msg("demo data seeded")
	return nil
}
