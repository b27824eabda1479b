package database

import (
	"context"
	"embed"
	"fmt"

	"anoa.com/filmorate/internal/entity"
	"anoa.com/filmorate/pkg/logger"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate creates the schema from the entity definitions and then applies the
// versioned SQL migrations that load reference data.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&entity.MpaRating{},
		&entity.Genre{},
		&entity.Director{},
		&entity.User{},
		&entity.Friendship{},
		&entity.Film{},
		&entity.FilmGenre{},
		&entity.FilmDirector{},
		&entity.FilmLike{},
		&entity.Review{},
		&entity.ReviewReaction{},
		&entity.FeedEvent{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return RunMigrations(ctx, db)
}

func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := goose.SetDialect(Dialect(db)); err != nil {
		return err
	}

	goose.SetLogger(gooseLogger{})
	goose.SetBaseFS(migrationsFS)
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Fatal().Msgf(format, v...)
}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Debug().Str("component", "goose").Msgf(format, v...)
}
