package entity

import (
	"time"
)

// Film rows carry only scalar columns and the MPA reference. Genres,
// Directors and Likes are attached by the association loader.
type Film struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"size:200" json:"description"`
	ReleaseDate time.Time  `gorm:"type:date;not null" json:"releaseDate"`
	Duration    int        `gorm:"not null" json:"duration"`
	MpaID       int64      `gorm:"not null;index" json:"-"`
	Mpa         MpaRating  `gorm:"foreignKey:MpaID" json:"mpa"`
	Genres      []Genre    `gorm:"-" json:"genres"`
	Directors   []Director `gorm:"-" json:"directors"`
	Likes       []int64    `gorm:"-" json:"likes"`
}

type FilmGenre struct {
	FilmID  int64 `gorm:"primaryKey;autoIncrement:false"`
	GenreID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

type FilmDirector struct {
	FilmID     int64 `gorm:"primaryKey;autoIncrement:false"`
	DirectorID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

type FilmLike struct {
	FilmID    int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
