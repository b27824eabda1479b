package entity

type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type MpaRating struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:20;not null" json:"name"`
}

func (m *MpaRating) TableName() string {
	return "mpa_ratings"
}

type Director struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}
