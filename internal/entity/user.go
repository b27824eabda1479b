package entity

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Login     string    `gorm:"size:100;not null" json:"login"`
	Name      string    `gorm:"size:255" json:"name"`
	Birthday  time.Time `gorm:"type:date" json:"birthday"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

// Friendship is a directed edge: UserID considers FriendID a friend.
type Friendship struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FriendID  int64     `gorm:"primaryKey;autoIncrement:false;index" json:"friend_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (f *Friendship) TableName() string {
	return "friendships"
}
