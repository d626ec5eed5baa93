package models

import "time"

// Like records that a user liked a post.
// The composite primary key allows at most one row per (user, post).
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked bool `json:"liked"`
}
