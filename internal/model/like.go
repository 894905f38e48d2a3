package model

import (
	"time"
)

// Like holds a user's reaction to a post. The composite primary key keeps
// like and dislike mutually exclusive for a pair.
type Like struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_like_post_id" json:"postId"`
	Action    Reaction  `gorm:"not null" json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
