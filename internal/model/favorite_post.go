package model

import (
	"time"
)

type FavoritePost struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_favorite_post_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (FavoritePost) TableName() string {
	return "favorite_posts"
}
