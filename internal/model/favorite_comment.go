package model

import (
	"time"
)

type FavoriteComment struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	CommentID uint64    `gorm:"primaryKey;index:idx_favorite_comment_comment_id" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (FavoriteComment) TableName() string {
	return "favorite_comments"
}
