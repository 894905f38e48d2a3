package model

import (
	"time"
)

type Comment struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	PostID  uint64 `gorm:"not null;index:idx_comment_post_id" json:"postId"`
	UserID  uint64 `gorm:"not null" json:"userId"`
	Content string `gorm:"type:varchar(1000);not null" json:"content"`
	// 0 means the comment sits directly under its post; any other value is
	// the id of the comment being replied to.
	ParentID  uint64    `gorm:"not null;default:0;index:idx_comment_parent_id" json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Post Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
