package model

import (
	"time"
)

type Post struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index:idx_post_user_id" json:"userId"`
	CategoryID uint64    `gorm:"not null;index:idx_post_category_id" json:"categoryId"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User     User     `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;references:ID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
