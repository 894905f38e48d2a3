package model

import (
	"time"
)

type Category struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_name" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description"`
	IsActive    bool   `gorm:"type:tinyint(1);not null;default:1" json:"isActive"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string {
	return "categories"
}
