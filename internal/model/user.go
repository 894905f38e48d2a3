package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Username  *string `gorm:"type:varchar(50);uniqueIndex:idx_username"`
	Email     *string `gorm:"type:varchar(120);uniqueIndex:idx_email"`
	Password  *string `gorm:"type:varchar(255)"`
	IsAdmin   bool    `gorm:"type:tinyint(1);default:0"`
	IsBlocked bool    `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
