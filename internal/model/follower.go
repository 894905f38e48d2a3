package model

import "time"

type Follower struct {
	FollowerID  uint64    `gorm:"primaryKey" json:"followerId"`
	FollowingID uint64    `gorm:"primaryKey;index:idx_follower_following_id" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Follower) TableName() string {
	return "followers"
}
