package model

import "time"

// UserMetric is the per-user counter aggregate. Rows live 1:1 with their
// user, are created zero-initialized alongside it, and are only ever
// mutated through the atomic column increments in the metric repository.
type UserMetric struct {
	ID                 uint64     `gorm:"primaryKey" json:"id"`
	UserID             uint64     `gorm:"not null;uniqueIndex:idx_user_metric_user" json:"userId"`
	PostsCount         int        `gorm:"not null;default:0" json:"postsCount"`
	CommentsCount      int        `gorm:"not null;default:0" json:"commentsCount"`
	LikesGivenCount    int        `gorm:"not null;default:0" json:"likesGivenCount"`
	DislikesGivenCount int        `gorm:"not null;default:0" json:"dislikesGivenCount"`
	SharesCount        int        `gorm:"not null;default:0" json:"sharesCount"`
	FollowersCount     int        `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount     int        `gorm:"not null;default:0" json:"followingCount"`
	FavoritesCount     int        `gorm:"not null;default:0" json:"favoritesCount"`
	ReportsCount       int        `gorm:"not null;default:0" json:"reportsCount"`
	EditsCount         int        `gorm:"not null;default:0" json:"editsCount"`
	ReputationScore    int        `gorm:"not null;default:0" json:"reputationScore"`
	ProfileViews       int        `gorm:"not null;default:0" json:"profileViews"`
	LastLogin          *time.Time `json:"lastLogin"`
	LastActivity       time.Time  `json:"lastActivity"`
	Version            uint64     `gorm:"not null;default:0" json:"version"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (UserMetric) TableName() string {
	return "user_metrics"
}
