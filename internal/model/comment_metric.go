package model

import "time"

type CommentMetric struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	CommentID         uint64    `gorm:"not null;uniqueIndex:idx_comment_metric_comment" json:"commentId"`
	LikesCount        int       `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount     int       `gorm:"not null;default:0" json:"dislikesCount"`
	ViewsCount        int       `gorm:"not null;default:0" json:"viewsCount"`
	SharesCount       int       `gorm:"not null;default:0" json:"sharesCount"`
	FavoritesCount    int       `gorm:"not null;default:0" json:"favoritesCount"`
	RepliesCount      int       `gorm:"not null;default:0" json:"repliesCount"`
	EditsCount        int       `gorm:"not null;default:0" json:"editsCount"`
	EngagementScore   int       `gorm:"not null;default:0" json:"engagementScore"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
	Version           uint64    `gorm:"not null;default:0" json:"version"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (CommentMetric) TableName() string {
	return "comment_metrics"
}

func (m *CommentMetric) ComputeEngagement() int {
	return m.LikesCount*3 + m.FavoritesCount*5 + m.RepliesCount*2 + m.SharesCount*4 + m.ViewsCount
}
