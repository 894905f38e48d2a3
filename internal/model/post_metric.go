package model

import "time"

type PostMetric struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	PostID            uint64    `gorm:"not null;uniqueIndex:idx_post_metric_post" json:"postId"`
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

func (PostMetric) TableName() string {
	return "post_metrics"
}

// ComputeEngagement weighs the interaction counters into the single score
// surfaced on ranking endpoints. Recomputed by the reconcile job, never
// incrementally maintained.
func (m *PostMetric) ComputeEngagement() int {
	return m.LikesCount*3 + m.FavoritesCount*5 + m.RepliesCount*2 + m.SharesCount*4 + m.ViewsCount
}
