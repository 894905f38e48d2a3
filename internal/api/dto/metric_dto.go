package dto

import "time"

type UserMetricView struct {
	UserID             uint64     `json:"userId"`
	PostsCount         int        `json:"postsCount"`
	CommentsCount      int        `json:"commentsCount"`
	LikesGivenCount    int        `json:"likesGivenCount"`
	DislikesGivenCount int        `json:"dislikesGivenCount"`
	SharesCount        int        `json:"sharesCount"`
	FollowersCount     int        `json:"followersCount"`
	FollowingCount     int        `json:"followingCount"`
	FavoritesCount     int        `json:"favoritesCount"`
	ReportsCount       int        `json:"reportsCount"`
	EditsCount         int        `json:"editsCount"`
	ReputationScore    int        `json:"reputationScore"`
	ProfileViews       int        `json:"profileViews"`
	LastLogin          *time.Time `json:"lastLogin"`
	LastActivity       time.Time  `json:"lastActivity"`
	Version            uint64     `json:"version"`
}

type PostMetricView struct {
	PostID            uint64    `json:"postId"`
	LikesCount        int       `json:"likesCount"`
	DislikesCount     int       `json:"dislikesCount"`
	ViewsCount        int       `json:"viewsCount"`
	SharesCount       int       `json:"sharesCount"`
	FavoritesCount    int       `json:"favoritesCount"`
	RepliesCount      int       `json:"repliesCount"`
	EditsCount        int       `json:"editsCount"`
	EngagementScore   int       `json:"engagementScore"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
	Version           uint64    `json:"version"`
}

type CommentMetricView struct {
	CommentID         uint64    `json:"commentId"`
	LikesCount        int       `json:"likesCount"`
	DislikesCount     int       `json:"dislikesCount"`
	ViewsCount        int       `json:"viewsCount"`
	SharesCount       int       `json:"sharesCount"`
	FavoritesCount    int       `json:"favoritesCount"`
	RepliesCount      int       `json:"repliesCount"`
	EditsCount        int       `json:"editsCount"`
	EngagementScore   int       `json:"engagementScore"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
	Version           uint64    `json:"version"`
}

// MetricUpdateReq is the admin repair payload: a full counter row write
// guarded by the version the caller read.
type MetricUpdateReq struct {
	LikesCount     int    `json:"likesCount" binding:"min=0"`
	DislikesCount  int    `json:"dislikesCount" binding:"min=0"`
	ViewsCount     int    `json:"viewsCount" binding:"min=0"`
	SharesCount    int    `json:"sharesCount" binding:"min=0"`
	FavoritesCount int    `json:"favoritesCount" binding:"min=0"`
	RepliesCount   int    `json:"repliesCount" binding:"min=0"`
	EditsCount     int    `json:"editsCount" binding:"min=0"`
	Version        uint64 `json:"version"`
}
