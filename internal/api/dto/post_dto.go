package dto

import "time"

type PostCreateReq struct {
	CategoryID uint64 `json:"categoryId" binding:"required"`
	Title      string `json:"title" binding:"required,max=255"`
	Content    string `json:"content" binding:"required"`
}

type PostUpdateReq struct {
	CategoryID uint64 `json:"categoryId" binding:"required"`
	Title      string `json:"title" binding:"required,max=255"`
	Content    string `json:"content" binding:"required"`
}

type PostView struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"userId"`
	CategoryID uint64    `json:"categoryId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type PostDetailResp struct {
	Post   *PostView       `json:"post"`
	Metric *PostMetricView `json:"metric"`
}

// PostSearchReq carries the query-string filters; absent fields add no
// predicate. Ranges bind as pointers so zero is a legal bound.
type PostSearchReq struct {
	Title      string `form:"title"`
	Author     string `form:"author"`
	CategoryID uint64 `form:"categoryId"`

	MinViews     *int `form:"minViews" binding:"omitempty,min=0"`
	MaxViews     *int `form:"maxViews" binding:"omitempty,min=0"`
	MinLikes     *int `form:"minLikes" binding:"omitempty,min=0"`
	MaxLikes     *int `form:"maxLikes" binding:"omitempty,min=0"`
	MinDislikes  *int `form:"minDislikes" binding:"omitempty,min=0"`
	MaxDislikes  *int `form:"maxDislikes" binding:"omitempty,min=0"`
	MinComments  *int `form:"minComments" binding:"omitempty,min=0"`
	MaxComments  *int `form:"maxComments" binding:"omitempty,min=0"`
	MinFavorites *int `form:"minFavorites" binding:"omitempty,min=0"`
	MaxFavorites *int `form:"maxFavorites" binding:"omitempty,min=0"`

	CreatedAfter  *time.Time `form:"createdAfter" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedBefore *time.Time `form:"createdBefore" time_format:"2006-01-02T15:04:05Z07:00"`
}
