package dto

import "time"

type CommentCreateReq struct {
	PostID   uint64 `json:"postId" binding:"required"`
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID uint64 `json:"parentId"`
}

type CommentUpdateReq struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentView struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"postId"`
	UserID    uint64    `json:"userId"`
	Content   string    `json:"content"`
	ParentID  uint64    `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
