package dto

import "time"

type UserRegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type UserLoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserLoginResp struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

// UserView is the public shape of a user; credentials never leave the
// service layer.
type UserView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserProfileResp struct {
	User   *UserView       `json:"user"`
	Metric *UserMetricView `json:"metric"`
}

type FollowReq struct {
	FollowingID uint64 `json:"followingId" binding:"required"`
}

type UnfollowReq struct {
	FollowerID  uint64 `json:"followerId" binding:"required"`
	FollowingID uint64 `json:"followingId" binding:"required"`
}
