package handler

import (
	"Quill/internal/pkg/pagination"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followerSvc service.FollowerService
}

func NewUserFollowHandler(followerSvc service.FollowerService) *UserFollowHandler {
	return &UserFollowHandler{
		followerSvc: followerSvc,
	}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.followerSvc.Follow(c.Request.Context(), userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.followerSvc.Unfollow(c.Request.Context(), userID, userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) IsFollowing(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	following, err := s.followerSvc.IsFollowing(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"isFollowing": following})
}

func (s *UserFollowHandler) GetFollowers(c *gin.Context) {
	userID := s.targetUser(c)
	if userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	p := pagination.FromQuery(c)

	page, err := s.followerSvc.GetFollowers(c.Request.Context(), userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *UserFollowHandler) GetFollowing(c *gin.Context) {
	userID := s.targetUser(c)
	if userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	p := pagination.FromQuery(c)

	page, err := s.followerSvc.GetFollowing(c.Request.Context(), userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *UserFollowHandler) GetFollowerCount(c *gin.Context) {
	userID := s.targetUser(c)
	if userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.followerSvc.GetFollowerCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

func (s *UserFollowHandler) GetFollowingCount(c *gin.Context) {
	userID := s.targetUser(c)
	if userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.followerSvc.GetFollowingCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// targetUser resolves the subject of a relation query: an explicit
// user_id query parameter, falling back to the caller.
func (s *UserFollowHandler) targetUser(c *gin.Context) uint64 {
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0
		}
		return id
	}
	return c.GetUint64("user_id")
}
