package handler

import (
	"Quill/internal/model"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentActionHandler struct {
	actionSvc service.CommentActionService
}

func NewCommentActionHandler(actionSvc service.CommentActionService) *CommentActionHandler {
	return &CommentActionHandler{
		actionSvc: actionSvc,
	}
}

func (s *CommentActionHandler) React(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	action, err := strconv.Atoi(c.DefaultQuery("action", "1"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if action == 0 {
		err = s.actionSvc.RemoveReaction(c.Request.Context(), userID, commentID)
	} else {
		err = s.actionSvc.React(c.Request.Context(), userID, commentID, model.Reaction(action))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentActionHandler) Favorite(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.actionSvc.Favorite(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentActionHandler) Unfavorite(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.actionSvc.Unfavorite(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentActionHandler) GetLikeCount(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.actionSvc.GetLikeCount(c.Request.Context(), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}
