package handler

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type MetricHandler struct {
	userMetricSvc    service.UserMetricService
	postMetricSvc    service.PostMetricService
	commentMetricSvc service.CommentMetricService
}

func NewMetricHandler(
	userMetricSvc service.UserMetricService,
	postMetricSvc service.PostMetricService,
	commentMetricSvc service.CommentMetricService,
) *MetricHandler {
	return &MetricHandler{
		userMetricSvc:    userMetricSvc,
		postMetricSvc:    postMetricSvc,
		commentMetricSvc: commentMetricSvc,
	}
}

func (s *MetricHandler) GetUserMetric(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metric, err := s.userMetricSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := &dto.UserMetricView{}
	_ = copier.Copy(view, metric)
	response.Success(c, view)
}

func (s *MetricHandler) GetPostMetric(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metric, err := s.postMetricSvc.GetByPostID(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := &dto.PostMetricView{}
	_ = copier.Copy(view, metric)
	response.Success(c, view)
}

func (s *MetricHandler) GetCommentMetric(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metric, err := s.commentMetricSvc.GetByCommentID(c.Request.Context(), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := &dto.CommentMetricView{}
	_ = copier.Copy(view, metric)
	response.Success(c, view)
}

// RepairPostMetric is the admin escape hatch: a full counter write guarded
// by the version the admin read, so a racing increment surfaces as a
// conflict instead of silently vanishing.
func (s *MetricHandler) RepairPostMetric(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.MetricUpdateReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	current, err := s.postMetricSvc.GetByPostID(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	metric := &model.PostMetric{
		ID:             current.ID,
		PostID:         postID,
		LikesCount:     req.LikesCount,
		DislikesCount:  req.DislikesCount,
		ViewsCount:     req.ViewsCount,
		SharesCount:    req.SharesCount,
		FavoritesCount: req.FavoritesCount,
		RepliesCount:   req.RepliesCount,
		EditsCount:     req.EditsCount,
		Version:        req.Version,
	}
	updated, err := s.postMetricSvc.Update(c.Request.Context(), metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := &dto.PostMetricView{}
	_ = copier.Copy(view, updated)
	response.Success(c, view)
}

func (s *MetricHandler) RepairCommentMetric(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.MetricUpdateReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	current, err := s.commentMetricSvc.GetByCommentID(c.Request.Context(), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	metric := &model.CommentMetric{
		ID:             current.ID,
		CommentID:      commentID,
		LikesCount:     req.LikesCount,
		DislikesCount:  req.DislikesCount,
		ViewsCount:     req.ViewsCount,
		SharesCount:    req.SharesCount,
		FavoritesCount: req.FavoritesCount,
		RepliesCount:   req.RepliesCount,
		EditsCount:     req.EditsCount,
		Version:        req.Version,
	}
	updated, err := s.commentMetricSvc.Update(c.Request.Context(), metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := &dto.CommentMetricView{}
	_ = copier.Copy(view, updated)
	response.Success(c, view)
}
