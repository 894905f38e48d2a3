package service

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentMetricService interface {
	CreateFor(ctx context.Context, commentID uint64) error
	GetByCommentID(ctx context.Context, commentID uint64) (*model.CommentMetric, error)
	AdjustReaction(ctx context.Context, commentID uint64, action model.Reaction, d model.Direction) error
	AdjustFavorites(ctx context.Context, commentID uint64, d model.Direction) error
	AdjustReplies(ctx context.Context, commentID uint64, d model.Direction) error
	AdjustEdits(ctx context.Context, commentID uint64, d model.Direction) error
	AddViews(ctx context.Context, commentID uint64, amount int) error
	Update(ctx context.Context, metric *model.CommentMetric) (*model.CommentMetric, error)
}

type commentMetricServiceImpl struct {
	commentMetricRepo repository.CommentMetricRepo
}

func NewCommentMetricService(commentMetricRepo repository.CommentMetricRepo) CommentMetricService {
	return &commentMetricServiceImpl{commentMetricRepo: commentMetricRepo}
}

func (s *commentMetricServiceImpl) CreateFor(ctx context.Context, commentID uint64) error {
	if commentID == 0 {
		return ErrParamInvalid
	}
	return s.commentMetricRepo.Create(ctx, &model.CommentMetric{CommentID: commentID})
}

func (s *commentMetricServiceImpl) GetByCommentID(ctx context.Context, commentID uint64) (*model.CommentMetric, error) {
	if commentID == 0 {
		return nil, ErrParamInvalid
	}
	metric, err := s.commentMetricRepo.GetByCommentID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetricNotFound
		}
		return nil, err
	}
	return metric, nil
}

func (s *commentMetricServiceImpl) AdjustReaction(ctx context.Context, commentID uint64, action model.Reaction, d model.Direction) error {
	column := repository.ColLikes
	if action == model.ReactionDislike {
		column = repository.ColDislikes
	}
	return s.increment(ctx, commentID, column, d.Delta())
}

func (s *commentMetricServiceImpl) AdjustFavorites(ctx context.Context, commentID uint64, d model.Direction) error {
	return s.increment(ctx, commentID, repository.ColFavorites, d.Delta())
}

func (s *commentMetricServiceImpl) AdjustReplies(ctx context.Context, commentID uint64, d model.Direction) error {
	return s.increment(ctx, commentID, repository.ColReplies, d.Delta())
}

func (s *commentMetricServiceImpl) AdjustEdits(ctx context.Context, commentID uint64, d model.Direction) error {
	return s.increment(ctx, commentID, repository.ColEdits, d.Delta())
}

func (s *commentMetricServiceImpl) AddViews(ctx context.Context, commentID uint64, amount int) error {
	if amount <= 0 {
		amount = 1
	}
	return s.increment(ctx, commentID, repository.ColViews, amount)
}

func (s *commentMetricServiceImpl) increment(ctx context.Context, commentID uint64, column string, delta int) error {
	if commentID == 0 {
		return ErrParamInvalid
	}
	err := s.commentMetricRepo.Increment(ctx, commentID, column, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMetricNotFound
		}
		return err
	}
	_ = redis.SAdd(ctx, consts.CommentMetricDirtyKey, commentID)
	return nil
}

func (s *commentMetricServiceImpl) Update(ctx context.Context, metric *model.CommentMetric) (*model.CommentMetric, error) {
	if metric == nil || metric.CommentID == 0 {
		return nil, ErrParamInvalid
	}

	m := *metric
	m.EngagementScore = m.ComputeEngagement()
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		won, err := s.commentMetricRepo.UpdateCAS(ctx, &m)
		if err != nil {
			return nil, err
		}
		if won {
			m.Version++
			return &m, nil
		}

		fresh, err := s.commentMetricRepo.GetByCommentID(ctx, m.CommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMetricNotFound
			}
			return nil, err
		}
		m.ID = fresh.ID
		m.Version = fresh.Version
	}
	return nil, ErrMetricConflict
}
