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

const casRetryLimit = 3

// PostMetricService owns every mutation of post counter rows. Content and
// fact services call the mutators here instead of touching the repository,
// so the pairing between a fact row and its counter stays in one place.
type PostMetricService interface {
	CreateFor(ctx context.Context, postID uint64) error
	GetByPostID(ctx context.Context, postID uint64) (*model.PostMetric, error)
	AdjustReaction(ctx context.Context, postID uint64, action model.Reaction, d model.Direction) error
	AdjustFavorites(ctx context.Context, postID uint64, d model.Direction) error
	AdjustShares(ctx context.Context, postID uint64, d model.Direction) error
	AdjustReplies(ctx context.Context, postID uint64, d model.Direction) error
	AdjustRepliesBy(ctx context.Context, postID uint64, delta int) error
	AdjustEdits(ctx context.Context, postID uint64, d model.Direction) error
	AddViews(ctx context.Context, postID uint64, amount int) error
	Update(ctx context.Context, metric *model.PostMetric) (*model.PostMetric, error)
}

type postMetricServiceImpl struct {
	postMetricRepo repository.PostMetricRepo
}

func NewPostMetricService(postMetricRepo repository.PostMetricRepo) PostMetricService {
	return &postMetricServiceImpl{postMetricRepo: postMetricRepo}
}

func (s *postMetricServiceImpl) CreateFor(ctx context.Context, postID uint64) error {
	if postID == 0 {
		return ErrParamInvalid
	}
	return s.postMetricRepo.Create(ctx, &model.PostMetric{PostID: postID})
}

func (s *postMetricServiceImpl) GetByPostID(ctx context.Context, postID uint64) (*model.PostMetric, error) {
	if postID == 0 {
		return nil, ErrParamInvalid
	}
	metric, err := s.postMetricRepo.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetricNotFound
		}
		return nil, err
	}
	return metric, nil
}

func (s *postMetricServiceImpl) AdjustReaction(ctx context.Context, postID uint64, action model.Reaction, d model.Direction) error {
	column := repository.ColLikes
	if action == model.ReactionDislike {
		column = repository.ColDislikes
	}
	return s.increment(ctx, postID, column, d.Delta())
}

func (s *postMetricServiceImpl) AdjustFavorites(ctx context.Context, postID uint64, d model.Direction) error {
	return s.increment(ctx, postID, repository.ColFavorites, d.Delta())
}

func (s *postMetricServiceImpl) AdjustShares(ctx context.Context, postID uint64, d model.Direction) error {
	return s.increment(ctx, postID, repository.ColShares, d.Delta())
}

func (s *postMetricServiceImpl) AdjustReplies(ctx context.Context, postID uint64, d model.Direction) error {
	return s.increment(ctx, postID, repository.ColReplies, d.Delta())
}

func (s *postMetricServiceImpl) AdjustRepliesBy(ctx context.Context, postID uint64, delta int) error {
	if delta == 0 {
		return nil
	}
	return s.increment(ctx, postID, repository.ColReplies, delta)
}

func (s *postMetricServiceImpl) AdjustEdits(ctx context.Context, postID uint64, d model.Direction) error {
	return s.increment(ctx, postID, repository.ColEdits, d.Delta())
}

func (s *postMetricServiceImpl) AddViews(ctx context.Context, postID uint64, amount int) error {
	if amount <= 0 {
		amount = 1
	}
	return s.increment(ctx, postID, repository.ColViews, amount)
}

func (s *postMetricServiceImpl) increment(ctx context.Context, postID uint64, column string, delta int) error {
	if postID == 0 {
		return ErrParamInvalid
	}
	err := s.postMetricRepo.Increment(ctx, postID, column, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMetricNotFound
		}
		return err
	}
	// best effort; the reconcile job picks dirty rows up from this set
	_ = redis.SAdd(ctx, consts.PostMetricDirtyKey, postID)
	return nil
}

// Update replaces the whole counter row guarded by the caller's version.
// A lost race re-reads the fresh version and retries; persistent losers
// give up with a conflict instead of clobbering concurrent writes.
func (s *postMetricServiceImpl) Update(ctx context.Context, metric *model.PostMetric) (*model.PostMetric, error) {
	if metric == nil || metric.PostID == 0 {
		return nil, ErrParamInvalid
	}

	m := *metric
	m.EngagementScore = m.ComputeEngagement()
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		won, err := s.postMetricRepo.UpdateCAS(ctx, &m)
		if err != nil {
			return nil, err
		}
		if won {
			m.Version++
			return &m, nil
		}

		fresh, err := s.postMetricRepo.GetByPostID(ctx, m.PostID)
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
