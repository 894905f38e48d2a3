package service

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserMetricService interface {
	CreateFor(ctx context.Context, userID uint64) error
	GetByUserID(ctx context.Context, userID uint64) (*model.UserMetric, error)
	AdjustPosts(ctx context.Context, userID uint64, d model.Direction) error
	AdjustComments(ctx context.Context, userID uint64, d model.Direction) error
	AdjustCommentsBy(ctx context.Context, userID uint64, delta int) error
	AdjustGivenReaction(ctx context.Context, userID uint64, action model.Reaction, d model.Direction) error
	AdjustShares(ctx context.Context, userID uint64, d model.Direction) error
	AdjustFollowers(ctx context.Context, userID uint64, d model.Direction) error
	AdjustFollowing(ctx context.Context, userID uint64, d model.Direction) error
	AdjustFavorites(ctx context.Context, userID uint64, d model.Direction) error
	AdjustEdits(ctx context.Context, userID uint64, d model.Direction) error
	AdjustReputationBy(ctx context.Context, userID uint64, delta int) error
	AddProfileViews(ctx context.Context, userID uint64, amount int) error
	TouchLogin(ctx context.Context, userID uint64) error
	TouchActivity(ctx context.Context, userID uint64) error
	Update(ctx context.Context, metric *model.UserMetric) (*model.UserMetric, error)
}

type userMetricServiceImpl struct {
	userMetricRepo repository.UserMetricRepo
	userRepo       repository.UserRepo
}

func NewUserMetricService(userMetricRepo repository.UserMetricRepo, userRepo repository.UserRepo) UserMetricService {
	return &userMetricServiceImpl{
		userMetricRepo: userMetricRepo,
		userRepo:       userRepo,
	}
}

func (s *userMetricServiceImpl) CreateFor(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return ErrParamInvalid
	}
	return s.userMetricRepo.Create(ctx, &model.UserMetric{UserID: userID})
}

// GetByUserID distinguishes an unknown user from a user whose metric row is
// missing, so the two surface as different errors at the boundary.
func (s *userMetricServiceImpl) GetByUserID(ctx context.Context, userID uint64) (*model.UserMetric, error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	metric, err := s.userMetricRepo.GetByUserID(ctx, userID)
	if err == nil {
		return metric, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return nil, ErrMetricNotFound
}

func (s *userMetricServiceImpl) AdjustPosts(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColPosts, d.Delta())
}

func (s *userMetricServiceImpl) AdjustComments(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColComments, d.Delta())
}

func (s *userMetricServiceImpl) AdjustCommentsBy(ctx context.Context, userID uint64, delta int) error {
	if delta == 0 {
		return nil
	}
	return s.increment(ctx, userID, repository.ColComments, delta)
}

func (s *userMetricServiceImpl) AdjustGivenReaction(ctx context.Context, userID uint64, action model.Reaction, d model.Direction) error {
	column := repository.ColLikesGiven
	if action == model.ReactionDislike {
		column = repository.ColDislikesGiven
	}
	return s.increment(ctx, userID, column, d.Delta())
}

func (s *userMetricServiceImpl) AdjustShares(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColUserShares, d.Delta())
}

func (s *userMetricServiceImpl) AdjustFollowers(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColFollowers, d.Delta())
}

func (s *userMetricServiceImpl) AdjustFollowing(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColFollowing, d.Delta())
}

func (s *userMetricServiceImpl) AdjustFavorites(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColUserFavorites, d.Delta())
}

func (s *userMetricServiceImpl) AdjustEdits(ctx context.Context, userID uint64, d model.Direction) error {
	return s.increment(ctx, userID, repository.ColUserEdits, d.Delta())
}

func (s *userMetricServiceImpl) AdjustReputationBy(ctx context.Context, userID uint64, delta int) error {
	if delta == 0 {
		return nil
	}
	return s.increment(ctx, userID, repository.ColReputation, delta)
}

func (s *userMetricServiceImpl) AddProfileViews(ctx context.Context, userID uint64, amount int) error {
	if amount <= 0 {
		amount = 1
	}
	return s.increment(ctx, userID, repository.ColProfileViews, amount)
}

func (s *userMetricServiceImpl) TouchLogin(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return ErrParamInvalid
	}
	err := s.userMetricRepo.StampLogin(ctx, userID, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMetricNotFound
	}
	return err
}

func (s *userMetricServiceImpl) TouchActivity(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return ErrParamInvalid
	}
	err := s.userMetricRepo.StampActivity(ctx, userID, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMetricNotFound
	}
	return err
}

func (s *userMetricServiceImpl) increment(ctx context.Context, userID uint64, column string, delta int) error {
	if userID == 0 {
		return ErrParamInvalid
	}
	err := s.userMetricRepo.Increment(ctx, userID, column, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMetricNotFound
		}
		return err
	}
	_ = redis.SAdd(ctx, consts.UserMetricDirtyKey, userID)
	return nil
}

func (s *userMetricServiceImpl) Update(ctx context.Context, metric *model.UserMetric) (*model.UserMetric, error) {
	if metric == nil || metric.UserID == 0 {
		return nil, ErrParamInvalid
	}

	m := *metric
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		won, err := s.userMetricRepo.UpdateCAS(ctx, &m)
		if err != nil {
			return nil, err
		}
		if won {
			m.Version++
			return &m, nil
		}

		fresh, err := s.userMetricRepo.GetByUserID(ctx, m.UserID)
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
