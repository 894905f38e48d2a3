package service

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/pagination"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"context"
	"strconv"
	"time"
)

type FollowerService interface {
	Follow(ctx context.Context, followerID, followingID uint64) error
	Unfollow(ctx context.Context, actorID, followerID, followingID uint64) error
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowers(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.User], error)
	GetFollowing(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.User], error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type followerServiceImpl struct {
	followerRepo      repository.FollowerRepo
	userRepo          repository.UserRepo
	userMetricService UserMetricService
}

func NewFollowerService(
	followerRepo repository.FollowerRepo,
	userRepo repository.UserRepo,
	userMetricService UserMetricService,
) FollowerService {
	return &followerServiceImpl{
		followerRepo:      followerRepo,
		userRepo:          userRepo,
		userMetricService: userMetricService,
	}
}

func (s *followerServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) error {
	if followerID == 0 || followingID == 0 {
		return ErrParamInvalid
	}
	if followerID == followingID {
		return ErrUserFollowSelf
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	existing, err := s.followerRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserFollowExist
	}

	count, err := s.followerRepo.CountFollowing(ctx, followerID)
	if err != nil {
		return err
	}
	if count >= consts.MaxFollowingCount {
		return ErrUserFollowLimit
	}

	err = s.followerRepo.Create(ctx, &model.Follower{FollowerID: followerID, FollowingID: followingID})
	if err != nil {
		if isDuplicateError(err) {
			return ErrUserFollowExist
		}
		return err
	}
	s.invalidateCounts(ctx, followerID, followingID)

	if err = s.userMetricService.AdjustFollowing(ctx, followerID, model.DirectionSum); err != nil {
		return err
	}
	return s.userMetricService.AdjustFollowers(ctx, followingID, model.DirectionSum)
}

// Unfollow removes a relation; only its follower side may do so.
func (s *followerServiceImpl) Unfollow(ctx context.Context, actorID, followerID, followingID uint64) error {
	if followerID == 0 || followingID == 0 {
		return ErrParamInvalid
	}
	if actorID != followerID {
		return ErrNoPermission
	}

	existing, err := s.followerRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFollowNotFound
	}

	if err = s.followerRepo.Delete(ctx, existing); err != nil {
		return err
	}
	s.invalidateCounts(ctx, followerID, followingID)

	if err = s.userMetricService.AdjustFollowing(ctx, followerID, model.DirectionReduce); err != nil {
		return err
	}
	return s.userMetricService.AdjustFollowers(ctx, followingID, model.DirectionReduce)
}

func (s *followerServiceImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	if followerID == 0 || followingID == 0 {
		return false, ErrParamInvalid
	}
	existing, err := s.followerRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (s *followerServiceImpl) GetFollowers(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.User], error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	follows, total, err := s.followerRepo.GetFollowers(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}
	users, err := s.loadInOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(users, total, p), nil
}

func (s *followerServiceImpl) GetFollowing(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.User], error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	follows, total, err := s.followerRepo.GetFollowing(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}
	users, err := s.loadInOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(users, total, p), nil
}

func (s *followerServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, ErrParamInvalid
	}
	key := consts.UserFollowerCountKey + strconv.FormatUint(userID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	count, err := s.followerRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Minute*10)
	return count, nil
}

func (s *followerServiceImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, ErrParamInvalid
	}
	key := consts.UserFollowingCountKey + strconv.FormatUint(userID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	count, err := s.followerRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Minute*10)
	return count, nil
}

func (s *followerServiceImpl) invalidateCounts(ctx context.Context, followerID, followingID uint64) {
	_ = redis.DeleteKey(ctx, consts.UserFollowingCountKey+strconv.FormatUint(followerID, 10))
	_ = redis.DeleteKey(ctx, consts.UserFollowerCountKey+strconv.FormatUint(followingID, 10))
}

func (s *followerServiceImpl) loadInOrder(ctx context.Context, userIDs []uint64) ([]*model.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	ordered := make([]*model.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := byID[id]; ok {
			ordered = append(ordered, user)
		}
	}
	return ordered, nil
}
