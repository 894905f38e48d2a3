package repository

import (
	"Quill/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type FollowerRepo interface {
	Create(ctx context.Context, follow *model.Follower) error
	Delete(ctx context.Context, follow *model.Follower) error
	Get(ctx context.Context, followerID, followingID uint64) (*model.Follower, error)
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follower, int64, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follower, int64, error)
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
	CountFollowing(ctx context.Context, userID uint64) (int64, error)
}

type followerRepoImpl struct {
	db *gorm.DB
}

func NewFollowerRepo(db *gorm.DB) FollowerRepo {
	return &followerRepoImpl{db: db}
}

func (r *followerRepoImpl) Create(ctx context.Context, follow *model.Follower) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followerRepoImpl) Delete(ctx context.Context, follow *model.Follower) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", follow.FollowerID, follow.FollowingID).
		Delete(&model.Follower{}).Error
}

func (r *followerRepoImpl) Get(ctx context.Context, followerID, followingID uint64) (*model.Follower, error) {
	var follow model.Follower
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

func (r *followerRepoImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follower, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Follower{}).
		Where("following_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	follows := make([]*model.Follower, 0, limit)
	err = r.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Order("created_at ASC, follower_id ASC").
		Limit(limit).Offset(offset).
		Find(&follows).Error
	return follows, total, err
}

func (r *followerRepoImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follower, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Follower{}).
		Where("follower_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	follows := make([]*model.Follower, 0, limit)
	err = r.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at ASC, following_id ASC").
		Limit(limit).Offset(offset).
		Find(&follows).Error
	return follows, total, err
}

func (r *followerRepoImpl) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follower{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followerRepoImpl) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follower{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
