package repository

import (
	"Quill/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// PostActionRepo persists the reaction and favorite fact rows scoped to
// posts, plus the recount queries the reconcile job runs against them.
type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) error
	GetLike(ctx context.Context, userID, postID uint64) (*model.Like, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error)

	CreateFavorite(ctx context.Context, fav *model.FavoritePost) error
	DeleteFavorite(ctx context.Context, userID, postID uint64) error
	CheckFavoriteExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetFavoritePostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error)

	FindLikesByPostID(ctx context.Context, postID uint64) ([]*model.Like, error)
	FindFavoritesByPostID(ctx context.Context, postID uint64) ([]*model.FavoritePost, error)
	DeleteFactsByPostID(ctx context.Context, tx *gorm.DB, postID uint64) error

	CountReactionsByPostID(ctx context.Context, postID uint64, action model.Reaction) (int64, error)
	CountFavoritesByPostID(ctx context.Context, postID uint64) (int64, error)
	CountReactionsByUserID(ctx context.Context, userID uint64, action model.Reaction) (int64, error)
	CountFavoritesByUserID(ctx context.Context, userID uint64) (int64, error)
}

type postActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &postActionRepoImpl{db: db}
}

func (r *postActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *postActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{}).Error
}

func (r *postActionRepoImpl) GetLike(ctx context.Context, userID, postID uint64) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *postActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND action = ?", userID, model.ReactionLike).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var postIDs []uint64
	err = r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND action = ?", userID, model.ReactionLike).
		Order("created_at ASC, post_id ASC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &postIDs).Error
	return postIDs, total, err
}

func (r *postActionRepoImpl) CreateFavorite(ctx context.Context, fav *model.FavoritePost) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

func (r *postActionRepoImpl) DeleteFavorite(ctx context.Context, userID, postID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.FavoritePost{}).Error
}

func (r *postActionRepoImpl) CheckFavoriteExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoritePost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postActionRepoImpl) GetFavoritePostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.FavoritePost{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var postIDs []uint64
	err = r.db.WithContext(ctx).Model(&model.FavoritePost{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, post_id ASC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &postIDs).Error
	return postIDs, total, err
}

func (r *postActionRepoImpl) FindLikesByPostID(ctx context.Context, postID uint64) ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&likes).Error
	return likes, err
}

func (r *postActionRepoImpl) FindFavoritesByPostID(ctx context.Context, postID uint64) ([]*model.FavoritePost, error) {
	var favorites []*model.FavoritePost
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&favorites).Error
	return favorites, err
}

// DeleteFactsByPostID removes every like and favorite referencing a post,
// inside the caller's transaction when one is supplied.
func (r *postActionRepoImpl) DeleteFactsByPostID(ctx context.Context, tx *gorm.DB, postID uint64) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.FavoritePost{}).Error
}

func (r *postActionRepoImpl) CountReactionsByPostID(ctx context.Context, postID uint64, action model.Reaction) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ? AND action = ?", postID, action).
		Count(&count).Error
	return count, err
}

func (r *postActionRepoImpl) CountFavoritesByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoritePost{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postActionRepoImpl) CountReactionsByUserID(ctx context.Context, userID uint64, action model.Reaction) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND action = ?", userID, action).
		Count(&count).Error
	return count, err
}

func (r *postActionRepoImpl) CountFavoritesByUserID(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoritePost{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
