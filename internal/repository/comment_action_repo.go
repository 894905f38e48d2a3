package repository

import (
	"Quill/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentActionRepo interface {
	CreateLike(ctx context.Context, like *model.CommentLike) error
	DeleteLike(ctx context.Context, userID, commentID uint64) error
	GetLike(ctx context.Context, userID, commentID uint64) (*model.CommentLike, error)
	CheckLikeExists(ctx context.Context, userID, commentID uint64) (bool, error)

	CreateFavorite(ctx context.Context, fav *model.FavoriteComment) error
	DeleteFavorite(ctx context.Context, userID, commentID uint64) error
	CheckFavoriteExists(ctx context.Context, userID, commentID uint64) (bool, error)

	FindLikesByCommentIDs(ctx context.Context, commentIDs []uint64) ([]*model.CommentLike, error)
	FindFavoritesByCommentIDs(ctx context.Context, commentIDs []uint64) ([]*model.FavoriteComment, error)
	DeleteFactsByCommentIDs(ctx context.Context, tx *gorm.DB, commentIDs []uint64) error

	CountReactionsByCommentID(ctx context.Context, commentID uint64, action model.Reaction) (int64, error)
	CountFavoritesByCommentID(ctx context.Context, commentID uint64) (int64, error)
	CountReactionsByUserID(ctx context.Context, userID uint64, action model.Reaction) (int64, error)
	CountFavoritesByUserID(ctx context.Context, userID uint64) (int64, error)
}

type commentActionRepoImpl struct {
	db *gorm.DB
}

func NewCommentActionRepo(db *gorm.DB) CommentActionRepo {
	return &commentActionRepoImpl{db: db}
}

func (r *commentActionRepoImpl) CreateLike(ctx context.Context, like *model.CommentLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *commentActionRepoImpl) DeleteLike(ctx context.Context, userID, commentID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.CommentLike{}).Error
}

func (r *commentActionRepoImpl) GetLike(ctx context.Context, userID, commentID uint64) (*model.CommentLike, error) {
	var like model.CommentLike
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *commentActionRepoImpl) CheckLikeExists(ctx context.Context, userID, commentID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentActionRepoImpl) CreateFavorite(ctx context.Context, fav *model.FavoriteComment) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

func (r *commentActionRepoImpl) DeleteFavorite(ctx context.Context, userID, commentID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.FavoriteComment{}).Error
}

func (r *commentActionRepoImpl) CheckFavoriteExists(ctx context.Context, userID, commentID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteComment{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentActionRepoImpl) FindLikesByCommentIDs(ctx context.Context, commentIDs []uint64) ([]*model.CommentLike, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var likes []*model.CommentLike
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Find(&likes).Error
	return likes, err
}

func (r *commentActionRepoImpl) FindFavoritesByCommentIDs(ctx context.Context, commentIDs []uint64) ([]*model.FavoriteComment, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var favorites []*model.FavoriteComment
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Find(&favorites).Error
	return favorites, err
}

func (r *commentActionRepoImpl) DeleteFactsByCommentIDs(ctx context.Context, tx *gorm.DB, commentIDs []uint64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&model.CommentLike{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&model.FavoriteComment{}).Error
}

func (r *commentActionRepoImpl) CountReactionsByCommentID(ctx context.Context, commentID uint64, action model.Reaction) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ? AND action = ?", commentID, action).
		Count(&count).Error
	return count, err
}

func (r *commentActionRepoImpl) CountFavoritesByCommentID(ctx context.Context, commentID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteComment{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *commentActionRepoImpl) CountReactionsByUserID(ctx context.Context, userID uint64, action model.Reaction) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND action = ?", userID, action).
		Count(&count).Error
	return count, err
}

func (r *commentActionRepoImpl) CountFavoritesByUserID(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteComment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
