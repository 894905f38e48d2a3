package repository

import (
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *model.Comment) error
	GetByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	FindRoots(ctx context.Context, postID uint64, p pagination.Params) (*pagination.Page[model.Comment], error)
	FindReplies(ctx context.Context, parentID uint64, p pagination.Params) (*pagination.Page[model.Comment], error)
	FindByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[model.Comment], error)
	CollectSubtree(ctx context.Context, commentID uint64) ([]*model.Comment, error)
	FindAllByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uint64) error
	DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uint64) ([]uint64, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type commentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepoImpl{db: db}
}

func (r *commentRepoImpl) Create(ctx context.Context, tx *gorm.DB, comment *model.Comment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(comment).Error
}

func (r *commentRepoImpl) GetByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepoImpl) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepoImpl) FindRoots(ctx context.Context, postID uint64, p pagination.Params) (*pagination.Page[model.Comment], error) {
	tx := r.db.Model(&model.Comment{}).
		Where("post_id = ? AND parent_id = 0", postID)
	return pagination.Find[model.Comment](ctx, tx, p, "id ASC")
}

func (r *commentRepoImpl) FindReplies(ctx context.Context, parentID uint64, p pagination.Params) (*pagination.Page[model.Comment], error) {
	tx := r.db.Model(&model.Comment{}).Where("parent_id = ?", parentID)
	return pagination.Find[model.Comment](ctx, tx, p, "id ASC")
}

func (r *commentRepoImpl) FindByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[model.Comment], error) {
	tx := r.db.Model(&model.Comment{}).Where("user_id = ?", userID)
	return pagination.Find[model.Comment](ctx, tx, p, "id DESC")
}

// CollectSubtree returns the comment plus every descendant, walking the
// tree level by level. The root comment is always the first element.
func (r *commentRepoImpl) CollectSubtree(ctx context.Context, commentID uint64) ([]*model.Comment, error) {
	root, err := r.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return []*model.Comment{}, nil
	}

	collected := []*model.Comment{root}
	frontier := []uint64{root.ID}
	for len(frontier) > 0 {
		var children []*model.Comment
		err = r.db.WithContext(ctx).
			Where("parent_id IN ?", frontier).
			Find(&children).Error
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			collected = append(collected, child)
			frontier = append(frontier, child.ID)
		}
	}
	return collected, nil
}

func (r *commentRepoImpl) FindAllByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepoImpl) DeleteByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uint64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Where("id IN ?", commentIDs).
		Delete(&model.Comment{}).Error
}

// DeleteByPostID removes every comment under a post and reports the ids
// it removed so the caller can clean up metrics and fact rows.
func (r *commentRepoImpl) DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uint64) ([]uint64, error) {
	if tx == nil {
		tx = r.db
	}
	var ids []uint64
	err := tx.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	err = tx.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.Comment{}).Error
	return ids, err
}

func (r *commentRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *commentRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
