package repository

import (
	"Quill/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentMetricRepo interface {
	Create(ctx context.Context, metric *model.CommentMetric) error
	GetByCommentID(ctx context.Context, commentID uint64) (*model.CommentMetric, error)
	Increment(ctx context.Context, commentID uint64, column string, delta int) error
	UpdateCAS(ctx context.Context, metric *model.CommentMetric) (bool, error)
	DeleteByCommentIDs(ctx context.Context, tx *gorm.DB, commentIDs []uint64) error
}

type commentMetricRepoImpl struct {
	db *gorm.DB
}

func NewCommentMetricRepository(db *gorm.DB) CommentMetricRepo {
	return &commentMetricRepoImpl{db: db}
}

func (r *commentMetricRepoImpl) Create(ctx context.Context, metric *model.CommentMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}},
		DoNothing: true,
	}).Create(metric).Error
}

func (r *commentMetricRepoImpl) GetByCommentID(ctx context.Context, commentID uint64) (*model.CommentMetric, error) {
	var metric model.CommentMetric
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (r *commentMetricRepoImpl) Increment(ctx context.Context, commentID uint64, column string, delta int) error {
	result := r.db.WithContext(ctx).Model(&model.CommentMetric{}).
		Where("comment_id = ?", commentID).
		Updates(map[string]interface{}{
			column:                gorm.Expr(column+" + ?", delta),
			"version":             gorm.Expr("version + 1"),
			"last_interaction_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentMetricRepoImpl) UpdateCAS(ctx context.Context, metric *model.CommentMetric) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.CommentMetric{}).
		Where("id = ? AND version = ?", metric.ID, metric.Version).
		Updates(map[string]interface{}{
			"likes_count":         metric.LikesCount,
			"dislikes_count":      metric.DislikesCount,
			"views_count":         metric.ViewsCount,
			"shares_count":        metric.SharesCount,
			"favorites_count":     metric.FavoritesCount,
			"replies_count":       metric.RepliesCount,
			"edits_count":         metric.EditsCount,
			"engagement_score":    metric.EngagementScore,
			"version":             metric.Version + 1,
			"last_interaction_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *commentMetricRepoImpl) DeleteByCommentIDs(ctx context.Context, tx *gorm.DB, commentIDs []uint64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Delete(&model.CommentMetric{}).Error
}
