package repository

import (
	"Quill/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter columns addressable through the atomic increment path. Services
// pass these constants, never free-form strings.
const (
	ColLikes     = "likes_count"
	ColDislikes  = "dislikes_count"
	ColViews     = "views_count"
	ColShares    = "shares_count"
	ColFavorites = "favorites_count"
	ColReplies   = "replies_count"
	ColEdits     = "edits_count"
)

type PostMetricRepo interface {
	Create(ctx context.Context, metric *model.PostMetric) error
	GetByPostID(ctx context.Context, postID uint64) (*model.PostMetric, error)
	// Increment applies counter = counter + delta in a single statement,
	// bumping version and the interaction stamp with it. This is the only
	// write path for counters, so concurrent writers can never lose an
	// update to a stale in-memory snapshot.
	Increment(ctx context.Context, postID uint64, column string, delta int) error
	// UpdateCAS writes the full row guarded by the expected version and
	// reports whether the write won.
	UpdateCAS(ctx context.Context, metric *model.PostMetric) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, postID uint64) error
}

type postMetricRepoImpl struct {
	db *gorm.DB
}

func NewPostMetricRepository(db *gorm.DB) PostMetricRepo {
	return &postMetricRepoImpl{db: db}
}

// Create is idempotent: the unique index on post_id plus DO NOTHING makes
// a second create for the same post a no-op instead of a duplicate row.
func (r *postMetricRepoImpl) Create(ctx context.Context, metric *model.PostMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoNothing: true,
	}).Create(metric).Error
}

func (r *postMetricRepoImpl) GetByPostID(ctx context.Context, postID uint64) (*model.PostMetric, error) {
	var metric model.PostMetric
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (r *postMetricRepoImpl) Increment(ctx context.Context, postID uint64, column string, delta int) error {
	result := r.db.WithContext(ctx).Model(&model.PostMetric{}).
		Where("post_id = ?", postID).
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

func (r *postMetricRepoImpl) UpdateCAS(ctx context.Context, metric *model.PostMetric) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.PostMetric{}).
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

func (r *postMetricRepoImpl) Delete(ctx context.Context, tx *gorm.DB, postID uint64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.PostMetric{}).Error
}
