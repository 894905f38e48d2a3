package repository

import (
	"Quill/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User-scoped counter columns.
const (
	ColPosts         = "posts_count"
	ColComments      = "comments_count"
	ColLikesGiven    = "likes_given_count"
	ColDislikesGiven = "dislikes_given_count"
	ColUserShares    = "shares_count"
	ColFollowers     = "followers_count"
	ColFollowing     = "following_count"
	ColUserFavorites = "favorites_count"
	ColReports       = "reports_count"
	ColUserEdits     = "edits_count"
	ColReputation    = "reputation_score"
	ColProfileViews  = "profile_views"
)

type UserMetricRepo interface {
	Create(ctx context.Context, metric *model.UserMetric) error
	GetByUserID(ctx context.Context, userID uint64) (*model.UserMetric, error)
	Increment(ctx context.Context, userID uint64, column string, delta int) error
	UpdateCAS(ctx context.Context, metric *model.UserMetric) (bool, error)
	StampLogin(ctx context.Context, userID uint64, at time.Time) error
	StampActivity(ctx context.Context, userID uint64, at time.Time) error
}

type userMetricRepoImpl struct {
	db *gorm.DB
}

func NewUserMetricRepository(db *gorm.DB) UserMetricRepo {
	return &userMetricRepoImpl{db: db}
}

func (r *userMetricRepoImpl) Create(ctx context.Context, metric *model.UserMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(metric).Error
}

func (r *userMetricRepoImpl) GetByUserID(ctx context.Context, userID uint64) (*model.UserMetric, error) {
	var metric model.UserMetric
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (r *userMetricRepoImpl) Increment(ctx context.Context, userID uint64, column string, delta int) error {
	result := r.db.WithContext(ctx).Model(&model.UserMetric{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			column:          gorm.Expr(column+" + ?", delta),
			"version":       gorm.Expr("version + 1"),
			"last_activity": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userMetricRepoImpl) UpdateCAS(ctx context.Context, metric *model.UserMetric) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.UserMetric{}).
		Where("id = ? AND version = ?", metric.ID, metric.Version).
		Updates(map[string]interface{}{
			"posts_count":          metric.PostsCount,
			"comments_count":       metric.CommentsCount,
			"likes_given_count":    metric.LikesGivenCount,
			"dislikes_given_count": metric.DislikesGivenCount,
			"shares_count":         metric.SharesCount,
			"followers_count":      metric.FollowersCount,
			"following_count":      metric.FollowingCount,
			"favorites_count":      metric.FavoritesCount,
			"reports_count":        metric.ReportsCount,
			"edits_count":          metric.EditsCount,
			"reputation_score":     metric.ReputationScore,
			"profile_views":        metric.ProfileViews,
			"version":              metric.Version + 1,
			"last_activity":        time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *userMetricRepoImpl) StampActivity(ctx context.Context, userID uint64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.UserMetric{}).
		Where("user_id = ?", userID).
		Update("last_activity", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userMetricRepoImpl) StampLogin(ctx context.Context, userID uint64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.UserMetric{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"last_login":    at,
			"last_activity": at,
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
