package job

import (
	"Quill/internal/model"
	"Quill/internal/repository"
	"Quill/internal/service"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type jobTestEnv struct {
	db  *gorm.DB
	job *MetricReconcileJob

	userMetricRepo    repository.UserMetricRepo
	postMetricRepo    repository.PostMetricRepo
	postActionRepo    repository.PostActionRepo
	commentActionRepo repository.CommentActionRepo
	userMetricSvc     service.UserMetricService
	postMetricSvc     service.PostMetricService
}

func newJobTestEnv(t *testing.T) *jobTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.UserMetric{},
		&model.PostMetric{},
		&model.CommentMetric{},
		&model.Like{},
		&model.CommentLike{},
		&model.FavoritePost{},
		&model.FavoriteComment{},
		&model.Follower{},
	))

	env := &jobTestEnv{db: db}
	userRepo := repository.NewUserRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	followerRepo := repository.NewFollowerRepo(db)
	env.userMetricRepo = repository.NewUserMetricRepository(db)
	env.postMetricRepo = repository.NewPostMetricRepository(db)
	commentMetricRepo := repository.NewCommentMetricRepository(db)
	env.postActionRepo = repository.NewPostActionRepo(db)
	env.commentActionRepo = repository.NewCommentActionRepo(db)

	env.userMetricSvc = service.NewUserMetricService(env.userMetricRepo, userRepo)
	env.postMetricSvc = service.NewPostMetricService(env.postMetricRepo)
	commentMetricSvc := service.NewCommentMetricService(commentMetricRepo)

	env.job = NewMetricReconcileJob(
		env.postActionRepo, env.commentActionRepo, commentRepo, followerRepo, userRepo,
		env.postMetricSvc, commentMetricSvc, env.userMetricSvc,
	)
	return env
}

func (e *jobTestEnv) seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	user := &model.User{Username: &name}
	require.NoError(t, e.db.WithContext(t.Context()).Create(user).Error)
	require.NoError(t, e.db.WithContext(t.Context()).Create(&model.UserMetric{UserID: user.ID}).Error)
	return user
}

// A reconcile pass recounts from the fact tables; counters fed by
// comment-scoped facts must survive it just like post-scoped ones.
func TestReconcileUserCountsBothFactScopes(t *testing.T) {
	env := newJobTestEnv(t)
	ctx := t.Context()
	actor := env.seedUser(t, "actor")
	author := env.seedUser(t, "author")

	post := &model.Post{UserID: author.ID, CategoryID: 1, Title: "hello", Content: "world"}
	require.NoError(t, env.db.WithContext(ctx).Create(post).Error)
	comment := &model.Comment{PostID: post.ID, UserID: author.ID, Content: "first"}
	require.NoError(t, env.db.WithContext(ctx).Create(comment).Error)

	require.NoError(t, env.postActionRepo.CreateLike(ctx, &model.Like{
		UserID: actor.ID, PostID: post.ID, Action: model.ReactionLike,
	}))
	require.NoError(t, env.commentActionRepo.CreateLike(ctx, &model.CommentLike{
		UserID: actor.ID, CommentID: comment.ID, Action: model.ReactionDislike,
	}))
	require.NoError(t, env.commentActionRepo.CreateFavorite(ctx, &model.FavoriteComment{
		UserID: actor.ID, CommentID: comment.ID,
	}))

	// live-path counters matching the facts above
	require.NoError(t, env.userMetricSvc.AdjustGivenReaction(ctx, actor.ID, model.ReactionLike, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustGivenReaction(ctx, actor.ID, model.ReactionDislike, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustFavorites(ctx, actor.ID, model.DirectionSum))

	require.NoError(t, env.job.reconcileUser(ctx, actor.ID))

	metric, err := env.userMetricSvc.GetByUserID(ctx, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.LikesGivenCount)
	assert.Equal(t, 1, metric.DislikesGivenCount)
	assert.Equal(t, 1, metric.FavoritesCount)
}

// A drifted counter converges back to what the facts say.
func TestReconcileUserRepairsDrift(t *testing.T) {
	env := newJobTestEnv(t)
	ctx := t.Context()
	actor := env.seedUser(t, "actor")

	require.NoError(t, env.userMetricRepo.Increment(ctx, actor.ID, repository.ColLikesGiven, 5))

	require.NoError(t, env.job.reconcileUser(ctx, actor.ID))

	metric, err := env.userMetricSvc.GetByUserID(ctx, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, metric.LikesGivenCount)
}

func TestReconcilePostRecountsFacts(t *testing.T) {
	env := newJobTestEnv(t)
	ctx := t.Context()
	actor := env.seedUser(t, "actor")
	author := env.seedUser(t, "author")

	post := &model.Post{UserID: author.ID, CategoryID: 1, Title: "hello", Content: "world"}
	require.NoError(t, env.db.WithContext(ctx).Create(post).Error)
	require.NoError(t, env.postMetricRepo.Create(ctx, &model.PostMetric{PostID: post.ID}))

	require.NoError(t, env.postActionRepo.CreateLike(ctx, &model.Like{
		UserID: actor.ID, PostID: post.ID, Action: model.ReactionLike,
	}))
	// drift the counter away from the single fact
	require.NoError(t, env.postMetricRepo.Increment(ctx, post.ID, repository.ColLikes, 3))

	require.NoError(t, env.job.reconcilePost(ctx, post.ID))

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.LikesCount)
	assert.Equal(t, metric.ComputeEngagement(), metric.EngagementScore)
}
