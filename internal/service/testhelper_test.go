package service

import (
	"Quill/internal/model"
	"Quill/internal/repository"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// A single connection keeps shared-cache sqlite honest under the
// concurrency tests.
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

type testEnv struct {
	db *gorm.DB

	userRepo          repository.UserRepo
	categoryRepo      repository.CategoryRepo
	postRepo          repository.PostRepo
	commentRepo       repository.CommentRepo
	userMetricRepo    repository.UserMetricRepo
	postMetricRepo    repository.PostMetricRepo
	commentMetricRepo repository.CommentMetricRepo
	postActionRepo    repository.PostActionRepo
	commentActionRepo repository.CommentActionRepo
	followerRepo      repository.FollowerRepo

	userMetricSvc    UserMetricService
	postMetricSvc    PostMetricService
	commentMetricSvc CommentMetricService
	userSvc          UserService
	categorySvc      CategoryService
	postSvc          PostService
	commentSvc       CommentService
	postActionSvc    PostActionService
	commentActionSvc CommentActionService
	followerSvc      FollowerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{db: db}
	env.userRepo = repository.NewUserRepo(db)
	env.categoryRepo = repository.NewCategoryRepo(db)
	env.postRepo = repository.NewPostRepo(db)
	env.commentRepo = repository.NewCommentRepo(db)
	env.userMetricRepo = repository.NewUserMetricRepository(db)
	env.postMetricRepo = repository.NewPostMetricRepository(db)
	env.commentMetricRepo = repository.NewCommentMetricRepository(db)
	env.postActionRepo = repository.NewPostActionRepo(db)
	env.commentActionRepo = repository.NewCommentActionRepo(db)
	env.followerRepo = repository.NewFollowerRepo(db)

	env.userMetricSvc = NewUserMetricService(env.userMetricRepo, env.userRepo)
	env.postMetricSvc = NewPostMetricService(env.postMetricRepo)
	env.commentMetricSvc = NewCommentMetricService(env.commentMetricRepo)
	env.userSvc = NewUserService(env.userRepo, env.userMetricSvc)
	env.categorySvc = NewCategoryService(env.categoryRepo)
	env.postSvc = NewPostService(
		env.postRepo, env.categoryRepo, env.commentRepo,
		env.postMetricRepo, env.commentMetricRepo,
		env.postActionRepo, env.commentActionRepo,
		env.postMetricSvc, env.userMetricSvc,
	)
	env.commentSvc = NewCommentService(
		env.commentRepo, env.postRepo,
		env.commentActionRepo, env.commentMetricRepo,
		env.commentMetricSvc, env.postMetricSvc, env.userMetricSvc,
	)
	env.postActionSvc = NewPostActionService(env.postActionRepo, env.postRepo, env.postMetricSvc, env.userMetricSvc)
	env.commentActionSvc = NewCommentActionService(env.commentActionRepo, env.commentRepo, env.commentMetricSvc, env.userMetricSvc)
	env.followerSvc = NewFollowerService(env.followerRepo, env.userRepo, env.userMetricSvc)
	return env
}

func (e *testEnv) seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	password := "hashed-password"
	email := name + "@example.com"
	user := &model.User{Username: &name, Email: &email, Password: &password}
	require.NoError(t, e.db.Create(user).Error)
	require.NoError(t, e.userMetricRepo.Create(t.Context(), &model.UserMetric{UserID: user.ID}))
	return user
}

func (e *testEnv) seedCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, IsActive: true}
	require.NoError(t, e.db.Create(category).Error)
	return category
}

func (e *testEnv) seedPost(t *testing.T, userID, categoryID uint64, title string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, CategoryID: categoryID, Title: title, Content: "body of " + title}
	require.NoError(t, e.db.Create(post).Error)
	require.NoError(t, e.postMetricRepo.Create(t.Context(), &model.PostMetric{PostID: post.ID}))
	return post
}

func (e *testEnv) seedComment(t *testing.T, postID, userID, parentID uint64, content string) *model.Comment {
	t.Helper()
	comment := &model.Comment{PostID: postID, UserID: userID, ParentID: parentID, Content: content}
	require.NoError(t, e.db.Create(comment).Error)
	require.NoError(t, e.commentMetricRepo.Create(t.Context(), &model.CommentMetric{CommentID: comment.ID}))
	return comment
}
