package wire

import (
	"Quill/internal/api"
	"Quill/internal/api/handler"
	"Quill/internal/job"
	"Quill/internal/pkg/cron"
	"Quill/internal/repository"
	"Quill/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer bundles the top-level components the process runs.
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	userMetricRepo := repository.NewUserMetricRepository(db)
	postMetricRepo := repository.NewPostMetricRepository(db)
	commentMetricRepo := repository.NewCommentMetricRepository(db)
	postActionRepo := repository.NewPostActionRepo(db)
	commentActionRepo := repository.NewCommentActionRepo(db)
	followerRepo := repository.NewFollowerRepo(db)

	userMetricService := service.NewUserMetricService(userMetricRepo, userRepo)
	postMetricService := service.NewPostMetricService(postMetricRepo)
	commentMetricService := service.NewCommentMetricService(commentMetricRepo)

	userService := service.NewUserService(userRepo, userMetricService)
	categoryService := service.NewCategoryService(categoryRepo)
	postService := service.NewPostService(
		postRepo, categoryRepo, commentRepo,
		postMetricRepo, commentMetricRepo,
		postActionRepo, commentActionRepo,
		postMetricService, userMetricService,
	)
	commentService := service.NewCommentService(
		commentRepo, postRepo,
		commentActionRepo, commentMetricRepo,
		commentMetricService, postMetricService, userMetricService,
	)
	postActionService := service.NewPostActionService(postActionRepo, postRepo, postMetricService, userMetricService)
	commentActionService := service.NewCommentActionService(commentActionRepo, commentRepo, commentMetricService, userMetricService)
	followerService := service.NewFollowerService(followerRepo, userRepo, userMetricService)

	handlers := &api.HandlersGroup{
		UserHandler:          handler.NewUserHandler(userService),
		UserFollowHandler:    handler.NewUserFollowHandler(followerService),
		CategoryHandler:      handler.NewCategoryHandler(categoryService),
		PostHandler:          handler.NewPostHandler(postService),
		PostActionHandler:    handler.NewPostActionHandler(postActionService),
		CommentHandler:       handler.NewCommentHandler(commentService),
		CommentActionHandler: handler.NewCommentActionHandler(commentActionService),
		MetricHandler:        handler.NewMetricHandler(userMetricService, postMetricService, commentMetricService),
	}

	router := api.SetupRouter(handlers)

	reconcileJob := job.NewMetricReconcileJob(
		postActionRepo, commentActionRepo, commentRepo, followerRepo, userRepo,
		postMetricService, commentMetricService, userMetricService,
	)
	cronMgr := cron.NewCronManager(reconcileJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
