package api

import (
	"Quill/internal/api/middleware"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			optGroup := userGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("/:user_id/profile", group.UserHandler.GetProfile)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
			}

			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("/:user_id/ban", group.UserHandler.BanUser)
				adminGroup.POST("/:user_id/unban", group.UserHandler.UnbanUser)
			}
		}

		relationGroup := apiGroup.Group("/user-relation")
		{
			relationGroup.Use(middleware.AuthMiddleware())
			{
				relationGroup.GET("/followers", group.UserFollowHandler.GetFollowers)
				relationGroup.GET("/followers/count", group.UserFollowHandler.GetFollowerCount)
				relationGroup.GET("/followings", group.UserFollowHandler.GetFollowing)
				relationGroup.GET("/followings/count", group.UserFollowHandler.GetFollowingCount)
				relationGroup.GET("/isfollow/:following_id", group.UserFollowHandler.IsFollowing)
				relationGroup.POST("/follow/:following_id", group.UserFollowHandler.Follow)
				relationGroup.DELETE("/follow/:following_id", group.UserFollowHandler.Unfollow)
			}
		}

		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("", group.CategoryHandler.List)
			categoryGroup.GET("/:category_id", group.CategoryHandler.Get)

			adminGroup := categoryGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("", group.CategoryHandler.Create)
				adminGroup.PUT("/:category_id", group.CategoryHandler.Update)
				adminGroup.POST("/:category_id/activate", group.CategoryHandler.Activate)
				adminGroup.POST("/:category_id/deactivate", group.CategoryHandler.Deactivate)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			optGroup := postGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("/search", group.PostHandler.SearchPost)
				optGroup.GET("/trending/7d", group.PostHandler.GetTrending7Days)
				optGroup.GET("/trending/30d", group.PostHandler.GetTrending30Days)
				optGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
				optGroup.GET("/list/:user_id", group.PostHandler.GetPostsByUser)
				optGroup.GET("/category/:category_id", group.PostHandler.GetPostsByCategory)
				optGroup.GET("/comments/:post_id", group.CommentHandler.GetComments)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.GET("/self", group.PostHandler.GetPostsSelf)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/likes/count/:post_id", group.PostActionHandler.GetLikeCount)

			authGroup := postActionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/likes/:post_id", group.PostActionHandler.React)
				authGroup.POST("/favorites/:post_id", group.PostActionHandler.Favorite)
				authGroup.DELETE("/favorites/:post_id", group.PostActionHandler.Unfavorite)
				authGroup.POST("/shares/:post_id", group.PostActionHandler.Share)
				authGroup.GET("/state/:post_id", group.PostActionHandler.GetActionState)
				authGroup.GET("/liked", group.PostActionHandler.GetLikedPosts)
				authGroup.GET("/favorites", group.PostActionHandler.GetFavoritePosts)
			}
		}

		commentGroup := apiGroup.Group("/comment")
		{
			commentGroup.GET("/replies/:comment_id", group.CommentHandler.GetSubComments)

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.CommentHandler.CreateComment)
				authGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
				authGroup.GET("/self", group.CommentHandler.GetCommentsSelf)
			}
		}

		commentActionGroup := apiGroup.Group("/comment/action")
		{
			commentActionGroup.GET("/likes/count/:comment_id", group.CommentActionHandler.GetLikeCount)

			authGroup := commentActionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/likes/:comment_id", group.CommentActionHandler.React)
				authGroup.POST("/favorites/:comment_id", group.CommentActionHandler.Favorite)
				authGroup.DELETE("/favorites/:comment_id", group.CommentActionHandler.Unfavorite)
			}
		}

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("/post/:post_id", group.MetricHandler.GetPostMetric)
			metricsGroup.GET("/comment/:comment_id", group.MetricHandler.GetCommentMetric)

			authGroup := metricsGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/user/:user_id", group.MetricHandler.GetUserMetric)
			}

			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.PUT("/post/:post_id", group.MetricHandler.RepairPostMetric)
				adminGroup.PUT("/comment/:comment_id", group.MetricHandler.RepairCommentMetric)
			}
		}
	}

	return r
}
