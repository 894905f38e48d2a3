package api

import "Quill/internal/api/handler"

// HandlersGroup bundles the initialized handler instances for the router.
type HandlersGroup struct {
	UserHandler          *handler.UserHandler
	UserFollowHandler    *handler.UserFollowHandler
	CategoryHandler      *handler.CategoryHandler
	PostHandler          *handler.PostHandler
	PostActionHandler    *handler.PostActionHandler
	CommentHandler       *handler.CommentHandler
	CommentActionHandler *handler.CommentActionHandler
	MetricHandler        *handler.MetricHandler
}
