package consts

const (
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	PostLikeCountKey      = "post:like:count:"
	PostFavoriteCountKey  = "post:favorite:count:"
	PostCommentCountKey   = "post:comment:count:"
	CommentLikeCountKey   = "comment:like:count:"
	UserMetricKey         = "metric:user:"
	PostMetricKey         = "metric:post:"
	CommentMetricKey      = "metric:comment:"

	UserMetricDirtyKey    = "metric:dirty:user"
	PostMetricDirtyKey    = "metric:dirty:post"
	CommentMetricDirtyKey = "metric:dirty:comment"

	PostTrendingKey = "post:trending:"

	TokenRevokedKey = "token:revoked:"
)

const (
	MetricReconcileLock = "lock:metric:reconcile"
)
