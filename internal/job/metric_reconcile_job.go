package job

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/logger"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"Quill/internal/service"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetricReconcileJob drains the dirty-sets and rebuilds each flagged
// metric row from the fact tables. Counters drift only through bugs or
// manual intervention; this job is what guarantees they converge back.
type MetricReconcileJob struct {
	postActionRepo       repository.PostActionRepo
	commentActionRepo    repository.CommentActionRepo
	commentRepo          repository.CommentRepo
	followerRepo         repository.FollowerRepo
	userRepo             repository.UserRepo
	postMetricService    service.PostMetricService
	commentMetricService service.CommentMetricService
	userMetricService    service.UserMetricService
}

func NewMetricReconcileJob(
	postActionRepo repository.PostActionRepo,
	commentActionRepo repository.CommentActionRepo,
	commentRepo repository.CommentRepo,
	followerRepo repository.FollowerRepo,
	userRepo repository.UserRepo,
	postMetricService service.PostMetricService,
	commentMetricService service.CommentMetricService,
	userMetricService service.UserMetricService,
) *MetricReconcileJob {
	return &MetricReconcileJob{
		postActionRepo:       postActionRepo,
		commentActionRepo:    commentActionRepo,
		commentRepo:          commentRepo,
		followerRepo:         followerRepo,
		userRepo:             userRepo,
		postMetricService:    postMetricService,
		commentMetricService: commentMetricService,
		userMetricService:    userMetricService,
	}
}

func (s *MetricReconcileJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.MetricReconcileLock, lockValue, time.Minute*10, 1)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.MetricReconcileLock, lockValue)

	s.reconcilePosts(ctx)
	s.reconcileComments(ctx)
	s.reconcileUsers(ctx)

	log.InfoContext(ctx, "metric reconcile pass finished")
}

func (s *MetricReconcileJob) reconcilePosts(ctx context.Context) {
	for _, postID := range drainDirtySet(ctx, consts.PostMetricDirtyKey) {
		if err := s.reconcilePost(ctx, postID); err != nil {
			log.ErrorContext(ctx, "post metric reconcile failed", "postId", postID, "err", err)
		}
	}
}

// reconcilePost recounts the authoritative facts, carries over the
// counters with no fact table (views, shares, edits), and CAS-writes the
// result; a lost race just leaves the row for the next pass.
func (s *MetricReconcileJob) reconcilePost(ctx context.Context, postID uint64) error {
	metric, err := s.postMetricService.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, service.ErrMetricNotFound) {
			return nil
		}
		return err
	}

	likes, err := s.postActionRepo.CountReactionsByPostID(ctx, postID, model.ReactionLike)
	if err != nil {
		return err
	}
	dislikes, err := s.postActionRepo.CountReactionsByPostID(ctx, postID, model.ReactionDislike)
	if err != nil {
		return err
	}
	favorites, err := s.postActionRepo.CountFavoritesByPostID(ctx, postID)
	if err != nil {
		return err
	}
	replies, err := s.commentRepo.CountByPostID(ctx, postID)
	if err != nil {
		return err
	}

	metric.LikesCount = int(likes)
	metric.DislikesCount = int(dislikes)
	metric.FavoritesCount = int(favorites)
	metric.RepliesCount = int(replies)

	_, err = s.postMetricService.Update(ctx, metric)
	if errors.Is(err, service.ErrMetricConflict) {
		_ = redis.SAdd(ctx, consts.PostMetricDirtyKey, postID)
		return nil
	}
	return err
}

func (s *MetricReconcileJob) reconcileComments(ctx context.Context) {
	for _, commentID := range drainDirtySet(ctx, consts.CommentMetricDirtyKey) {
		if err := s.reconcileComment(ctx, commentID); err != nil {
			log.ErrorContext(ctx, "comment metric reconcile failed", "commentId", commentID, "err", err)
		}
	}
}

func (s *MetricReconcileJob) reconcileComment(ctx context.Context, commentID uint64) error {
	metric, err := s.commentMetricService.GetByCommentID(ctx, commentID)
	if err != nil {
		if errors.Is(err, service.ErrMetricNotFound) {
			return nil
		}
		return err
	}

	likes, err := s.commentActionRepo.CountReactionsByCommentID(ctx, commentID, model.ReactionLike)
	if err != nil {
		return err
	}
	dislikes, err := s.commentActionRepo.CountReactionsByCommentID(ctx, commentID, model.ReactionDislike)
	if err != nil {
		return err
	}
	favorites, err := s.commentActionRepo.CountFavoritesByCommentID(ctx, commentID)
	if err != nil {
		return err
	}

	metric.LikesCount = int(likes)
	metric.DislikesCount = int(dislikes)
	metric.FavoritesCount = int(favorites)

	_, err = s.commentMetricService.Update(ctx, metric)
	if errors.Is(err, service.ErrMetricConflict) {
		_ = redis.SAdd(ctx, consts.CommentMetricDirtyKey, commentID)
		return nil
	}
	return err
}

func (s *MetricReconcileJob) reconcileUsers(ctx context.Context) {
	for _, userID := range drainDirtySet(ctx, consts.UserMetricDirtyKey) {
		if err := s.reconcileUser(ctx, userID); err != nil {
			log.ErrorContext(ctx, "user metric reconcile failed", "userId", userID, "err", err)
		}
	}
}

func (s *MetricReconcileJob) reconcileUser(ctx context.Context, userID uint64) error {
	metric, err := s.userMetricService.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrMetricNotFound) || errors.Is(err, service.ErrUserNotFound) {
			return nil
		}
		return err
	}

	posts, err := s.userRepo.CountPostsByUserID(ctx, userID)
	if err != nil {
		return err
	}
	comments, err := s.userRepo.CountCommentsByUserID(ctx, userID)
	if err != nil {
		return err
	}
	// given-counters span both fact scopes: post reactions and comment
	// reactions land in the same columns
	postLikes, err := s.postActionRepo.CountReactionsByUserID(ctx, userID, model.ReactionLike)
	if err != nil {
		return err
	}
	commentLikes, err := s.commentActionRepo.CountReactionsByUserID(ctx, userID, model.ReactionLike)
	if err != nil {
		return err
	}
	postDislikes, err := s.postActionRepo.CountReactionsByUserID(ctx, userID, model.ReactionDislike)
	if err != nil {
		return err
	}
	commentDislikes, err := s.commentActionRepo.CountReactionsByUserID(ctx, userID, model.ReactionDislike)
	if err != nil {
		return err
	}
	postFavorites, err := s.postActionRepo.CountFavoritesByUserID(ctx, userID)
	if err != nil {
		return err
	}
	commentFavorites, err := s.commentActionRepo.CountFavoritesByUserID(ctx, userID)
	if err != nil {
		return err
	}
	followers, err := s.followerRepo.CountFollowers(ctx, userID)
	if err != nil {
		return err
	}
	following, err := s.followerRepo.CountFollowing(ctx, userID)
	if err != nil {
		return err
	}

	metric.PostsCount = int(posts)
	metric.CommentsCount = int(comments)
	metric.LikesGivenCount = int(postLikes + commentLikes)
	metric.DislikesGivenCount = int(postDislikes + commentDislikes)
	metric.FavoritesCount = int(postFavorites + commentFavorites)
	metric.FollowersCount = int(followers)
	metric.FollowingCount = int(following)

	_, err = s.userMetricService.Update(ctx, metric)
	if errors.Is(err, service.ErrMetricConflict) {
		_ = redis.SAdd(ctx, consts.UserMetricDirtyKey, userID)
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// drainDirtySet atomically claims the pending ids by renaming the set,
// reads them out, and drops the processing copy. No redis, nothing to do.
func drainDirtySet(ctx context.Context, key string) []uint64 {
	processingKey := key + ":processing"
	if err := redis.Rename(ctx, key, processingKey); err != nil {
		return nil
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "read dirty set failed", "key", key, "err", err)
		return nil
	}

	ids := make([]uint64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			log.WarnContext(ctx, "dirty set holds a non-numeric member", "key", key, "member", member)
			continue
		}
		ids = append(ids, id)
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "drop processing set failed", "key", key, "err", err)
	}
	return ids
}
