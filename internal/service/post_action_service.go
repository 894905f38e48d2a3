package service

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/pagination"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// PostActionState aggregates the caller's standing facts against one post.
type PostActionState struct {
	Reaction    *model.Reaction
	IsFavorited bool
}

type PostActionService interface {
	React(ctx context.Context, userID, postID uint64, action model.Reaction) error
	RemoveReaction(ctx context.Context, userID, postID uint64) error
	GetReaction(ctx context.Context, userID, postID uint64) (*model.Reaction, error)
	Favorite(ctx context.Context, userID, postID uint64) error
	Unfavorite(ctx context.Context, userID, postID uint64) error
	IsFavorited(ctx context.Context, userID, postID uint64) (bool, error)
	GetActionState(ctx context.Context, userID, postID uint64) (*PostActionState, error)
	Share(ctx context.Context, userID, postID uint64) error
	GetLikedPosts(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.Post], error)
	GetFavoritePosts(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.Post], error)
	GetLikeCount(ctx context.Context, postID uint64) (int64, error)
}

type postActionServiceImpl struct {
	postActionRepo    repository.PostActionRepo
	postRepo          repository.PostRepo
	postMetricService PostMetricService
	userMetricService UserMetricService
}

func NewPostActionService(
	postActionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	postMetricService PostMetricService,
	userMetricService UserMetricService,
) PostActionService {
	return &postActionServiceImpl{
		postActionRepo:    postActionRepo,
		postRepo:          postRepo,
		postMetricService: postMetricService,
		userMetricService: userMetricService,
	}
}

// React records a like or dislike. A pair holds at most one reaction row,
// so reacting again with the other kind swaps the row and moves both
// counters; repeating the same kind is a conflict.
func (s *postActionServiceImpl) React(ctx context.Context, userID, postID uint64, action model.Reaction) error {
	if userID == 0 || postID == 0 || !action.Valid() {
		return ErrParamInvalid
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}

	existing, err := s.postActionRepo.GetLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Action == action {
			return ErrActionDuplicate
		}
		if err = s.postActionRepo.DeleteLike(ctx, userID, postID); err != nil {
			return err
		}
		if err = s.postActionRepo.CreateLike(ctx, &model.Like{UserID: userID, PostID: postID, Action: action}); err != nil {
			return err
		}
		if err = s.postMetricService.AdjustReaction(ctx, postID, existing.Action, model.DirectionReduce); err != nil {
			return err
		}
		if err = s.postMetricService.AdjustReaction(ctx, postID, action, model.DirectionSum); err != nil {
			return err
		}
		if err = s.userMetricService.AdjustGivenReaction(ctx, userID, existing.Action, model.DirectionReduce); err != nil {
			return err
		}
		return s.userMetricService.AdjustGivenReaction(ctx, userID, action, model.DirectionSum)
	}

	err = s.postActionRepo.CreateLike(ctx, &model.Like{UserID: userID, PostID: postID, Action: action})
	if err != nil {
		if isDuplicateError(err) {
			return ErrActionDuplicate
		}
		return err
	}
	_ = redis.DeleteKey(ctx, consts.PostLikeCountKey+strconv.FormatUint(postID, 10))

	if err = s.postMetricService.AdjustReaction(ctx, postID, action, model.DirectionSum); err != nil {
		return err
	}
	return s.userMetricService.AdjustGivenReaction(ctx, userID, action, model.DirectionSum)
}

func (s *postActionServiceImpl) RemoveReaction(ctx context.Context, userID, postID uint64) error {
	if userID == 0 || postID == 0 {
		return ErrParamInvalid
	}
	existing, err := s.postActionRepo.GetLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrLikeNotFound
	}
	if err = s.postActionRepo.DeleteLike(ctx, userID, postID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.PostLikeCountKey+strconv.FormatUint(postID, 10))

	if err = s.postMetricService.AdjustReaction(ctx, postID, existing.Action, model.DirectionReduce); err != nil {
		return err
	}
	return s.userMetricService.AdjustGivenReaction(ctx, userID, existing.Action, model.DirectionReduce)
}

func (s *postActionServiceImpl) GetReaction(ctx context.Context, userID, postID uint64) (*model.Reaction, error) {
	if userID == 0 || postID == 0 {
		return nil, ErrParamInvalid
	}
	existing, err := s.postActionRepo.GetLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	action := existing.Action
	return &action, nil
}

func (s *postActionServiceImpl) Favorite(ctx context.Context, userID, postID uint64) error {
	if userID == 0 || postID == 0 {
		return ErrParamInvalid
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}

	err := s.postActionRepo.CreateFavorite(ctx, &model.FavoritePost{UserID: userID, PostID: postID})
	if err != nil {
		if isDuplicateError(err) {
			return ErrFavoriteExist
		}
		return err
	}
	_ = redis.DeleteKey(ctx, consts.PostFavoriteCountKey+strconv.FormatUint(postID, 10))

	if err = s.postMetricService.AdjustFavorites(ctx, postID, model.DirectionSum); err != nil {
		return err
	}
	return s.userMetricService.AdjustFavorites(ctx, userID, model.DirectionSum)
}

func (s *postActionServiceImpl) Unfavorite(ctx context.Context, userID, postID uint64) error {
	if userID == 0 || postID == 0 {
		return ErrParamInvalid
	}
	exists, err := s.postActionRepo.CheckFavoriteExists(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFavoriteNotFound
	}
	if err = s.postActionRepo.DeleteFavorite(ctx, userID, postID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.PostFavoriteCountKey+strconv.FormatUint(postID, 10))

	if err = s.postMetricService.AdjustFavorites(ctx, postID, model.DirectionReduce); err != nil {
		return err
	}
	return s.userMetricService.AdjustFavorites(ctx, userID, model.DirectionReduce)
}

func (s *postActionServiceImpl) IsFavorited(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 || postID == 0 {
		return false, ErrParamInvalid
	}
	return s.postActionRepo.CheckFavoriteExists(ctx, userID, postID)
}

// GetActionState fans the two fact lookups out concurrently.
func (s *postActionServiceImpl) GetActionState(ctx context.Context, userID, postID uint64) (*PostActionState, error) {
	if userID == 0 || postID == 0 {
		return nil, ErrParamInvalid
	}

	state := &PostActionState{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		like, err := s.postActionRepo.GetLike(gCtx, userID, postID)
		if err != nil {
			return err
		}
		if like != nil {
			action := like.Action
			state.Reaction = &action
		}
		return nil
	})
	g.Go(func() error {
		favorited, err := s.postActionRepo.CheckFavoriteExists(gCtx, userID, postID)
		if err != nil {
			return err
		}
		state.IsFavorited = favorited
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

// Share only bumps counters; there is no share fact row, so repeated
// shares all count.
func (s *postActionServiceImpl) Share(ctx context.Context, userID, postID uint64) error {
	if userID == 0 || postID == 0 {
		return ErrParamInvalid
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	if err := s.postMetricService.AdjustShares(ctx, postID, model.DirectionSum); err != nil {
		return err
	}
	return s.userMetricService.AdjustShares(ctx, userID, model.DirectionSum)
}

func (s *postActionServiceImpl) GetLikedPosts(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.Post], error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	postIDs, total, err := s.postActionRepo.GetLikedPostIDs(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	posts, err := s.loadInOrder(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(posts, total, p), nil
}

func (s *postActionServiceImpl) GetFavoritePosts(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*model.Post], error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	postIDs, total, err := s.postActionRepo.GetFavoritePostIDs(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	posts, err := s.loadInOrder(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(posts, total, p), nil
}

// GetLikeCount serves the hot counter cache-aside; the fact table stays
// authoritative.
func (s *postActionServiceImpl) GetLikeCount(ctx context.Context, postID uint64) (int64, error) {
	if postID == 0 {
		return 0, ErrParamInvalid
	}
	key := consts.PostLikeCountKey + strconv.FormatUint(postID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	count, err := s.postActionRepo.CountReactionsByPostID(ctx, postID, model.ReactionLike)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Minute*10)
	return count, nil
}

// loadInOrder resolves posts preserving the fact-table ordering; posts
// deleted since the fact was written are silently skipped.
func (s *postActionServiceImpl) loadInOrder(ctx context.Context, postIDs []uint64) ([]*model.Post, error) {
	posts, err := s.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	ordered := make([]*model.Post, 0, len(postIDs))
	for _, id := range postIDs {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return ordered, nil
}

func (s *postActionServiceImpl) requirePost(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}
