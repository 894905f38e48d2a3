package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/pagination"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type PostService interface {
	Create(ctx context.Context, userID uint64, req *dto.PostCreateReq) (*dto.PostView, error)
	Update(ctx context.Context, userID, postID uint64, req *dto.PostUpdateReq, isAdmin bool) (*dto.PostView, error)
	Remove(ctx context.Context, userID, postID uint64, isAdmin bool) error
	GetDetail(ctx context.Context, postID uint64) (*dto.PostDetailResp, error)
	Search(ctx context.Context, req *dto.PostSearchReq, p pagination.Params) (*pagination.Page[*dto.PostView], error)
	GetTrending(ctx context.Context, days int, p pagination.Params) (*pagination.Page[*dto.PostView], error)
	ListByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*dto.PostView], error)
	ListByCategory(ctx context.Context, categoryID uint64, p pagination.Params) (*pagination.Page[*dto.PostView], error)
}

type postServiceImpl struct {
	postRepo          repository.PostRepo
	categoryRepo      repository.CategoryRepo
	commentRepo       repository.CommentRepo
	postMetricRepo    repository.PostMetricRepo
	commentMetricRepo repository.CommentMetricRepo
	postActionRepo    repository.PostActionRepo
	commentActionRepo repository.CommentActionRepo
	postMetricService PostMetricService
	userMetricService UserMetricService
}

func NewPostService(
	postRepo repository.PostRepo,
	categoryRepo repository.CategoryRepo,
	commentRepo repository.CommentRepo,
	postMetricRepo repository.PostMetricRepo,
	commentMetricRepo repository.CommentMetricRepo,
	postActionRepo repository.PostActionRepo,
	commentActionRepo repository.CommentActionRepo,
	postMetricService PostMetricService,
	userMetricService UserMetricService,
) PostService {
	return &postServiceImpl{
		postRepo:          postRepo,
		categoryRepo:      categoryRepo,
		commentRepo:       commentRepo,
		postMetricRepo:    postMetricRepo,
		commentMetricRepo: commentMetricRepo,
		postActionRepo:    postActionRepo,
		commentActionRepo: commentActionRepo,
		postMetricService: postMetricService,
		userMetricService: userMetricService,
	}
}

func (s *postServiceImpl) Create(ctx context.Context, userID uint64, req *dto.PostCreateReq) (*dto.PostView, error) {
	if userID == 0 || req == nil {
		return nil, ErrParamInvalid
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if !category.IsActive {
		return nil, ErrCategoryInactive
	}

	post := &model.Post{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
	}
	if err = s.postRepo.Create(ctx, nil, post); err != nil {
		return nil, err
	}
	if err = s.postMetricService.CreateFor(ctx, post.ID); err != nil {
		return nil, err
	}
	if err = s.userMetricService.AdjustPosts(ctx, userID, model.DirectionSum); err != nil {
		return nil, err
	}
	return toPostView(post), nil
}

func (s *postServiceImpl) Update(ctx context.Context, userID, postID uint64, req *dto.PostUpdateReq, isAdmin bool) (*dto.PostView, error) {
	if userID == 0 || postID == 0 || req == nil {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return nil, ErrNoPermission
	}

	if req.CategoryID != post.CategoryID {
		category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		if !category.IsActive {
			return nil, ErrCategoryInactive
		}
		post.CategoryID = req.CategoryID
	}
	post.Title = req.Title
	post.Content = req.Content
	if err = s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if err = s.postMetricService.AdjustEdits(ctx, postID, model.DirectionSum); err != nil {
		return nil, err
	}
	if err = s.userMetricService.AdjustEdits(ctx, post.UserID, model.DirectionSum); err != nil {
		return nil, err
	}
	return toPostView(post), nil
}

// Remove tears down the post and everything hanging off it: the comment
// tree with its metrics and facts, the post's own facts and metric, the
// post row. A single transaction, then the author counters walk back.
func (s *postServiceImpl) Remove(ctx context.Context, userID, postID uint64, isAdmin bool) error {
	if userID == 0 || postID == 0 {
		return ErrParamInvalid
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return ErrNoPermission
	}

	comments, err := s.commentRepo.FindAllByPostID(ctx, postID)
	if err != nil {
		return err
	}
	commentIDs := make([]uint64, 0, len(comments))
	lostByAuthor := make(map[uint64]int, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		lostByAuthor[c.UserID]++
	}

	// snapshot every fact row the teardown deletes, post-scoped and
	// comment-scoped, so the actors' given-counters walk back with them
	postLikes, err := s.postActionRepo.FindLikesByPostID(ctx, postID)
	if err != nil {
		return err
	}
	postFavorites, err := s.postActionRepo.FindFavoritesByPostID(ctx, postID)
	if err != nil {
		return err
	}
	commentLikes, err := s.commentActionRepo.FindLikesByCommentIDs(ctx, commentIDs)
	if err != nil {
		return err
	}
	commentFavorites, err := s.commentActionRepo.FindFavoritesByCommentIDs(ctx, commentIDs)
	if err != nil {
		return err
	}

	err = s.postRepo.Transaction(ctx, func(tx *gorm.DB) error {
		commentIDs, err := s.commentRepo.DeleteByPostID(ctx, tx, postID)
		if err != nil {
			return err
		}
		if err = s.commentMetricRepo.DeleteByCommentIDs(ctx, tx, commentIDs); err != nil {
			return err
		}
		if err = s.commentActionRepo.DeleteFactsByCommentIDs(ctx, tx, commentIDs); err != nil {
			return err
		}
		if err = s.postActionRepo.DeleteFactsByPostID(ctx, tx, postID); err != nil {
			return err
		}
		if err = s.postMetricRepo.Delete(ctx, tx, postID); err != nil {
			return err
		}
		return s.postRepo.Delete(ctx, tx, postID)
	})
	if err != nil {
		return err
	}

	if err = s.userMetricService.AdjustPosts(ctx, post.UserID, model.DirectionReduce); err != nil {
		return err
	}
	for author, lost := range lostByAuthor {
		if err = s.userMetricService.AdjustCommentsBy(ctx, author, -lost); err != nil {
			return err
		}
	}
	for _, like := range postLikes {
		if err = s.userMetricService.AdjustGivenReaction(ctx, like.UserID, like.Action, model.DirectionReduce); err != nil {
			return err
		}
	}
	for _, like := range commentLikes {
		if err = s.userMetricService.AdjustGivenReaction(ctx, like.UserID, like.Action, model.DirectionReduce); err != nil {
			return err
		}
	}
	for _, fav := range postFavorites {
		if err = s.userMetricService.AdjustFavorites(ctx, fav.UserID, model.DirectionReduce); err != nil {
			return err
		}
	}
	for _, fav := range commentFavorites {
		if err = s.userMetricService.AdjustFavorites(ctx, fav.UserID, model.DirectionReduce); err != nil {
			return err
		}
	}
	return nil
}

func (s *postServiceImpl) GetDetail(ctx context.Context, postID uint64) (*dto.PostDetailResp, error) {
	if postID == 0 {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	metric, err := s.postMetricService.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// a failed view bump never blocks the read
	if err = s.postMetricService.AddViews(ctx, postID, 1); err != nil {
		log.WarnContext(ctx, "view tracking failed", "postId", postID, "err", err)
	}

	metricView := &dto.PostMetricView{}
	_ = copier.Copy(metricView, metric)
	return &dto.PostDetailResp{
		Post:   toPostView(post),
		Metric: metricView,
	}, nil
}

func (s *postServiceImpl) Search(ctx context.Context, req *dto.PostSearchReq, p pagination.Params) (*pagination.Page[*dto.PostView], error) {
	filter := repository.PostFilter{}
	if req != nil {
		filter = repository.PostFilter{
			Title:         req.Title,
			Author:        req.Author,
			CategoryID:    req.CategoryID,
			MinViews:      req.MinViews,
			MaxViews:      req.MaxViews,
			MinLikes:      req.MinLikes,
			MaxLikes:      req.MaxLikes,
			MinDislikes:   req.MinDislikes,
			MaxDislikes:   req.MaxDislikes,
			MinComments:   req.MinComments,
			MaxComments:   req.MaxComments,
			MinFavorites:  req.MinFavorites,
			MaxFavorites:  req.MaxFavorites,
			CreatedAfter:  req.CreatedAfter,
			CreatedBefore: req.CreatedBefore,
		}
	}
	page, err := s.postRepo.Search(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(post model.Post) *dto.PostView {
		return toPostView(&post)
	}), nil
}

// GetTrending serves the engagement ranking over a 7 or 30 day window,
// cache-aside with a short TTL since the underlying scores only move when
// the reconcile job runs.
func (s *postServiceImpl) GetTrending(ctx context.Context, days int, p pagination.Params) (*pagination.Page[*dto.PostView], error) {
	if days != 7 && days != 30 {
		return nil, ErrParamInvalid
	}

	key := fmt.Sprintf("%s%d:%d:%d", consts.PostTrendingKey, days, p.Page, p.Limit)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		page := &pagination.Page[*dto.PostView]{}
		if err = json.Unmarshal([]byte(cached), page); err == nil {
			return page, nil
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	raw, err := s.postRepo.FindTrending(ctx, since, p)
	if err != nil {
		return nil, err
	}
	page := pagination.Map(raw, func(post model.Post) *dto.PostView {
		return toPostView(&post)
	})

	if payload, err := json.Marshal(page); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(payload), time.Minute*5)
	}
	return page, nil
}

func (s *postServiceImpl) ListByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*dto.PostView], error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	page, err := s.postRepo.FindByUser(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(post model.Post) *dto.PostView {
		return toPostView(&post)
	}), nil
}

func (s *postServiceImpl) ListByCategory(ctx context.Context, categoryID uint64, p pagination.Params) (*pagination.Page[*dto.PostView], error) {
	if categoryID == 0 {
		return nil, ErrParamInvalid
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	page, err := s.postRepo.FindByCategory(ctx, categoryID, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(post model.Post) *dto.PostView {
		return toPostView(&post)
	}), nil
}

func toPostView(post *model.Post) *dto.PostView {
	view := &dto.PostView{}
	_ = copier.Copy(view, post)
	return view
}
