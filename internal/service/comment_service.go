package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"Quill/internal/repository"
	"context"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID uint64, req *dto.CommentCreateReq) (*dto.CommentView, error)
	Update(ctx context.Context, userID, commentID uint64, req *dto.CommentUpdateReq) (*dto.CommentView, error)
	Remove(ctx context.Context, userID, commentID uint64, isAdmin bool) error
	GetByID(ctx context.Context, commentID uint64) (*dto.CommentView, error)
	GetRoots(ctx context.Context, postID uint64, p pagination.Params) (*pagination.Page[*dto.CommentView], error)
	GetReplies(ctx context.Context, commentID uint64, p pagination.Params) (*pagination.Page[*dto.CommentView], error)
	GetByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*dto.CommentView], error)
}

type commentServiceImpl struct {
	commentRepo          repository.CommentRepo
	postRepo             repository.PostRepo
	commentActionRepo    repository.CommentActionRepo
	commentMetricRepo    repository.CommentMetricRepo
	commentMetricService CommentMetricService
	postMetricService    PostMetricService
	userMetricService    UserMetricService
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	commentActionRepo repository.CommentActionRepo,
	commentMetricRepo repository.CommentMetricRepo,
	commentMetricService CommentMetricService,
	postMetricService PostMetricService,
	userMetricService UserMetricService,
) CommentService {
	return &commentServiceImpl{
		commentRepo:          commentRepo,
		postRepo:             postRepo,
		commentActionRepo:    commentActionRepo,
		commentMetricRepo:    commentMetricRepo,
		commentMetricService: commentMetricService,
		postMetricService:    postMetricService,
		userMetricService:    userMetricService,
	}
}

// Create validates the post and, for replies, the parent, then pairs the
// new row with its zeroed metric and the reply bumps on post, parent and
// author.
func (s *commentServiceImpl) Create(ctx context.Context, userID uint64, req *dto.CommentCreateReq) (*dto.CommentView, error) {
	if userID == 0 || req == nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.ParentID > 0 {
		parent, err := s.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCommentNotFound
		}
		if parent.PostID != req.PostID {
			return nil, ErrParamInvalid
		}
	}

	comment := &model.Comment{
		PostID:   req.PostID,
		UserID:   userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	if err = s.commentRepo.Create(ctx, nil, comment); err != nil {
		return nil, err
	}
	if err = s.commentMetricService.CreateFor(ctx, comment.ID); err != nil {
		return nil, err
	}

	if err = s.postMetricService.AdjustReplies(ctx, req.PostID, model.DirectionSum); err != nil {
		return nil, err
	}
	if req.ParentID > 0 {
		if err = s.commentMetricService.AdjustReplies(ctx, req.ParentID, model.DirectionSum); err != nil {
			return nil, err
		}
	}
	if err = s.userMetricService.AdjustComments(ctx, userID, model.DirectionSum); err != nil {
		return nil, err
	}

	return toCommentView(comment), nil
}

func (s *commentServiceImpl) Update(ctx context.Context, userID, commentID uint64, req *dto.CommentUpdateReq) (*dto.CommentView, error) {
	if userID == 0 || commentID == 0 || req == nil {
		return nil, ErrParamInvalid
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrNoPermission
	}

	comment.Content = req.Content
	if err = s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	if err = s.commentMetricService.AdjustEdits(ctx, commentID, model.DirectionSum); err != nil {
		return nil, err
	}
	if err = s.userMetricService.AdjustEdits(ctx, userID, model.DirectionSum); err != nil {
		return nil, err
	}
	return toCommentView(comment), nil
}

// Remove deletes the comment and its whole reply subtree in one
// transaction, then walks the counters back: post replies by the subtree
// size, the parent's replies by one, and each author's comment count by
// what they lost.
func (s *commentServiceImpl) Remove(ctx context.Context, userID, commentID uint64, isAdmin bool) error {
	if userID == 0 || commentID == 0 {
		return ErrParamInvalid
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID && !isAdmin {
		return ErrNoPermission
	}

	subtree, err := s.commentRepo.CollectSubtree(ctx, commentID)
	if err != nil {
		return err
	}
	ids := make([]uint64, 0, len(subtree))
	lostByAuthor := make(map[uint64]int, len(subtree))
	for _, c := range subtree {
		ids = append(ids, c.ID)
		lostByAuthor[c.UserID]++
	}

	// snapshot the fact rows the cascade is about to delete; their actors'
	// given-counters must walk back with them
	likes, err := s.commentActionRepo.FindLikesByCommentIDs(ctx, ids)
	if err != nil {
		return err
	}
	favorites, err := s.commentActionRepo.FindFavoritesByCommentIDs(ctx, ids)
	if err != nil {
		return err
	}

	err = s.commentRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.commentRepo.DeleteByIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.commentMetricRepo.DeleteByCommentIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.commentActionRepo.DeleteFactsByCommentIDs(ctx, tx, ids)
	})
	if err != nil {
		return err
	}

	if err = s.postMetricService.AdjustRepliesBy(ctx, comment.PostID, -len(ids)); err != nil {
		return err
	}
	if comment.ParentID > 0 {
		// parent may have gone in a concurrent cascade; nothing to fix then
		if err = s.commentMetricService.AdjustReplies(ctx, comment.ParentID, model.DirectionReduce); err != nil && err != ErrMetricNotFound {
			return err
		}
	}
	for author, lost := range lostByAuthor {
		if err = s.userMetricService.AdjustCommentsBy(ctx, author, -lost); err != nil {
			return err
		}
	}
	for _, like := range likes {
		if err = s.userMetricService.AdjustGivenReaction(ctx, like.UserID, like.Action, model.DirectionReduce); err != nil {
			return err
		}
	}
	for _, fav := range favorites {
		if err = s.userMetricService.AdjustFavorites(ctx, fav.UserID, model.DirectionReduce); err != nil {
			return err
		}
	}
	return nil
}

func (s *commentServiceImpl) GetByID(ctx context.Context, commentID uint64) (*dto.CommentView, error) {
	if commentID == 0 {
		return nil, ErrParamInvalid
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return toCommentView(comment), nil
}

func (s *commentServiceImpl) GetRoots(ctx context.Context, postID uint64, p pagination.Params) (*pagination.Page[*dto.CommentView], error) {
	if postID == 0 {
		return nil, ErrParamInvalid
	}
	page, err := s.commentRepo.FindRoots(ctx, postID, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(c model.Comment) *dto.CommentView {
		return toCommentView(&c)
	}), nil
}

func (s *commentServiceImpl) GetReplies(ctx context.Context, commentID uint64, p pagination.Params) (*pagination.Page[*dto.CommentView], error) {
	if commentID == 0 {
		return nil, ErrParamInvalid
	}
	page, err := s.commentRepo.FindReplies(ctx, commentID, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(c model.Comment) *dto.CommentView {
		return toCommentView(&c)
	}), nil
}

func (s *commentServiceImpl) GetByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[*dto.CommentView], error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	page, err := s.commentRepo.FindByUser(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(c model.Comment) *dto.CommentView {
		return toCommentView(&c)
	}), nil
}

func toCommentView(comment *model.Comment) *dto.CommentView {
	view := &dto.CommentView{}
	_ = copier.Copy(view, comment)
	return view
}
