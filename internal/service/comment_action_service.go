package service

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"context"
	"strconv"
	"time"
)

type CommentActionService interface {
	React(ctx context.Context, userID, commentID uint64, action model.Reaction) error
	RemoveReaction(ctx context.Context, userID, commentID uint64) error
	GetReaction(ctx context.Context, userID, commentID uint64) (*model.Reaction, error)
	Favorite(ctx context.Context, userID, commentID uint64) error
	Unfavorite(ctx context.Context, userID, commentID uint64) error
	IsFavorited(ctx context.Context, userID, commentID uint64) (bool, error)
	GetLikeCount(ctx context.Context, commentID uint64) (int64, error)
}

type commentActionServiceImpl struct {
	commentActionRepo    repository.CommentActionRepo
	commentRepo          repository.CommentRepo
	commentMetricService CommentMetricService
	userMetricService    UserMetricService
}

func NewCommentActionService(
	commentActionRepo repository.CommentActionRepo,
	commentRepo repository.CommentRepo,
	commentMetricService CommentMetricService,
	userMetricService UserMetricService,
) CommentActionService {
	return &commentActionServiceImpl{
		commentActionRepo:    commentActionRepo,
		commentRepo:          commentRepo,
		commentMetricService: commentMetricService,
		userMetricService:    userMetricService,
	}
}

func (s *commentActionServiceImpl) React(ctx context.Context, userID, commentID uint64, action model.Reaction) error {
	if userID == 0 || commentID == 0 || !action.Valid() {
		return ErrParamInvalid
	}
	if err := s.requireComment(ctx, commentID); err != nil {
		return err
	}

	existing, err := s.commentActionRepo.GetLike(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Action == action {
			return ErrActionDuplicate
		}
		if err = s.commentActionRepo.DeleteLike(ctx, userID, commentID); err != nil {
			return err
		}
		if err = s.commentActionRepo.CreateLike(ctx, &model.CommentLike{UserID: userID, CommentID: commentID, Action: action}); err != nil {
			return err
		}
		if err = s.commentMetricService.AdjustReaction(ctx, commentID, existing.Action, model.DirectionReduce); err != nil {
			return err
		}
		if err = s.commentMetricService.AdjustReaction(ctx, commentID, action, model.DirectionSum); err != nil {
			return err
		}
		if err = s.userMetricService.AdjustGivenReaction(ctx, userID, existing.Action, model.DirectionReduce); err != nil {
			return err
		}
		return s.userMetricService.AdjustGivenReaction(ctx, userID, action, model.DirectionSum)
	}

	err = s.commentActionRepo.CreateLike(ctx, &model.CommentLike{UserID: userID, CommentID: commentID, Action: action})
	if err != nil {
		if isDuplicateError(err) {
			return ErrActionDuplicate
		}
		return err
	}
	_ = redis.DeleteKey(ctx, consts.CommentLikeCountKey+strconv.FormatUint(commentID, 10))

	if err = s.commentMetricService.AdjustReaction(ctx, commentID, action, model.DirectionSum); err != nil {
		return err
	}
	return s.userMetricService.AdjustGivenReaction(ctx, userID, action, model.DirectionSum)
}

func (s *commentActionServiceImpl) RemoveReaction(ctx context.Context, userID, commentID uint64) error {
	if userID == 0 || commentID == 0 {
		return ErrParamInvalid
	}
	existing, err := s.commentActionRepo.GetLike(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrLikeNotFound
	}
	if err = s.commentActionRepo.DeleteLike(ctx, userID, commentID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.CommentLikeCountKey+strconv.FormatUint(commentID, 10))

	if err = s.commentMetricService.AdjustReaction(ctx, commentID, existing.Action, model.DirectionReduce); err != nil {
		return err
	}
	return s.userMetricService.AdjustGivenReaction(ctx, userID, existing.Action, model.DirectionReduce)
}

func (s *commentActionServiceImpl) GetReaction(ctx context.Context, userID, commentID uint64) (*model.Reaction, error) {
	if userID == 0 || commentID == 0 {
		return nil, ErrParamInvalid
	}
	existing, err := s.commentActionRepo.GetLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	action := existing.Action
	return &action, nil
}

func (s *commentActionServiceImpl) Favorite(ctx context.Context, userID, commentID uint64) error {
	if userID == 0 || commentID == 0 {
		return ErrParamInvalid
	}
	if err := s.requireComment(ctx, commentID); err != nil {
		return err
	}

	err := s.commentActionRepo.CreateFavorite(ctx, &model.FavoriteComment{UserID: userID, CommentID: commentID})
	if err != nil {
		if isDuplicateError(err) {
			return ErrFavoriteExist
		}
		return err
	}

	if err = s.commentMetricService.AdjustFavorites(ctx, commentID, model.DirectionSum); err != nil {
		return err
	}
	return s.userMetricService.AdjustFavorites(ctx, userID, model.DirectionSum)
}

func (s *commentActionServiceImpl) Unfavorite(ctx context.Context, userID, commentID uint64) error {
	if userID == 0 || commentID == 0 {
		return ErrParamInvalid
	}
	exists, err := s.commentActionRepo.CheckFavoriteExists(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFavoriteNotFound
	}
	if err = s.commentActionRepo.DeleteFavorite(ctx, userID, commentID); err != nil {
		return err
	}

	if err = s.commentMetricService.AdjustFavorites(ctx, commentID, model.DirectionReduce); err != nil {
		return err
	}
	return s.userMetricService.AdjustFavorites(ctx, userID, model.DirectionReduce)
}

func (s *commentActionServiceImpl) IsFavorited(ctx context.Context, userID, commentID uint64) (bool, error) {
	if userID == 0 || commentID == 0 {
		return false, ErrParamInvalid
	}
	return s.commentActionRepo.CheckFavoriteExists(ctx, userID, commentID)
}

func (s *commentActionServiceImpl) GetLikeCount(ctx context.Context, commentID uint64) (int64, error) {
	if commentID == 0 {
		return 0, ErrParamInvalid
	}
	key := consts.CommentLikeCountKey + strconv.FormatUint(commentID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	count, err := s.commentActionRepo.CountReactionsByCommentID(ctx, commentID, model.ReactionLike)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Minute*10)
	return count, nil
}

func (s *commentActionServiceImpl) requireComment(ctx context.Context, commentID uint64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	return nil
}
