package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("invalid parameter")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrUserExist          = errors.New("user already exists")
	ErrPasswordIncorrect  = errors.New("incorrect password")
	ErrNoPermission       = errors.New("no permission")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExist      = errors.New("category name already taken")
	ErrCategoryInactive   = errors.New("category is not active")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrMetricNotFound     = errors.New("metric not found")
	ErrMetricConflict     = errors.New("metric update conflicted, retry")
	ErrActionDuplicate    = errors.New("action already recorded")
	ErrUserFollowExist    = errors.New("already following this user")
	ErrUserFollowSelf     = errors.New("cannot follow yourself")
	ErrUserFollowLimit    = errors.New("following limit reached")
	ErrFollowNotFound     = errors.New("follow relation not found")
	ErrLikeNotFound       = errors.New("reaction not found")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrFavoriteExist      = errors.New("already favorited")
	UnauthorizedError     = errors.New("unauthorized")
	UnExpectedError       = errors.New("unexpected error, try again later")
)

// ErrorMap translates sentinel errors to the business code surfaced in the
// response envelope. Duplicate-fact errors uniformly map to Conflict.
var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUserNotFound:       NotFound,
	ErrUserBlocked:        Unauthorized,
	ErrUserExist:          Conflict,
	ErrPasswordIncorrect:  Unauthorized,
	ErrNoPermission:       BadRequest,
	ErrCategoryNotFound:   NotFound,
	ErrCategoryExist:      Conflict,
	ErrCategoryInactive:   BadRequest,
	ErrPostNotFound:       NotFound,
	ErrCommentNotFound:    NotFound,
	ErrMetricNotFound:     NotFound,
	ErrMetricConflict:     Conflict,
	ErrActionDuplicate:    Conflict,
	ErrUserFollowExist:    Conflict,
	ErrUserFollowSelf:     BadRequest,
	ErrUserFollowLimit:    BadRequest,
	ErrFollowNotFound:     NotFound,
	ErrLikeNotFound:       NotFound,
	ErrFavoriteNotFound:   NotFound,
	ErrFavoriteExist:      Conflict,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}
