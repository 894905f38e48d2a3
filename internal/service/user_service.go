package service

import (
	"Quill/internal/api/config"
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/redis"
	"Quill/internal/pkg/security"
	"Quill/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, req *dto.UserRegisterReq) (*dto.UserView, error)
	Login(ctx context.Context, req *dto.UserLoginReq) (*dto.UserLoginResp, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, viewerID, targetID uint64) (*dto.UserProfileResp, error)
	SetBlocked(ctx context.Context, userID uint64, blocked bool) error
}

type userServiceImpl struct {
	userRepo          repository.UserRepo
	userMetricService UserMetricService
}

func NewUserService(userRepo repository.UserRepo, userMetricService UserMetricService) UserService {
	return &userServiceImpl{
		userRepo:          userRepo,
		userMetricService: userMetricService,
	}
}

// Register creates the account together with its zeroed metric row.
func (s *userServiceImpl) Register(ctx context.Context, req *dto.UserRegisterReq) (*dto.UserView, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: &req.Username,
		Email:    &req.Email,
		Password: &hashed,
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	if err = s.userMetricService.CreateFor(ctx, user.ID); err != nil {
		return nil, err
	}
	return toUserView(user), nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.UserLoginReq) (*dto.UserLoginResp, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, *user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	roles := []string{consts.RoleUser}
	if user.IsAdmin {
		roles = append(roles, consts.RoleAdmin)
	}
	token, err := security.GenerateToken(user.ID, roles)
	if err != nil {
		return nil, err
	}

	if err = s.userMetricService.TouchLogin(ctx, user.ID); err != nil {
		log.WarnContext(ctx, "login stamp failed", "userId", user.ID, "err", err)
	}
	return &dto.UserLoginResp{
		Token: token,
		User:  toUserView(user),
	}, nil
}

// Logout revokes the token for the remainder of its lifetime via redis;
// without redis tokens simply age out.
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	ttl := time.Hour * 24
	if config.Cfg != nil && config.Cfg.JWT.ExpireHours > 0 {
		ttl = time.Duration(config.Cfg.JWT.ExpireHours) * time.Hour
	}
	if err = redis.SetWithExpiration(ctx, consts.TokenRevokedKey+signature, 1, ttl); err != nil {
		log.WarnContext(ctx, "token revocation failed", "err", err)
	}
	return nil
}

// GetProfile returns the user with their metric row; viewing someone
// else's profile counts as a profile view.
func (s *userServiceImpl) GetProfile(ctx context.Context, viewerID, targetID uint64) (*dto.UserProfileResp, error) {
	if targetID == 0 {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	metric, err := s.userMetricService.GetByUserID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		if err = s.userMetricService.TouchActivity(ctx, viewerID); err != nil {
			log.WarnContext(ctx, "activity stamp failed", "userId", viewerID, "err", err)
		}
	}
	if viewerID != 0 && viewerID != targetID {
		if err = s.userMetricService.AddProfileViews(ctx, targetID, 1); err != nil {
			log.WarnContext(ctx, "profile view tracking failed", "userId", targetID, "err", err)
		}
	}

	metricView := &dto.UserMetricView{}
	_ = copier.Copy(metricView, metric)
	view := toUserView(user)
	if viewerID != targetID {
		view.Email = ""
	}
	return &dto.UserProfileResp{
		User:   view,
		Metric: metricView,
	}, nil
}

func (s *userServiceImpl) SetBlocked(ctx context.Context, userID uint64, blocked bool) error {
	if userID == 0 {
		return ErrParamInvalid
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.SetBlocked(ctx, userID, blocked)
}

func toUserView(user *model.User) *dto.UserView {
	view := &dto.UserView{
		ID:        user.ID,
		IsAdmin:   user.IsAdmin,
		IsBlocked: user.IsBlocked,
		CreatedAt: user.CreatedAt,
	}
	if user.Username != nil {
		view.Username = *user.Username
	}
	if user.Email != nil {
		view.Email = *user.Email
	}
	return view
}
