package service

import (
	"Quill/internal/api/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReq(name string) *dto.UserRegisterReq {
	return &dto.UserRegisterReq{
		Username: name,
		Email:    name + "@example.com",
		Password: "s3cret-pass",
	}
}

func TestUserRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	view, err := env.userSvc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "alice", view.Username)
	assert.False(t, view.IsAdmin)

	// the metric row is born with the account
	metric, err := env.userMetricSvc.GetByUserID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, metric.PostsCount)

	_, err = env.userSvc.Register(ctx, registerReq("alice"))
	assert.ErrorIs(t, err, ErrUserExist)
}

func TestUserLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	view, err := env.userSvc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	resp, err := env.userSvc.Login(ctx, &dto.UserLoginReq{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, view.ID, resp.User.ID)

	metric, err := env.userMetricSvc.GetByUserID(ctx, view.ID)
	require.NoError(t, err)
	assert.NotNil(t, metric.LastLogin)

	// wrong password and unknown user look identical to the caller
	_, err = env.userSvc.Login(ctx, &dto.UserLoginReq{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = env.userSvc.Login(ctx, &dto.UserLoginReq{Username: "nobody", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestUserLoginBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	view, err := env.userSvc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	require.NoError(t, env.userSvc.SetBlocked(ctx, view.ID, true))

	_, err = env.userSvc.Login(ctx, &dto.UserLoginReq{Username: "alice", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrUserBlocked)

	require.NoError(t, env.userSvc.SetBlocked(ctx, view.ID, false))
	_, err = env.userSvc.Login(ctx, &dto.UserLoginReq{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
}

func TestUserGetProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	alice, err := env.userSvc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	bob, err := env.userSvc.Register(ctx, registerReq("bob"))
	require.NoError(t, err)

	// own profile keeps the email and does not count a view
	own, err := env.userSvc.GetProfile(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", own.User.Email)
	assert.Equal(t, 0, own.Metric.ProfileViews)

	theirs, err := env.userSvc.GetProfile(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs.User.Email)

	own, err = env.userSvc.GetProfile(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, own.Metric.ProfileViews)

	_, err = env.userSvc.GetProfile(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserGetProfileStampsViewerActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	alice, err := env.userSvc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	before, err := env.userMetricSvc.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, before.LastActivity.IsZero())

	// anonymous views leave no trace
	_, err = env.userSvc.GetProfile(ctx, 0, alice.ID)
	require.NoError(t, err)
	after, err := env.userMetricSvc.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, after.LastActivity.IsZero())

	_, err = env.userSvc.GetProfile(ctx, alice.ID, alice.ID)
	require.NoError(t, err)

	after, err = env.userMetricSvc.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, after.LastActivity.IsZero())
}

func TestUserLogoutRejectsMalformedToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	err := env.userSvc.Logout(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, UnauthorizedError)
}

func TestUserLogoutAcceptsRealToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.userSvc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	resp, err := env.userSvc.Login(ctx, &dto.UserLoginReq{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	// without redis revocation degrades to a no-op, never an error
	require.NoError(t, env.userSvc.Logout(ctx, resp.Token))
}
