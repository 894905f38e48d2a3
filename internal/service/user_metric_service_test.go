package service

import (
	"Quill/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMetricGetTaxonomy(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.userMetricSvc.GetByUserID(ctx, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)

	// no such user at all
	_, err = env.userMetricSvc.GetByUserID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// user exists but its counter row is gone
	name := "orphan"
	orphan := model.User{Username: &name}
	require.NoError(t, env.db.WithContext(ctx).Create(&orphan).Error)
	_, err = env.userMetricSvc.GetByUserID(ctx, orphan.ID)
	assert.ErrorIs(t, err, ErrMetricNotFound)
}

func TestUserMetricMutators(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")

	require.NoError(t, env.userMetricSvc.AdjustPosts(ctx, user.ID, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustComments(ctx, user.ID, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustGivenReaction(ctx, user.ID, model.ReactionLike, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustGivenReaction(ctx, user.ID, model.ReactionDislike, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustFollowers(ctx, user.ID, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustFollowing(ctx, user.ID, model.DirectionSum))
	require.NoError(t, env.userMetricSvc.AdjustReputationBy(ctx, user.ID, 7))
	require.NoError(t, env.userMetricSvc.AddProfileViews(ctx, user.ID, 3))

	metric, err := env.userMetricSvc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.PostsCount)
	assert.Equal(t, 1, metric.CommentsCount)
	assert.Equal(t, 1, metric.LikesGivenCount)
	assert.Equal(t, 1, metric.DislikesGivenCount)
	assert.Equal(t, 1, metric.FollowersCount)
	assert.Equal(t, 1, metric.FollowingCount)
	assert.Equal(t, 7, metric.ReputationScore)
	assert.Equal(t, 3, metric.ProfileViews)

	// walking everything back restores the zero row
	require.NoError(t, env.userMetricSvc.AdjustPosts(ctx, user.ID, model.DirectionReduce))
	require.NoError(t, env.userMetricSvc.AdjustComments(ctx, user.ID, model.DirectionReduce))
	require.NoError(t, env.userMetricSvc.AdjustGivenReaction(ctx, user.ID, model.ReactionLike, model.DirectionReduce))
	require.NoError(t, env.userMetricSvc.AdjustGivenReaction(ctx, user.ID, model.ReactionDislike, model.DirectionReduce))
	require.NoError(t, env.userMetricSvc.AdjustFollowers(ctx, user.ID, model.DirectionReduce))
	require.NoError(t, env.userMetricSvc.AdjustFollowing(ctx, user.ID, model.DirectionReduce))
	require.NoError(t, env.userMetricSvc.AdjustReputationBy(ctx, user.ID, -7))

	metric, err = env.userMetricSvc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, metric.PostsCount)
	assert.Equal(t, 0, metric.CommentsCount)
	assert.Equal(t, 0, metric.LikesGivenCount)
	assert.Equal(t, 0, metric.DislikesGivenCount)
	assert.Equal(t, 0, metric.FollowersCount)
	assert.Equal(t, 0, metric.FollowingCount)
	assert.Equal(t, 0, metric.ReputationScore)
}

func TestUserMetricTouchLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")

	metric, err := env.userMetricSvc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, metric.LastLogin)

	require.NoError(t, env.userMetricSvc.TouchLogin(ctx, user.ID))

	metric, err = env.userMetricSvc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, metric.LastLogin)
	assert.False(t, metric.LastLogin.IsZero())
}

func TestUserMetricUpdateCAS(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")

	metric, err := env.userMetricSvc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	metric.PostsCount = 42
	updated, err := env.userMetricSvc.Update(ctx, metric)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), updated.Version)

	fresh, err := env.userMetricSvc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, fresh.PostsCount)
	assert.Equal(t, uint64(1), fresh.Version)
}
