package service

import (
	"Quill/internal/model"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMetricCreateForIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, user.ID, category.ID, "hello")

	// the seed already created the row; a second create must be a no-op
	require.NoError(t, env.postMetricSvc.CreateFor(ctx, post.ID))

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, metric.PostID)
	assert.Equal(t, 0, metric.LikesCount)
	assert.Equal(t, uint64(0), metric.Version)
}

func TestPostMetricGetTaxonomy(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.postMetricSvc.GetByPostID(ctx, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = env.postMetricSvc.GetByPostID(ctx, 9999)
	assert.ErrorIs(t, err, ErrMetricNotFound)
}

// Every Sum has a Reduce that lands the counter back where it started,
// while the version keeps moving forward.
func TestPostMetricInverseLaw(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, user.ID, category.ID, "hello")

	require.NoError(t, env.postMetricSvc.AdjustReaction(ctx, post.ID, model.ReactionLike, model.DirectionSum))
	require.NoError(t, env.postMetricSvc.AdjustFavorites(ctx, post.ID, model.DirectionSum))
	require.NoError(t, env.postMetricSvc.AdjustShares(ctx, post.ID, model.DirectionSum))
	require.NoError(t, env.postMetricSvc.AdjustReplies(ctx, post.ID, model.DirectionSum))

	require.NoError(t, env.postMetricSvc.AdjustReaction(ctx, post.ID, model.ReactionLike, model.DirectionReduce))
	require.NoError(t, env.postMetricSvc.AdjustFavorites(ctx, post.ID, model.DirectionReduce))
	require.NoError(t, env.postMetricSvc.AdjustShares(ctx, post.ID, model.DirectionReduce))
	require.NoError(t, env.postMetricSvc.AdjustReplies(ctx, post.ID, model.DirectionReduce))

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, metric.LikesCount)
	assert.Equal(t, 0, metric.FavoritesCount)
	assert.Equal(t, 0, metric.SharesCount)
	assert.Equal(t, 0, metric.RepliesCount)
	assert.Equal(t, uint64(8), metric.Version)
}

func TestPostMetricReactionColumns(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, user.ID, category.ID, "hello")

	require.NoError(t, env.postMetricSvc.AdjustReaction(ctx, post.ID, model.ReactionLike, model.DirectionSum))
	require.NoError(t, env.postMetricSvc.AdjustReaction(ctx, post.ID, model.ReactionDislike, model.DirectionSum))
	require.NoError(t, env.postMetricSvc.AdjustReaction(ctx, post.ID, model.ReactionDislike, model.DirectionSum))

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.LikesCount)
	assert.Equal(t, 2, metric.DislikesCount)
}

func TestPostMetricAddViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, user.ID, category.ID, "hello")

	require.NoError(t, env.postMetricSvc.AddViews(ctx, post.ID, 5))
	require.NoError(t, env.postMetricSvc.AddViews(ctx, post.ID, 0)) // defaults to 1

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, metric.ViewsCount)
}

func TestPostMetricIncrementMissingRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	err := env.postMetricSvc.AdjustFavorites(ctx, 12345, model.DirectionSum)
	assert.ErrorIs(t, err, ErrMetricNotFound)

	err = env.postMetricSvc.AddViews(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

// Two writers incrementing the same counter must both land: the atomic
// column update closes the read-modify-write race.
func TestPostMetricConcurrentIncrements(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, user.ID, category.ID, "hello")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = env.postMetricSvc.AdjustReaction(ctx, post.ID, model.ReactionLike, model.DirectionSum)
		}()
	}
	wg.Wait()

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, metric.LikesCount)
	assert.Equal(t, uint64(2), metric.Version)
}

func TestPostMetricUpdateCAS(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.seedUser(t, "alice")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, user.ID, category.ID, "hello")

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)

	metric.LikesCount = 10
	metric.ViewsCount = 100
	updated, err := env.postMetricSvc.Update(ctx, metric)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), updated.Version)
	assert.Equal(t, 10*3+100, updated.EngagementScore)

	// a stale version still converges: the retry re-reads and wins
	stale := *metric
	stale.Version = 0
	stale.LikesCount = 4
	reupdated, err := env.postMetricSvc.Update(ctx, &stale)
	require.NoError(t, err)
	assert.Equal(t, 4, reupdated.LikesCount)

	fresh, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.LikesCount)
}
