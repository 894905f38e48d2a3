package service

import (
	"Quill/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentReactLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	reader := env.seedUser(t, "reader")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")
	comment := env.seedComment(t, post.ID, author.ID, 0, "first")

	require.NoError(t, env.commentActionSvc.React(ctx, reader.ID, comment.ID, model.ReactionLike))

	err := env.commentActionSvc.React(ctx, reader.ID, comment.ID, model.ReactionLike)
	assert.ErrorIs(t, err, ErrActionDuplicate)

	metric, err := env.commentMetricSvc.GetByCommentID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.LikesCount)

	// swapping to a dislike moves both counters in one step
	require.NoError(t, env.commentActionSvc.React(ctx, reader.ID, comment.ID, model.ReactionDislike))

	metric, err = env.commentMetricSvc.GetByCommentID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, metric.LikesCount)
	assert.Equal(t, 1, metric.DislikesCount)

	require.NoError(t, env.commentActionSvc.RemoveReaction(ctx, reader.ID, comment.ID))

	got, err := env.commentActionSvc.GetReaction(ctx, reader.ID, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = env.commentActionSvc.RemoveReaction(ctx, reader.ID, comment.ID)
	assert.ErrorIs(t, err, ErrLikeNotFound)
}

func TestCommentReactMissingComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	reader := env.seedUser(t, "reader")

	err := env.commentActionSvc.React(ctx, reader.ID, 9999, model.ReactionLike)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentFavoriteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	reader := env.seedUser(t, "reader")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")
	comment := env.seedComment(t, post.ID, author.ID, 0, "first")

	require.NoError(t, env.commentActionSvc.Favorite(ctx, reader.ID, comment.ID))

	favorited, err := env.commentActionSvc.IsFavorited(ctx, reader.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	err = env.commentActionSvc.Favorite(ctx, reader.ID, comment.ID)
	assert.ErrorIs(t, err, ErrFavoriteExist)

	metric, err := env.commentMetricSvc.GetByCommentID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.FavoritesCount)

	require.NoError(t, env.commentActionSvc.Unfavorite(ctx, reader.ID, comment.ID))

	err = env.commentActionSvc.Unfavorite(ctx, reader.ID, comment.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestCommentGetLikeCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	a := env.seedUser(t, "reader-a")
	b := env.seedUser(t, "reader-b")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")
	comment := env.seedComment(t, post.ID, author.ID, 0, "first")

	require.NoError(t, env.commentActionSvc.React(ctx, a.ID, comment.ID, model.ReactionLike))
	require.NoError(t, env.commentActionSvc.React(ctx, b.ID, comment.ID, model.ReactionLike))

	count, err := env.commentActionSvc.GetLikeCount(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
