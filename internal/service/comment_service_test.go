package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreateBumpsCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	commenter := env.seedUser(t, "commenter")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")

	root, err := env.commentSvc.Create(ctx, commenter.ID, &dto.CommentCreateReq{
		PostID:  post.ID,
		Content: "nice post",
	})
	require.NoError(t, err)

	reply, err := env.commentSvc.Create(ctx, author.ID, &dto.CommentCreateReq{
		PostID:   post.ID,
		Content:  "thanks",
		ParentID: root.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, root.ID, reply.ParentID)

	postMetric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, postMetric.RepliesCount)

	rootMetric, err := env.commentMetricSvc.GetByCommentID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rootMetric.RepliesCount)

	commenterMetric, err := env.userMetricSvc.GetByUserID(ctx, commenter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, commenterMetric.CommentsCount)
}

func TestCommentCreateRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	category := env.seedCategory(t, "general")
	postA := env.seedPost(t, author.ID, category.ID, "first")
	postB := env.seedPost(t, author.ID, category.ID, "second")

	_, err := env.commentSvc.Create(ctx, author.ID, &dto.CommentCreateReq{
		PostID:  9999,
		Content: "lost",
	})
	assert.ErrorIs(t, err, ErrPostNotFound)

	rootOnA, err := env.commentSvc.Create(ctx, author.ID, &dto.CommentCreateReq{
		PostID:  postA.ID,
		Content: "root",
	})
	require.NoError(t, err)

	// a parent from another post is not a valid thread anchor
	_, err = env.commentSvc.Create(ctx, author.ID, &dto.CommentCreateReq{
		PostID:   postB.ID,
		Content:  "crossed",
		ParentID: rootOnA.ID,
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = env.commentSvc.Create(ctx, author.ID, &dto.CommentCreateReq{
		PostID:   postA.ID,
		Content:  "orphan",
		ParentID: 9999,
	})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentUpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	other := env.seedUser(t, "other")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")
	comment := env.seedComment(t, post.ID, author.ID, 0, "original")

	_, err := env.commentSvc.Update(ctx, other.ID, comment.ID, &dto.CommentUpdateReq{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrNoPermission)

	updated, err := env.commentSvc.Update(ctx, author.ID, comment.ID, &dto.CommentUpdateReq{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	metric, err := env.commentMetricSvc.GetByCommentID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.EditsCount)
}

// Removing a comment takes its whole reply subtree with it and walks the
// derived counters back for every affected author.
func TestCommentRemoveCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	replier := env.seedUser(t, "replier")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")

	root, err := env.commentSvc.Create(ctx, author.ID, &dto.CommentCreateReq{
		PostID: post.ID, Content: "root",
	})
	require.NoError(t, err)
	child, err := env.commentSvc.Create(ctx, replier.ID, &dto.CommentCreateReq{
		PostID: post.ID, Content: "child", ParentID: root.ID,
	})
	require.NoError(t, err)
	grandchild, err := env.commentSvc.Create(ctx, replier.ID, &dto.CommentCreateReq{
		PostID: post.ID, Content: "grandchild", ParentID: child.ID,
	})
	require.NoError(t, err)
	keeper, err := env.commentSvc.Create(ctx, replier.ID, &dto.CommentCreateReq{
		PostID: post.ID, Content: "unrelated",
	})
	require.NoError(t, err)

	// facts inside the doomed subtree and one outside it
	require.NoError(t, env.commentActionSvc.React(ctx, replier.ID, root.ID, model.ReactionLike))
	require.NoError(t, env.commentActionSvc.Favorite(ctx, replier.ID, child.ID))
	require.NoError(t, env.commentActionSvc.React(ctx, replier.ID, keeper.ID, model.ReactionLike))

	require.NoError(t, env.commentSvc.Remove(ctx, author.ID, root.ID, false))

	for _, id := range []uint64{root.ID, child.ID, grandchild.ID} {
		_, err = env.commentSvc.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrCommentNotFound)

		_, err = env.commentMetricSvc.GetByCommentID(ctx, id)
		assert.ErrorIs(t, err, ErrMetricNotFound)
	}

	// the sibling thread survives
	_, err = env.commentSvc.GetByID(ctx, keeper.ID)
	require.NoError(t, err)

	postMetric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, postMetric.RepliesCount)

	authorMetric, err := env.userMetricSvc.GetByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, authorMetric.CommentsCount)

	// the subtree's deleted facts walk the actor's counters back; the
	// like on the surviving comment stays counted
	replierMetric, err := env.userMetricSvc.GetByUserID(ctx, replier.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, replierMetric.CommentsCount)
	assert.Equal(t, 1, replierMetric.LikesGivenCount)
	assert.Equal(t, 0, replierMetric.FavoritesCount)
}

func TestCommentRemoveOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	other := env.seedUser(t, "other")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")
	comment := env.seedComment(t, post.ID, author.ID, 0, "mine")

	err := env.commentSvc.Remove(ctx, other.ID, comment.ID, false)
	assert.ErrorIs(t, err, ErrNoPermission)

	// admins can moderate anyone's comment
	require.NoError(t, env.commentSvc.Remove(ctx, other.ID, comment.ID, true))

	err = env.commentSvc.Remove(ctx, author.ID, comment.ID, false)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentThreadQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")

	first := env.seedComment(t, post.ID, author.ID, 0, "first root")
	second := env.seedComment(t, post.ID, author.ID, 0, "second root")
	reply := env.seedComment(t, post.ID, author.ID, first.ID, "reply")

	roots, err := env.commentSvc.GetRoots(ctx, post.ID, pagination.Params{Page: 1, Limit: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(2), roots.TotalItems)
	require.Len(t, roots.Data, 2)
	assert.Equal(t, first.ID, roots.Data[0].ID)
	assert.Equal(t, second.ID, roots.Data[1].ID)

	replies, err := env.commentSvc.GetReplies(ctx, first.ID, pagination.Params{Page: 1, Limit: 40})
	require.NoError(t, err)
	require.Len(t, replies.Data, 1)
	assert.Equal(t, reply.ID, replies.Data[0].ID)

	mine, err := env.commentSvc.GetByUser(ctx, author.ID, pagination.Params{Page: 1, Limit: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(3), mine.TotalItems)
}
