package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	category := env.seedCategory(t, "general")

	view, err := env.postSvc.Create(ctx, author.ID, &dto.PostCreateReq{
		CategoryID: category.ID,
		Title:      "hello world",
		Content:    "first post",
	})
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, author.ID, view.UserID)

	// the zeroed counter row rides along with the post
	metric, err := env.postMetricSvc.GetByPostID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), metric.Version)

	authorMetric, err := env.userMetricSvc.GetByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, authorMetric.PostsCount)
}

func TestPostCreateCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	category := env.seedCategory(t, "general")

	_, err := env.postSvc.Create(ctx, author.ID, &dto.PostCreateReq{
		CategoryID: 9999, Title: "x", Content: "y",
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, env.categorySvc.SetActive(ctx, category.ID, false))

	_, err = env.postSvc.Create(ctx, author.ID, &dto.PostCreateReq{
		CategoryID: category.ID, Title: "x", Content: "y",
	})
	assert.ErrorIs(t, err, ErrCategoryInactive)
}

func TestPostUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	other := env.seedUser(t, "other")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "before")

	req := &dto.PostUpdateReq{CategoryID: category.ID, Title: "after", Content: "changed"}

	_, err := env.postSvc.Update(ctx, other.ID, post.ID, req, false)
	assert.ErrorIs(t, err, ErrNoPermission)

	// an admin may edit on the author's behalf
	view, err := env.postSvc.Update(ctx, other.ID, post.ID, req, true)
	require.NoError(t, err)
	assert.Equal(t, "after", view.Title)

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.EditsCount)

	authorMetric, err := env.userMetricSvc.GetByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, authorMetric.EditsCount)
}

// Deleting a post tears down its comment tree, metrics and facts, and
// walks back every author counter the post had pushed up.
func TestPostRemoveCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	commenter := env.seedUser(t, "commenter")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "doomed")

	root, err := env.commentSvc.Create(ctx, commenter.ID, &dto.CommentCreateReq{
		PostID: post.ID, Content: "root",
	})
	require.NoError(t, err)
	_, err = env.commentSvc.Create(ctx, commenter.ID, &dto.CommentCreateReq{
		PostID: post.ID, Content: "reply", ParentID: root.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.postActionSvc.React(ctx, commenter.ID, post.ID, model.ReactionLike))
	require.NoError(t, env.postActionSvc.Favorite(ctx, commenter.ID, post.ID))
	require.NoError(t, env.commentActionSvc.React(ctx, commenter.ID, root.ID, model.ReactionDislike))
	require.NoError(t, env.commentActionSvc.Favorite(ctx, commenter.ID, root.ID))

	require.NoError(t, env.postSvc.Remove(ctx, author.ID, post.ID, false))

	_, err = env.postSvc.GetDetail(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = env.postMetricSvc.GetByPostID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrMetricNotFound)

	_, err = env.commentSvc.GetByID(ctx, root.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	got, err := env.postActionSvc.GetReaction(ctx, commenter.ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	authorMetric, err := env.userMetricSvc.GetByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, authorMetric.PostsCount)

	// every fact the teardown deleted walks its actor's counters back
	commenterMetric, err := env.userMetricSvc.GetByUserID(ctx, commenter.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, commenterMetric.CommentsCount)
	assert.Equal(t, 0, commenterMetric.LikesGivenCount)
	assert.Equal(t, 0, commenterMetric.DislikesGivenCount)
	assert.Equal(t, 0, commenterMetric.FavoritesCount)
}

func TestPostGetDetailTracksViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	category := env.seedCategory(t, "general")
	post := env.seedPost(t, author.ID, category.ID, "hello")

	detail, err := env.postSvc.GetDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, detail.Post.ID)

	metric, err := env.postMetricSvc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metric.ViewsCount)
}

func TestPostSearchFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	tech := env.seedCategory(t, "tech")
	life := env.seedCategory(t, "life")

	goPost := env.seedPost(t, alice.ID, tech.ID, "Learning Go Generics")
	sqlPost := env.seedPost(t, alice.ID, tech.ID, "SQL indexing basics")
	cookPost := env.seedPost(t, bob.ID, life.ID, "Cooking with gofer herbs")

	require.NoError(t, env.postMetricSvc.AddViews(ctx, goPost.ID, 50))
	require.NoError(t, env.postMetricSvc.AddViews(ctx, sqlPost.ID, 5))

	p := pagination.Params{Page: 1, Limit: 40}

	// title match is a case-insensitive substring
	page, err := env.postSvc.Search(ctx, &dto.PostSearchReq{Title: "go"}, p)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, goPost.ID, page.Data[0].ID)
	assert.Equal(t, cookPost.ID, page.Data[1].ID)

	page, err = env.postSvc.Search(ctx, &dto.PostSearchReq{Author: "BOB"}, p)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, cookPost.ID, page.Data[0].ID)

	page, err = env.postSvc.Search(ctx, &dto.PostSearchReq{CategoryID: tech.ID}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)

	min := 10
	page, err = env.postSvc.Search(ctx, &dto.PostSearchReq{MinViews: &min}, p)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, goPost.ID, page.Data[0].ID)

	max := 10
	page, err = env.postSvc.Search(ctx, &dto.PostSearchReq{MaxViews: &max}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)

	future := time.Now().Add(time.Hour)
	page, err = env.postSvc.Search(ctx, &dto.PostSearchReq{CreatedAfter: &future}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)
	assert.NotNil(t, page.Data)
}

func TestPostListByUserAndCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	tech := env.seedCategory(t, "tech")

	env.seedPost(t, alice.ID, tech.ID, "one")
	env.seedPost(t, alice.ID, tech.ID, "two")
	env.seedPost(t, bob.ID, tech.ID, "three")

	p := pagination.Params{Page: 1, Limit: 40}

	mine, err := env.postSvc.ListByUser(ctx, alice.ID, p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalItems)

	inTech, err := env.postSvc.ListByCategory(ctx, tech.ID, p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inTech.TotalItems)

	_, err = env.postSvc.ListByCategory(ctx, 9999, p)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestPostTrendingValidatesWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.postSvc.GetTrending(ctx, 3, pagination.Params{Page: 1, Limit: 40})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestPostTrendingOrdersByEngagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	author := env.seedUser(t, "author")
	fans := []*model.User{
		env.seedUser(t, "fan1"),
		env.seedUser(t, "fan2"),
	}
	category := env.seedCategory(t, "general")
	quiet := env.seedPost(t, author.ID, category.ID, "quiet")
	hot := env.seedPost(t, author.ID, category.ID, "hot")

	for _, fan := range fans {
		require.NoError(t, env.postActionSvc.React(ctx, fan.ID, hot.ID, model.ReactionLike))
	}
	require.NoError(t, env.postActionSvc.React(ctx, fans[0].ID, quiet.ID, model.ReactionLike))

	// trending reads the reconciled engagement score, so settle it first
	for _, id := range []uint64{quiet.ID, hot.ID} {
		metric, err := env.postMetricSvc.GetByPostID(ctx, id)
		require.NoError(t, err)
		_, err = env.postMetricSvc.Update(ctx, metric)
		require.NoError(t, err)
	}

	page, err := env.postSvc.GetTrending(ctx, 7, pagination.Params{Page: 1, Limit: 40})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, hot.ID, page.Data[0].ID)
	assert.Equal(t, quiet.ID, page.Data[1].ID)
}
