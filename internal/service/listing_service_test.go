package service

import (
	"context"
	"testing"

	"inkwell/internal/authz"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingService_ListPublic_PassesFilter(t *testing.T) {
	t.Parallel()

	var (
		gotQuery    string
		gotLimit    int
		gotOffset   int
		gotTrending bool
		gotCaller   uint
	)
	repo := noopPostRepo()
	repo.listPublicFn = func(_ context.Context, query string, limit, offset int, trending bool, currentUserID uint) ([]*models.Post, error) {
		gotQuery = query
		gotLimit = limit
		gotOffset = offset
		gotTrending = trending
		gotCaller = currentUserID
		return []*models.Post{{ID: 1}}, nil
	}

	svc := NewListingService(repo)
	posts, err := svc.ListPublic(context.Background(), PublicListInput{
		Query:    "gopher",
		Page:     3,
		PageSize: 5,
		Trending: true,
		CallerID: 7,
	})
	require.NoError(t, err)

	assert.Len(t, posts, 1)
	assert.Equal(t, "gopher", gotQuery)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, 10, gotOffset)
	assert.True(t, gotTrending)
	assert.Equal(t, uint(7), gotCaller)
}

func TestListingService_ListPublic_NormalizesPaging(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	repo := noopPostRepo()
	repo.listPublicFn = func(_ context.Context, _ string, limit, offset int, _ bool, _ uint) ([]*models.Post, error) {
		gotLimit = limit
		gotOffset = offset
		return nil, nil
	}

	svc := NewListingService(repo)

	_, err := svc.ListPublic(context.Background(), PublicListInput{Page: -2, PageSize: 1000, CallerID: 1})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, gotLimit)
	assert.Equal(t, 0, gotOffset)
}

func TestListingService_ListMine_RequiresAuth(t *testing.T) {
	t.Parallel()

	svc := NewListingService(noopPostRepo())
	_, err := svc.ListMine(context.Background(), authz.Anonymous, 1, 10)
	assertErrCode(t, err, models.CodeForbidden)
}

func TestListingService_ListMine_ScopedToCaller(t *testing.T) {
	t.Parallel()

	var gotAuthor uint
	repo := noopPostRepo()
	repo.listByAuthorFn = func(_ context.Context, authorID uint, _, _ int) ([]*models.Post, error) {
		gotAuthor = authorID
		return nil, nil
	}

	svc := NewListingService(repo)
	_, err := svc.ListMine(context.Background(), author, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, author.UserID, gotAuthor)
}

func TestListingService_ListPending_AdminOnly(t *testing.T) {
	t.Parallel()

	var gotStatus string
	repo := noopPostRepo()
	repo.listByStatusFn = func(_ context.Context, status string, _, _ int) ([]*models.Post, error) {
		gotStatus = status
		return nil, nil
	}

	svc := NewListingService(repo)
	ctx := context.Background()

	_, err := svc.ListPending(ctx, author, 1, 10)
	assertErrCode(t, err, models.CodeForbidden)

	_, err = svc.ListPending(ctx, admin, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, gotStatus)
}

func TestListingService_GetBySlug_CountsView(t *testing.T) {
	t.Parallel()

	var bumped string
	repo := noopPostRepo()
	repo.incrementViewsFn = func(_ context.Context, slug string) (int64, error) {
		bumped = slug
		return 1, nil
	}

	svc := NewListingService(repo)
	post, err := svc.GetBySlug(context.Background(), "hello-world-1234", 0)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "hello-world-1234", bumped)
}

func TestListingService_GetBySlug_NotVisibleIsNotFound(t *testing.T) {
	t.Parallel()

	// Zero rows from the increment means no published, non-hidden post
	// carries the slug. The reader cannot tell absent from suppressed.
	repo := noopPostRepo()
	repo.incrementViewsFn = func(_ context.Context, _ string) (int64, error) { return 0, nil }
	repo.getBySlugFn = func(_ context.Context, _ string, _ uint) (*models.Post, error) {
		t.Fatal("GetBySlug must not be called when the post is not visible")
		return nil, nil
	}

	svc := NewListingService(repo)
	_, err := svc.GetBySlug(context.Background(), "hidden-post-0001", 0)
	assertErrCode(t, err, models.CodeNotFound)
}

func TestListingService_GetByID_Visibility(t *testing.T) {
	t.Parallel()

	pending := &models.Post{ID: 8, AuthorID: 1, Status: models.StatusPending}
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return pending, nil
	}

	svc := NewListingService(repo)
	ctx := context.Background()

	// author sees their own pending post
	post, err := svc.GetByID(ctx, author, 8)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, post.ID)

	// admin sees any post
	_, err = svc.GetByID(ctx, admin, 8)
	require.NoError(t, err)

	// other readers get NotFound, not Forbidden
	other := authz.Context{UserID: 3, Role: authz.RoleUser}
	_, err = svc.GetByID(ctx, other, 8)
	assertErrCode(t, err, models.CodeNotFound)

	_, err = svc.GetByID(ctx, authz.Anonymous, 8)
	assertErrCode(t, err, models.CodeNotFound)
}

func TestListingService_GetByID_HiddenPublished(t *testing.T) {
	t.Parallel()

	hidden := &models.Post{ID: 9, AuthorID: 1, Status: models.StatusPublished, IsHidden: true}
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return hidden, nil
	}

	svc := NewListingService(repo)
	other := authz.Context{UserID: 3, Role: authz.RoleUser}
	_, err := svc.GetByID(context.Background(), other, 9)
	assertErrCode(t, err, models.CodeNotFound)
}
