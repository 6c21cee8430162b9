package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	getBySlugFn      func(context.Context, string, uint) (*models.Post, error)
	incrementViewsFn func(context.Context, string) (int64, error)
	listPublicFn     func(context.Context, string, int, int, bool, uint) ([]*models.Post, error)
	listByAuthorFn   func(context.Context, uint, int, int) ([]*models.Post, error)
	listByStatusFn   func(context.Context, string, int, int) ([]*models.Post, error)
	updateStatusFn   func(context.Context, uint, string) (int64, error)
	toggleHiddenFn   func(context.Context, uint) (int64, error)
	deleteFn         func(context.Context, uint) (int64, error)
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	likeCountFn      func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug, currentUserID)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, slug string) (int64, error) {
	return s.incrementViewsFn(ctx, slug)
}
func (s *postRepoStub) ListPublic(ctx context.Context, query string, limit, offset int, trending bool, currentUserID uint) ([]*models.Post, error) {
	return s.listPublicFn(ctx, query, limit, offset, trending, currentUserID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Post, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}
func (s *postRepoStub) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	return s.updateStatusFn(ctx, id, status)
}
func (s *postRepoStub) ToggleHidden(ctx context.Context, id uint) (int64, error) {
	return s.toggleHiddenFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (int64, error) {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.likeCountFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			if p.ID == 0 {
				p.ID = 1
			}
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getBySlugFn: func(_ context.Context, slug string, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, Slug: slug}, nil
		},
		incrementViewsFn: func(_ context.Context, _ string) (int64, error) { return 1, nil },
		listPublicFn: func(_ context.Context, _ string, _, _ int, _ bool, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByStatusFn: func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateStatusFn: func(_ context.Context, _ uint, _ string) (int64, error) { return 1, nil },
		toggleHiddenFn: func(_ context.Context, _ uint) (int64, error) { return 1, nil },
		deleteFn:       func(_ context.Context, _ uint) (int64, error) { return 1, nil },
		isLikedFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:         func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:       func(_ context.Context, _, _ uint) error { return nil },
		likeCountFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// notFoundPostRepo returns a stub whose reads all miss.
func notFoundPostRepo() *postRepoStub {
	r := noopPostRepo()
	r.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	r.getBySlugFn = func(_ context.Context, _ string, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	r.incrementViewsFn = func(_ context.Context, _ string) (int64, error) { return 0, nil }
	r.updateStatusFn = func(_ context.Context, _ uint, _ string) (int64, error) { return 0, nil }
	r.toggleHiddenFn = func(_ context.Context, _ uint) (int64, error) { return 0, nil }
	r.deleteFn = func(_ context.Context, _ uint) (int64, error) { return 0, nil }
	return r
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			if c.ID == 0 {
				c.ID = 1
			}
			return nil
		},
		getByIDFn:     func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// assertErrCode asserts that err is an AppError with the given code.
func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
