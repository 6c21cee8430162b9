package service

import (
	"context"
	"errors"

	"inkwell/internal/authz"
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ListingService computes visible result sets. It is read-only: visibility
// scope is a cross-cutting read concern, and ranking policy evolves
// independently of the moderation rules in LifecycleService.
type ListingService struct {
	postRepo repository.PostRepository
}

// NewListingService returns a new ListingService.
func NewListingService(postRepo repository.PostRepository) *ListingService {
	return &ListingService{postRepo: postRepo}
}

// PublicListInput carries the public listing filter. Page is 1-indexed.
type PublicListInput struct {
	Query    string
	Page     int
	PageSize int
	Trending bool
	// CallerID enriches the liked flag for logged-in readers; zero for anonymous.
	CallerID uint
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func normalizePage(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, (page - 1) * size
}

// ListPublic returns published, non-hidden posts. Default order is newest
// first; trending ranks by (likes, comments, views) descending as a tie-break
// chain. A query filters by case-insensitive substring on title or content.
func (s *ListingService) ListPublic(ctx context.Context, in PublicListInput) ([]*models.Post, error) {
	_, size, offset := normalizePage(in.Page, in.PageSize)

	var posts []*models.Post

	// Cache only the anonymous default first page: it is the hot path, and
	// skipping logged-in readers keeps the per-caller liked flag honest.
	if in.Query == "" && !in.Trending && offset == 0 && size == defaultPageSize && in.CallerID == 0 {
		err := cache.Aside(ctx, cache.PublicListKey(), &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.ListPublic(ctx, "", size, 0, false, 0)
			return fetchErr
		})
		return posts, err
	}

	return s.postRepo.ListPublic(ctx, in.Query, size, offset, in.Trending, in.CallerID)
}

// ListMine returns all of the caller's posts, every status, newest first.
func (s *ListingService) ListMine(ctx context.Context, caller authz.Context, page, pageSize int) ([]*models.Post, error) {
	if err := authz.RequireRole(caller, authz.RoleUser); err != nil {
		return nil, err
	}
	_, size, offset := normalizePage(page, pageSize)
	return s.postRepo.ListByAuthor(ctx, caller.UserID, size, offset)
}

// ListPending returns the moderation queue, newest first.
func (s *ListingService) ListPending(ctx context.Context, caller authz.Context, page, pageSize int) ([]*models.Post, error) {
	if err := authz.RequireRole(caller, authz.RoleAdmin); err != nil {
		return nil, err
	}
	_, size, offset := normalizePage(page, pageSize)
	return s.postRepo.ListByStatus(ctx, models.StatusPending, size, offset)
}

// GetBySlug resolves a publicly visible post and counts the view. The
// increment is a single UPDATE at the store, so concurrent reads never lose
// a count; a zero-row update doubles as the visibility check.
func (s *ListingService) GetBySlug(ctx context.Context, slug string, callerID uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "post.read",
		trace.WithAttributes(attribute.String("post.slug", slug)))
	defer span.End()

	rows, err := s.postRepo.IncrementViews(ctx, slug)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("post", slug)
	}
	observability.PostViews.Inc()
	post, err := s.postRepo.GetBySlug(ctx, slug, callerID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return post, nil
}

// GetByID fetches a post regardless of status, without a view increment.
// Non-visible posts resolve only for their author or an administrator;
// everyone else gets the same NotFound an absent id yields.
func (s *ListingService) GetByID(ctx context.Context, caller authz.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, err
	}
	if !post.Visible() && caller.Role != authz.RoleAdmin && caller.UserID != post.AuthorID {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, nil
}
