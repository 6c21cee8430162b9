// Package service implements the publishing core: the post lifecycle state
// machine, the read-side listing and ranking, and reader engagement.
package service

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// LifecycleService owns every status transition. Nothing else in the
// application writes to post status or the hidden flag.
type LifecycleService struct {
	postRepo repository.PostRepository
}

// NewLifecycleService returns a new LifecycleService.
func NewLifecycleService(postRepo repository.PostRepository) *LifecycleService {
	return &LifecycleService{postRepo: postRepo}
}

type CreatePostInput struct {
	Caller  authz.Context
	Title   string
	Content string
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// Create submits a new post into the moderation queue. Posts always start
// pending; only an administrator can publish them.
func (s *LifecycleService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := authz.RequireRole(in.Caller, authz.RoleUser); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", maxTitleLen))
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError(fmt.Sprintf("Content too long (max %d characters)", maxContentLen))
	}

	post := &models.Post{
		Title:    in.Title,
		Slug:     Slugify(in.Title) + "-" + timeToken(),
		Content:  in.Content,
		AuthorID: in.Caller.UserID,
		Status:   models.StatusPending,
	}

	err := s.postRepo.Create(ctx, post)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// One retry with a fresh disambiguator, then give up.
		post.ID = 0
		post.Slug = Slugify(in.Title) + "-" + randomToken()
		err = s.postRepo.Create(ctx, post)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Could not allocate a unique slug for this title")
		}
	}
	if err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return s.postRepo.GetByID(ctx, post.ID, in.Caller.UserID)
}

// Approve publishes a post. Callable from any prior status and idempotent in
// effect.
func (s *LifecycleService) Approve(ctx context.Context, caller authz.Context, id uint) (*models.Post, error) {
	return s.transition(ctx, caller, id, models.StatusPublished, "approve")
}

// Reject marks a post rejected, including straight from pending.
func (s *LifecycleService) Reject(ctx context.Context, caller authz.Context, id uint) (*models.Post, error) {
	return s.transition(ctx, caller, id, models.StatusRejected, "reject")
}

func (s *LifecycleService) transition(ctx context.Context, caller authz.Context, id uint, status, action string) (*models.Post, error) {
	if err := authz.RequireRole(caller, authz.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.postRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("post", id)
	}
	observability.ModerationActions.WithLabelValues(action).Inc()
	return s.postRepo.GetByID(ctx, id, 0)
}

// Hide flips the hidden flag unconditionally, whatever the current status.
// The flag is orthogonal to moderation state: hiding a rejected post and
// later approving it leaves it suppressed until unhidden.
func (s *LifecycleService) Hide(ctx context.Context, caller authz.Context, id uint) (*models.Post, error) {
	if err := authz.RequireRole(caller, authz.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.postRepo.ToggleHidden(ctx, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("post", id)
	}
	observability.ModerationActions.WithLabelValues("hide").Inc()
	return s.postRepo.GetByID(ctx, id, 0)
}

// DeleteAsAuthor removes the caller's own post, whatever its status.
func (s *LifecycleService) DeleteAsAuthor(ctx context.Context, caller authz.Context, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id, 0)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("post", id)
		}
		return err
	}
	if err := authz.RequireOwner(caller, post.AuthorID); err != nil {
		return err
	}
	_, err = s.postRepo.Delete(ctx, id)
	return err
}

// DeleteAsAdmin removes any post unconditionally.
func (s *LifecycleService) DeleteAsAdmin(ctx context.Context, caller authz.Context, id uint) error {
	if err := authz.RequireRole(caller, authz.RoleAdmin); err != nil {
		return err
	}
	rows, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("post", id)
	}
	observability.ModerationActions.WithLabelValues("delete").Inc()
	return nil
}
