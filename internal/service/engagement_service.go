package service

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/authz"
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// EngagementService owns likes, comments and view counters. Engagement is
// deliberately permitted on non-published posts; the read side already keeps
// them out of public listings.
type EngagementService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *EngagementService {
	return &EngagementService{postRepo: postRepo, commentRepo: commentRepo}
}

// LikeResult is the response of a toggle: the caller's new membership and the
// post's like count after the toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likes_count"`
}

// ToggleLike adds the caller to the post's liked set, or removes them if
// already present. The store-level insert/delete are atomic, so concurrent
// toggles from different users never lose an update and a double toggle from
// one user is its own inverse.
func (s *EngagementService) ToggleLike(ctx context.Context, caller authz.Context, postID uint) (*LikeResult, error) {
	if err := authz.RequireRole(caller, authz.RoleUser); err != nil {
		return nil, err
	}
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, caller.UserID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.postRepo.Unlike(ctx, caller.UserID, postID)
	} else {
		err = s.postRepo.Like(ctx, caller.UserID, postID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: !liked, LikeCount: count}, nil
}

const maxCommentLen = 10000

// AddComment appends a comment to the post and returns the refreshed post.
// Comments are never edited or removed individually.
func (s *EngagementService) AddComment(ctx context.Context, caller authz.Context, postID uint, text string) (*models.Post, error) {
	if err := authz.RequireRole(caller, authz.RoleUser); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError(fmt.Sprintf("Comment too long (max %d characters)", maxCommentLen))
	}
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: caller.UserID,
		Content:  text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)

	return s.postRepo.GetByID(ctx, postID, caller.UserID)
}

func (s *EngagementService) ensurePostExists(ctx context.Context, postID uint) error {
	_, err := s.postRepo.GetByID(ctx, postID, 0)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("post", postID)
	}
	return err
}
