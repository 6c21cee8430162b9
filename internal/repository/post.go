// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Every mutating method is a single-statement store operation so concurrent
// requests never observe partial updates.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error)
	// IncrementViews bumps the view counter of a publicly visible post.
	// Returns the number of rows touched (0 when the slug does not resolve
	// to a published, non-hidden post).
	IncrementViews(ctx context.Context, slug string) (int64, error)
	ListPublic(ctx context.Context, query string, limit, offset int, trending bool, currentUserID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	ToggleHidden(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikeCount(ctx context.Context, postID uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) IncrementViews(ctx context.Context, slug string) (int64, error) {
	// Update (not UpdateColumn) so updated_at is touched along with the
	// counter; every write to a post refreshes its timestamp.
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ? AND status = ? AND is_hidden = ?", slug, models.StatusPublished, false).
		Update("views", gorm.Expr("views + 1"))
	return res.RowsAffected, res.Error
}

func (r *postRepository) ListPublic(ctx context.Context, query string, limit, offset int, trending bool, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	base := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("status = ? AND is_hidden = ?", models.StatusPublished, false)

	if query != "" {
		// Case-insensitive substring scan. LOWER/LIKE is portable across
		// postgres and the sqlite test driver; there is no inverted-index
		// relevance ranking, results keep the requested sort order.
		like := "%" + strings.ToLower(query) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	if trending {
		// likes_count and comments_count are SELECT aliases from
		// applyPostDetails; both postgres and sqlite allow referencing them
		// in ORDER BY within the same query level.
		base = base.Order("likes_count DESC, comments_count DESC, views DESC, created_at DESC")
	} else {
		base = base.Order("created_at DESC")
	}

	err := base.
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), authorID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error == nil && res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, id)
		cache.InvalidatePublicList(ctx)
	}
	return res.RowsAffected, res.Error
}

func (r *postRepository) ToggleHidden(ctx context.Context, id uint) (int64, error) {
	// Atomic flip at the store; two concurrent toggles land back where they
	// started instead of losing one.
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_hidden", gorm.Expr("NOT is_hidden"))
	if res.Error == nil && res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, id)
		cache.InvalidatePublicList(ctx)
	}
	return res.RowsAffected, res.Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) (int64, error) {
	// Comments and likes go with the post in one transaction; a failure on
	// any statement rolls the whole cascade back.
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		cache.InvalidatePost(ctx, id)
		cache.InvalidatePublicList(ctx)
	}
	return rows, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic and keeps the membership
	// invariant under concurrent toggles from the same user.
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
