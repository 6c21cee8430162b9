package models

import "time"

// Like is a user/post membership row. The composite unique index enforces the
// at-most-once invariant; inserts use ON CONFLICT DO NOTHING so concurrent
// toggles cannot produce duplicates.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
