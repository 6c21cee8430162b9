// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post statuses. Hidden is not a status: a published post is suppressed
// independently via the IsHidden flag, so a moderation decision (reject) and a
// visibility decision (hide) never overwrite each other.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// Post represents a blog submission with a moderation status.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Status   string `gorm:"not null;default:pending;index" json:"status"`
	IsHidden bool   `gorm:"not null;default:false" json:"is_hidden"`
	Views    int    `gorm:"not null;default:0" json:"views"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Visible reports whether the post is part of the public listing scope.
func (p *Post) Visible() bool {
	return p.Status == StatusPublished && !p.IsHidden
}
