package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"
	publicListKey = "blogs:public:first"
)

const (
	// PostTTL bounds staleness of single-post cache entries.
	PostTTL = 10 * time.Minute
	// ListTTL is short: the public first page changes with every approval,
	// like and comment, so it is only worth a brief window.
	ListTTL = time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// PublicListKey is the cache key for the default first page of the public listing.
func PublicListKey() string {
	return publicListKey
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidatePublicList(ctx context.Context) {
	Invalidate(ctx, publicListKey)
}
