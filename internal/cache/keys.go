package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	UserByNamePrefix   = "user:name:%s"
	PostKeyPrefix      = "post:%d"
	UserStatsKeyPrefix = "user:%s:stats"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	UserStatsTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserByNameKey(username string) string {
	return fmt.Sprintf(UserByNamePrefix, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func UserStatsKey(username string) string {
	return fmt.Sprintf(UserStatsKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateUserByName(ctx context.Context, username string) {
	Invalidate(ctx, UserByNameKey(username))
	Invalidate(ctx, UserStatsKey(username))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
