package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileListKey   = "profiles:all"
	ProfileKeyPrefix = "profile:%d"
)

const (
	ProfileListTTL = 5 * time.Minute
	ProfileTTL     = 5 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

// Invalidate deletes a key, silently skipping when caching is disabled.
func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateProfile drops both the per-user profile entry and the public list.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID), ProfileListKey)
}
