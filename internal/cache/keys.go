package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userByClerkIDPrefix = "user:clerk:%s"
	communityKeyPrefix  = "community:%d"
)

const (
	UserTTL      = 5 * time.Minute
	CommunityTTL = 10 * time.Minute
)

func UserByClerkIDKey(clerkID string) string {
	return fmt.Sprintf(userByClerkIDPrefix, clerkID)
}

func CommunityKey(id uint) string {
	return fmt.Sprintf(communityKeyPrefix, id)
}

// InvalidateUserByClerkID drops the cached user-by-clerk-id entry.
func InvalidateUserByClerkID(ctx context.Context, clerkID string) {
	Invalidate(ctx, UserByClerkIDKey(clerkID))
}

// InvalidateCommunity drops the cached community entry.
func InvalidateCommunity(ctx context.Context, id uint) {
	Invalidate(ctx, CommunityKey(id))
}
