package cache

import (
	"context"
	"time"
)

const revokedTokenPrefix = "careerconnect:revoked_token:"

// TokenDenylist records logged-out session tokens by their jti until they
// would have expired anyway.
type TokenDenylist struct {
	cache *Client
}

func NewTokenDenylist(cache *Client) *TokenDenylist {
	return &TokenDenylist{cache: cache}
}

// Revoke denylists tokenID for ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) {
	if tokenID == "" {
		return
	}
	d.cache.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl)
}

// IsRevoked reports whether tokenID was revoked. It is false when Redis is
// unavailable.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	if tokenID == "" {
		return false
	}
	return d.cache.Exists(ctx, revokedTokenPrefix+tokenID)
}
