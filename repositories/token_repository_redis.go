package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "token_blacklist:"

// RedisTokenRepository keeps revoked token IDs as keys that expire with the token.
type RedisTokenRepository struct {
	client *redis.Client
}

func NewRedisTokenRepository(client *redis.Client) ITokenRepository {
	return &RedisTokenRepository{client: client}
}

func (r *RedisTokenRepository) AddBlacklistedToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *RedisTokenRepository) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CleanExpiredTokens is a no-op; Redis expires the keys itself.
func (r *RedisTokenRepository) CleanExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}
