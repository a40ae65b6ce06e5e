package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository persists refresh token records in Redis.
// Records carry no TTL: refresh tokens have no expiry, deleting the
// record is the only way a token dies.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// getTokenKey generates the Redis key for a refresh token record
func getTokenKey(tokenHash string) string {
	return fmt.Sprintf("refresh_token:%s", tokenHash)
}

// Create stores a refresh token record
func (r *RedisRepository) Create(ctx context.Context, token string) error {
	key := getTokenKey(hashToken(token))

	err := r.client.HSet(ctx, key, map[string]any{
		"created_at": time.Now().Unix(),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Exists reports whether a record for the token is present
func (r *RedisRepository) Exists(ctx context.Context, token string) (bool, error) {
	key := getTokenKey(hashToken(token))

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	return n > 0, nil
}

// Delete removes the record for the token. Idempotent: deleting a
// non-existent record succeeds.
func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	key := getTokenKey(hashToken(token))

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
