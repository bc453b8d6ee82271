package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps interaction state in Redis, keyed by uid with a TTL
// matching the interaction expiry. Useful when the dev engine should
// survive process restarts during a login flow.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "interaction:",
	}
}

func (r *RedisStore) key(uid string) string {
	return r.prefix + uid
}

func (r *RedisStore) Create(ctx context.Context, in Interaction) error {
	if in.UID == "" {
		return fmt.Errorf("engine: missing interaction uid")
	}

	ttl := time.Until(in.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("engine: interaction expiry must be in the future")
	}

	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("engine: failed to marshal interaction: %w", err)
	}

	return r.client.Set(ctx, r.key(in.UID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, uid string) (*Interaction, error) {
	val, err := r.client.Get(ctx, r.key(uid)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var in Interaction
	if err := json.Unmarshal([]byte(val), &in); err != nil {
		return nil, fmt.Errorf("engine: failed to unmarshal interaction: %w", err)
	}

	return &in, nil
}

func (r *RedisStore) Update(ctx context.Context, in Interaction) error {
	ttl := time.Until(in.ExpiresAt)
	if ttl <= 0 {
		// Expired while being updated; drop it instead of extending.
		return r.client.Del(ctx, r.key(in.UID)).Err()
	}

	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("engine: failed to marshal interaction: %w", err)
	}

	return r.client.Set(ctx, r.key(in.UID), data, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, uid string) error {
	return r.client.Del(ctx, r.key(uid)).Err()
}
