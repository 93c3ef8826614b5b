package wishlist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

// RedisStore keeps each user's wishlist in a hash keyed by product id.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func wishlistKey(userID string) string {
	return "wishlist:" + userID
}

func (r *RedisStore) Add(ctx context.Context, userID string, p catalog.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	added, err := r.client.HSetNX(ctx, wishlistKey(userID), p.ID, data).Result()
	if err != nil {
		return fmt.Errorf("redis hsetnx: %w", err)
	}
	if !added {
		return ErrDuplicate
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, userID, productID string) error {
	removed, err := r.client.HDel(ctx, wishlistKey(userID), productID).Result()
	if err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context, userID string) ([]catalog.Product, error) {
	entries, err := r.client.HGetAll(ctx, wishlistKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	products := make([]catalog.Product, 0, len(entries))
	for _, raw := range entries {
		var p catalog.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			// A corrupt entry only costs itself.
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
