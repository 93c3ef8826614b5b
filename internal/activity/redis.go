package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps activity in capped lists, newest first.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func searchKey(userID string) string { return "history:search:" + userID }
func viewKey(userID string) string   { return "history:view:" + userID }

func (r *RedisStore) AddSearch(ctx context.Context, userID string, rec SearchRecord) error {
	return r.push(ctx, searchKey(userID), rec)
}

func (r *RedisStore) AddView(ctx context.Context, userID string, rec ViewRecord) error {
	return r.push(ctx, viewKey(userID), rec)
}

func (r *RedisStore) push(ctx context.Context, key string, rec interface{}) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, MaxRecords-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis push: %w", err)
	}
	return nil
}

func (r *RedisStore) RecentSearches(ctx context.Context, userID string, limit int) ([]SearchRecord, error) {
	raws, err := r.client.LRange(ctx, searchKey(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	records := make([]SearchRecord, 0, len(raws))
	for _, raw := range raws {
		var rec SearchRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisStore) RecentViews(ctx context.Context, userID string, limit int) ([]ViewRecord, error) {
	raws, err := r.client.LRange(ctx, viewKey(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	records := make([]ViewRecord, 0, len(raws))
	for _, raw := range raws {
		var rec ViewRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
