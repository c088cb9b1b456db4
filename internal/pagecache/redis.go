package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"pacificair.org/pacificair-web/internal/cms"
)

const (
	redisKeyPrefix = "pagecache:"
	redisTagPrefix = "pagecache:tag:"
)

// RedisStore is a Store backed by Redis, for deployments where several web
// replicas should share one page cache. Expiry is delegated to Redis TTLs;
// tag membership is tracked in sets keyed by tag.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

type redisEnvelope struct {
	Page    json.RawMessage `json:"page"`
	Tags    []string        `json:"tags"`
	Expires time.Time       `json:"expires"`
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return Entry{}, false
	}
	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Entry{}, false
	}
	if s.now().After(env.Expires) {
		return Entry{}, false
	}
	page, err := cms.DecodePage(env.Page)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Page: page, Tags: env.Tags, Expires: env.Expires}, true
}

func (s *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	encoded, err := cms.EncodePage(entry.Page)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(redisEnvelope{
		Page:    encoded,
		Tags:    entry.Tags,
		Expires: entry.Expires,
	})
	if err != nil {
		return err
	}
	ttl := entry.Expires.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	storeKey := redisKeyPrefix + key
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, storeKey, raw, ttl)
	for _, tag := range entry.Tags {
		tagKey := redisTagPrefix + tag
		pipe.SAdd(ctx, tagKey, storeKey)
		pipe.Expire(ctx, tagKey, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) InvalidateByTag(ctx context.Context, tag string) error {
	tagKey := redisTagPrefix + tag
	members, err := s.client.SMembers(ctx, tagKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(members) > 0 {
		if err := s.client.Del(ctx, members...).Err(); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, tagKey).Err()
}
