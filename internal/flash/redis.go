package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:flash:"

type cmdable interface {
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	GetDel(context.Context, string) *redis.StringCmd
}

// Redisに置くStore。複数インスタンスでもセッションのメッセージを共有できる。
type RedisStore struct {
	store cmdable
	ttl   time.Duration
}

func NewRedisStore(client cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{store: client, ttl: ttl}
}

// NewRedisClient はURLから接続を作り、疎通を確認する。
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key(sessionID), string(b), s.ttl).Err()
}

func (s *RedisStore) Pop(ctx context.Context, sessionID string) (*Message, error) {
	raw, err := s.store.GetDel(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("decode flash: %w", err)
	}
	return &msg, nil
}
