package instructions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "jarvina:custom_instructions"

// RedisStore keeps the same JSON document as FileStore under one key.
// A single SET is atomic for concurrent readers.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Read(ctx context.Context) (string, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("decode instructions key %s: %w", s.key, err)
	}
	return doc.Instructions, nil
}

func (s *RedisStore) Write(ctx context.Context, instructions string) error {
	data, err := json.Marshal(document{Instructions: instructions})
	if err != nil {
		return fmt.Errorf("encode instructions: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
