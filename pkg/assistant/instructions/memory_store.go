package instructions

import (
	"context"

	"github.com/patrickmn/go-cache"
)

const memoryKey = "custom_instructions"

// MemoryStore is a process-local backend for development and tests.
// Content is lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Read(ctx context.Context) (string, error) {
	if x, found := s.cache.Get(memoryKey); found {
		return x.(string), nil
	}
	return "", nil
}

func (s *MemoryStore) Write(ctx context.Context, instructions string) error {
	s.cache.Set(memoryKey, instructions, cache.NoExpiration)
	return nil
}
