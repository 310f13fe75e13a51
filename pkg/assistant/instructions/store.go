package instructions

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store holds the user's custom instructions. Implementations must make
// Write atomic with respect to concurrent Read calls.
type Store interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, instructions string) error
}

var ErrUnsupportedBackend = errors.New("unsupported instructions backend")

// document is the on-disk and on-wire shape shared by the file and redis
// backends.
type document struct {
	Instructions string `json:"instructions"`
}

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// NewStore picks a backend by name. rdb is only used by the redis backend.
func NewStore(backend, filePath string, rdb redis.UniversalClient) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(filePath), nil
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("%w: redis backend without a client", ErrUnsupportedBackend)
		}
		return NewRedisStore(rdb, DefaultRedisKey), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
}
