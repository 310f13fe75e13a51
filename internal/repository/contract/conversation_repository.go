package contract

import (
	"context"

	"jarvina-be/internal/entity"
	"jarvina-be/internal/repository/specification"
)

type ConversationRepository interface {
	Create(ctx context.Context, entry *entity.ConversationEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationEntry, error)
	// FindRecent returns at most limit entries, oldest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.ConversationEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Truncate removes every entry in one statement.
	Truncate(ctx context.Context) error
}
