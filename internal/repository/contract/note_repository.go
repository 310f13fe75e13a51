package contract

import (
	"context"

	"jarvina-be/internal/entity"
	"jarvina-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	// FindRecent returns at most limit notes, oldest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Truncate removes every note in one statement.
	Truncate(ctx context.Context) error
}
