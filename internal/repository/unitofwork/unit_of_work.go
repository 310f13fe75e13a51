package unitofwork

import (
	"context"

	"jarvina-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	NoteRepository() contract.NoteRepository
}
