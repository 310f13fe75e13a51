package service

import (
	"context"

	"jarvina-be/internal/entity"
	"jarvina-be/internal/repository/unitofwork"
)

// logStore lets the command interpreter act on the logs of one unit of work.
type logStore struct {
	uow unitofwork.UnitOfWork
}

func (s logStore) TruncateHistory(ctx context.Context) error {
	return s.uow.ConversationRepository().Truncate(ctx)
}

func (s logStore) TruncateNotes(ctx context.Context) error {
	return s.uow.NoteRepository().Truncate(ctx)
}

func (s logStore) SaveNote(ctx context.Context, content string) error {
	return s.uow.NoteRepository().Create(ctx, &entity.Note{Content: content})
}

func appendEntry(ctx context.Context, uow unitofwork.UnitOfWork, role, content string) error {
	return uow.ConversationRepository().Create(ctx, &entity.ConversationEntry{
		Role:    role,
		Content: content,
	})
}
