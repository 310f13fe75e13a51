package service

import (
	"context"

	"jarvina-be/internal/constant"
	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/repository/unitofwork"
	"jarvina-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, limit int) ([]*dto.NoteResponse, error)
	Clear(ctx context.Context) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// List returns up to limit notes, oldest first.
func (ns *noteService) List(ctx context.Context, limit int) ([]*dto.NoteResponse, error) {
	if limit <= 0 {
		limit = constant.DefaultHistoryLimit
	}

	uow := ns.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindRecent(ctx, limit)
	if err != nil {
		ns.logger.Error("NOTE", "Failed to read notes", map[string]interface{}{"error": err.Error()})
		return nil, ErrPersistence
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, &dto.NoteResponse{
			Note:      n.Content,
			Timestamp: n.CreatedAt,
		})
	}
	return res, nil
}

func (ns *noteService) Clear(ctx context.Context) error {
	uow := ns.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Truncate(ctx); err != nil {
		ns.logger.Error("NOTE", "Failed to clear notes", map[string]interface{}{"error": err.Error()})
		return ErrPersistence
	}

	ns.logger.Info("NOTE", "Notes cleared", nil)
	if ns.publisher != nil {
		if err := ns.publisher.Publish(ctx, events.NewNotesCleared(uuid.NewString())); err != nil {
			ns.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}
