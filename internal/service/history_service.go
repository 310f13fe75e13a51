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

type IHistoryService interface {
	List(ctx context.Context, limit int) ([]*dto.HistoryEntryResponse, error)
	Clear(ctx context.Context) error
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) IHistoryService {
	return &historyService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// List returns up to limit entries, oldest first.
func (hs *historyService) List(ctx context.Context, limit int) ([]*dto.HistoryEntryResponse, error) {
	if limit <= 0 {
		limit = constant.DefaultHistoryLimit
	}

	uow := hs.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.ConversationRepository().FindRecent(ctx, limit)
	if err != nil {
		hs.logger.Error("HISTORY", "Failed to read history", map[string]interface{}{"error": err.Error()})
		return nil, ErrPersistence
	}

	res := make([]*dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, &dto.HistoryEntryResponse{
			Role:      e.Role,
			Content:   e.Content,
			Timestamp: e.CreatedAt,
		})
	}
	return res, nil
}

func (hs *historyService) Clear(ctx context.Context) error {
	uow := hs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Truncate(ctx); err != nil {
		hs.logger.Error("HISTORY", "Failed to clear history", map[string]interface{}{"error": err.Error()})
		return ErrPersistence
	}

	hs.logger.Info("HISTORY", "History cleared", nil)
	if hs.publisher != nil {
		if err := hs.publisher.Publish(ctx, events.NewHistoryCleared(uuid.NewString())); err != nil {
			hs.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}
