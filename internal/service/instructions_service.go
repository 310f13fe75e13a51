package service

import (
	"context"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/pkg/assistant/instructions"
)

type IInstructionsService interface {
	Get(ctx context.Context) (*dto.InstructionsResponse, error)
	Update(ctx context.Context, request *dto.UpdateInstructionsRequest) (*dto.InstructionsResponse, error)
}

type instructionsService struct {
	store  instructions.Store
	logger logger.ILogger
}

func NewInstructionsService(store instructions.Store, log logger.ILogger) IInstructionsService {
	return &instructionsService{
		store:  store,
		logger: log,
	}
}

// Get never fails on a corrupt or missing document; it reports empty
// instructions instead.
func (is *instructionsService) Get(ctx context.Context) (*dto.InstructionsResponse, error) {
	text, err := is.store.Read(ctx)
	if err != nil {
		is.logger.Warn("INSTRUCTIONS", "Failed to read custom instructions, using none", map[string]interface{}{
			"error": err.Error(),
		})
		text = ""
	}
	return &dto.InstructionsResponse{Instructions: text}, nil
}

func (is *instructionsService) Update(ctx context.Context, request *dto.UpdateInstructionsRequest) (*dto.InstructionsResponse, error) {
	if err := is.store.Write(ctx, request.Instructions); err != nil {
		is.logger.Error("INSTRUCTIONS", "Failed to save custom instructions", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, ErrPersistence
	}

	is.logger.Info("INSTRUCTIONS", "Custom instructions saved", map[string]interface{}{
		"length": len(request.Instructions),
	})
	return &dto.InstructionsResponse{Instructions: request.Instructions}, nil
}
