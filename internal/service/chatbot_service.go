package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"jarvina-be/internal/constant"
	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/repository/unitofwork"
	"jarvina-be/pkg/assistant/command"
	"jarvina-be/pkg/assistant/conversation"
	"jarvina-be/pkg/assistant/normalize"
	"jarvina-be/pkg/assistant/reply"
	"jarvina-be/pkg/events"
	"jarvina-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidHistory = &statusError{code: fiber.StatusBadRequest, msg: "message history contains an unsupported role"}

type IChatbotService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	// ModelReady reports whether a model backend was configured at startup.
	ModelReady() bool
}

type ChatbotOptions struct {
	HistoryLimit int
	Temperature  float64
	// Clock feeds the current time command; nil means time.Now.
	Clock func() time.Time
}

// chatbotService routes each utterance through commands, canned replies and
// finally the model, in that order.
type chatbotService struct {
	uowFactory  unitofwork.RepositoryFactory
	replies     *reply.Table
	assembler   *conversation.Assembler
	llmProvider llm.LLMProvider
	publisher   IPublisherService
	logger      logger.ILogger
	tracer      trace.Tracer
	opts        ChatbotOptions
}

// NewChatbotService accepts a nil llmProvider (degraded mode) and a nil
// publisher (events disabled).
func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	replies *reply.Table,
	system conversation.SystemContext,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
	opts ChatbotOptions,
) IChatbotService {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = constant.DefaultHistoryLimit
	}
	if opts.Temperature < 0 {
		opts.Temperature = constant.DefaultTemperature
	}

	return &chatbotService{
		uowFactory:  uowFactory,
		replies:     replies,
		assembler:   conversation.NewAssembler(system),
		llmProvider: llmProvider,
		publisher:   publisher,
		logger:      log,
		tracer:      otel.Tracer("jarvina-be/chatbot"),
		opts:        opts,
	}
}

func (cs *chatbotService) ModelReady() bool {
	return cs.llmProvider != nil
}

func (cs *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	ctx, span := cs.tracer.Start(ctx, "chatbot.SendChat")
	defer span.End()

	requestId := uuid.NewString()
	span.SetAttributes(attribute.String("chat.request_id", requestId))

	prompt := request.Prompt
	hasPrompt := strings.TrimSpace(prompt) != ""
	if !hasPrompt {
		// A blank prompt is neither persisted nor sent to the model.
		prompt = ""
	}
	if !hasPrompt && len(request.Messages) == 0 {
		return nil, ErrDegenerateRequest
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if hasPrompt {
		if err := appendEntry(ctx, uow, constant.ChatMessageRoleUser, prompt); err != nil {
			return nil, cs.persistenceFailure(span, requestId, "append user entry", err)
		}

		res, err := cs.runCommand(ctx, requestId, prompt)
		if err != nil {
			return nil, cs.persistenceFailure(span, requestId, "run command", err)
		}
		if res != nil {
			return cs.respond(ctx, span, res), nil
		}

		if response, ok := cs.replies.Match(normalize.Text(prompt)); ok {
			if err := appendEntry(ctx, uow, constant.ChatMessageRoleAssistant, response); err != nil {
				return nil, cs.persistenceFailure(span, requestId, "append canned reply", err)
			}
			return cs.respond(ctx, span, &dto.SendChatResponse{
				Response:  response,
				Source:    constant.ChatSourceReply,
				RequestId: requestId,
			}), nil
		}
	}

	if cs.llmProvider == nil {
		span.SetStatus(codes.Error, "model backend unavailable")
		return nil, ErrServiceUnavailable
	}

	history, err := cs.loadHistory(ctx, uow, request)
	if err != nil {
		return nil, cs.persistenceFailure(span, requestId, "load history", err)
	}

	turns, err := cs.assembler.Assemble(ctx, history, prompt)
	if err != nil {
		if errors.Is(err, conversation.ErrUnknownRole) {
			return nil, ErrInvalidHistory
		}
		return nil, err
	}
	// Only the priming pair: nothing real to answer.
	if len(turns) <= 2 {
		return nil, ErrDegenerateRequest
	}

	text, err := cs.generate(ctx, requestId, turns, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, &GenerationError{Cause: err}
	}

	if err := appendEntry(ctx, uow, constant.ChatMessageRoleAssistant, text); err != nil {
		return nil, cs.persistenceFailure(span, requestId, "append model reply", err)
	}

	return cs.respond(ctx, span, &dto.SendChatResponse{
		Response:  text,
		Source:    constant.ChatSourceModel,
		RequestId: requestId,
	}), nil
}

// runCommand returns nil when the prompt is not a command. Truncates, the
// saved note and the confirmation entry commit together, so a cleared log
// holds exactly the confirmation.
func (cs *chatbotService) runCommand(ctx context.Context, requestId, prompt string) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	interpreter := command.NewInterpreter(logStore{uow: uow}, cs.opts.Clock)
	outcome, err := interpreter.Interpret(ctx, prompt)
	if err != nil || !outcome.Handled {
		_ = uow.Rollback()
		return nil, err
	}

	if err := appendEntry(ctx, uow, constant.ChatMessageRoleAssistant, outcome.Response); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.logger.Info("COMMAND", "Command handled", map[string]interface{}{
		"request_id": requestId,
		"kind":       string(outcome.Kind),
	})
	cs.publishCommandEvent(ctx, requestId, outcome)

	return &dto.SendChatResponse{
		Response:  outcome.Response,
		Source:    constant.ChatSourceCommand,
		RequestId: requestId,
	}, nil
}

func (cs *chatbotService) publishCommandEvent(ctx context.Context, requestId string, outcome command.Outcome) {
	switch outcome.Kind {
	case command.KindClearHistory:
		cs.publish(ctx, events.NewHistoryCleared(requestId))
	case command.KindClearNotes:
		cs.publish(ctx, events.NewNotesCleared(requestId))
	case command.KindSaveNote:
		if outcome.Note != "" {
			cs.publish(ctx, events.NewNoteSaved(requestId, outcome.Note))
		}
	}
}

// loadHistory prefers the caller's messages and falls back to the most
// recent persisted entries, which end with the prompt saved above.
func (cs *chatbotService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, request *dto.SendChatRequest) ([]llm.Message, error) {
	if len(request.Messages) > 0 {
		history := make([]llm.Message, 0, len(request.Messages))
		for _, m := range request.Messages {
			history = append(history, llm.Message{Role: m.Role, Content: m.Content})
		}
		return history, nil
	}

	entries, err := uow.ConversationRepository().FindRecent(ctx, cs.opts.HistoryLimit)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, 0, len(entries))
	for _, e := range entries {
		history = append(history, llm.Message{Role: e.Role, Content: e.Content})
	}
	return history, nil
}

func (cs *chatbotService) generate(ctx context.Context, requestId string, turns []llm.Message, request *dto.SendChatRequest) (string, error) {
	ctx, span := cs.tracer.Start(ctx, "chatbot.Generate")
	defer span.End()

	temperature := cs.opts.Temperature
	if request.Temperature != nil {
		temperature = *request.Temperature
	}
	opts := []llm.Option{llm.WithTemperature(temperature)}
	if request.MaxTokens != nil {
		opts = append(opts, llm.WithMaxTokens(*request.MaxTokens))
	}
	span.SetAttributes(
		attribute.Int("llm.turns", len(turns)),
		attribute.Float64("llm.temperature", temperature),
	)

	start := time.Now()
	text, err := cs.llmProvider.Chat(ctx, turns, opts...)
	details := map[string]interface{}{
		"request_id":  requestId,
		"turns":       len(turns),
		"temperature": temperature,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		details["error"] = err.Error()
		cs.logger.Error("LLM", "Generation failed", details)
		return "", err
	}

	cs.logger.Debug("LLM", "Generation succeeded", details)
	return text, nil
}

func (cs *chatbotService) respond(ctx context.Context, span trace.Span, res *dto.SendChatResponse) *dto.SendChatResponse {
	span.SetAttributes(attribute.String("chat.source", res.Source))
	cs.publish(ctx, events.NewReplySent(res.RequestId, res.Source))
	return res
}

func (cs *chatbotService) persistenceFailure(span trace.Span, requestId, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	cs.logger.Error("CHATBOT", "Persistence failure", map[string]interface{}{
		"request_id": requestId,
		"operation":  op,
		"error":      err.Error(),
	})
	return ErrPersistence
}

func (cs *chatbotService) publish(ctx context.Context, event events.Event) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
