package bootstrap

import (
	"context"
	"errors"

	"jarvina-be/internal/config"
	"jarvina-be/internal/controller"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/repository/unitofwork"
	"jarvina-be/internal/service"
	"jarvina-be/internal/websocket"
	"jarvina-be/pkg/assistant/instructions"
	"jarvina-be/pkg/assistant/persona"
	"jarvina-be/pkg/assistant/prompt"
	"jarvina-be/pkg/export"
	"jarvina-be/pkg/llm"
	"jarvina-be/pkg/llm/factory"
	pktNats "jarvina-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const eventsTopic = "assistant.events"

type Container struct {
	// Controllers
	ChatbotController      controller.IChatbotController
	HistoryController      controller.IHistoryController
	NoteController         controller.INoteController
	InstructionsController controller.IInstructionsController
	ExportController       controller.IExportController
	HealthController       controller.IHealthController

	// WebSockets
	ChatHandler *websocket.ChatHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// NewContainer builds every long-lived dependency once. Optional
// infrastructure (redis, NATS, the model backend) degrades with a log entry
// instead of failing startup.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var sink service.EventSink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("EVENTS", "NATS unavailable, events stay in process", map[string]interface{}{
				"url":   cfg.App.NatsURL,
				"error": err.Error(),
			})
		} else {
			sink = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(eventsTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, eventsTopic, sink, sysLogger)

	// 3. Assistant memory, loaded once and shared read-only
	memory := persona.Load(cfg.Assistant.MemoryFilePath, sysLogger)
	instructionsStore := c.newInstructionsStore(ctx, cfg, sysLogger)
	contextBuilder := prompt.NewContextBuilder(memory.Persona, instructionsStore, sysLogger)

	// 4. Model backend
	llmProvider := newLLMProvider(ctx, cfg, sysLogger)

	// 5. Services
	chatbotService := service.NewChatbotService(
		uowFactory,
		memory.Replies,
		contextBuilder,
		llmProvider,
		publisherService,
		sysLogger,
		service.ChatbotOptions{
			HistoryLimit: cfg.Assistant.HistoryLimit,
			Temperature:  cfg.Ai.Temperature,
		},
	)
	historyService := service.NewHistoryService(uowFactory, publisherService, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	instructionsService := service.NewInstructionsService(instructionsStore, sysLogger)
	exportService := service.NewExportService(export.NewRegistry(), sysLogger)

	// 6. Controllers
	personaName := ""
	if memory.Persona != nil {
		personaName = memory.Persona.Name
	}
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.HistoryController = controller.NewHistoryController(historyService)
	c.NoteController = controller.NewNoteController(noteService)
	c.InstructionsController = controller.NewInstructionsController(instructionsService)
	c.ExportController = controller.NewExportController(exportService)
	c.HealthController = controller.NewHealthController(chatbotService, controller.HealthInfo{
		Provider:     cfg.Ai.LLMProvider,
		ReplyPhrases: memory.Replies.Len(),
		PersonaName:  personaName,
	})
	c.ChatHandler = websocket.NewChatHandler(chatbotService, sysLogger)

	sysLogger.Info("BOOTSTRAP", "Assistant ready", map[string]interface{}{
		"persona":              personaName,
		"reply_phrases":        memory.Replies.Len(),
		"instructions_backend": cfg.Assistant.InstructionsBackend,
		"llm_provider":         cfg.Ai.LLMProvider,
		"model_ready":          llmProvider != nil,
		"nats":                 sink != nil,
	})

	return c
}

// newInstructionsStore falls back to the file backend when redis is
// requested but unreachable.
func (c *Container) newInstructionsStore(ctx context.Context, cfg *config.Config, log logger.ILogger) instructions.Store {
	backend := cfg.Assistant.InstructionsBackend

	var rdb redis.UniversalClient
	if backend == instructions.BackendRedis {
		client, err := newRedisClient(ctx, cfg.App.RedisURL)
		if err != nil {
			log.Warn("INSTRUCTIONS", "Redis unavailable, using file backend", map[string]interface{}{
				"error": err.Error(),
			})
			backend = instructions.BackendFile
		} else {
			rdb = client
			c.closers = append(c.closers, func() { _ = client.Close() })
		}
	}

	store, err := instructions.NewStore(backend, cfg.Assistant.InstructionsFile, rdb)
	if err != nil {
		log.Warn("INSTRUCTIONS", "Unknown instructions backend, using file backend", map[string]interface{}{
			"backend": backend,
			"error":   err.Error(),
		})
		return instructions.NewFileStore(cfg.Assistant.InstructionsFile)
	}
	return store
}

func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("REDIS_URL is not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// newLLMProvider returns nil when the backend cannot be built; the chatbot
// then serves commands and canned replies only.
func newLLMProvider(ctx context.Context, cfg *config.Config, log logger.ILogger) llm.LLMProvider {
	baseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == factory.ProviderOllama {
		baseURL = cfg.Ai.OllamaBaseURL
	}

	provider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  baseURL,
		APIKey:   cfg.APIKeyFor(cfg.Ai.LLMProvider),
	})
	if err != nil {
		details := map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		}
		if errors.Is(err, llm.ErrMissingCredential) {
			log.Warn("LLM", "No credential for the model backend, running in degraded mode", details)
		} else {
			log.Error("LLM", "Failed to initialize the model backend, running in degraded mode", details)
		}
		return nil
	}

	log.Info("LLM", "Using LLM Provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})
	return provider
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
