package websocket

import (
	"context"

	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatHandler exposes the chat pipeline over a websocket at /ws/chat. Each
// text frame carries the same JSON body as POST /api/chat/v1.
type ChatHandler struct {
	chatbot service.IChatbotService
	logger  logger.ILogger
}

func NewChatHandler(chatbot service.IChatbotService, log logger.ILogger) *ChatHandler {
	return &ChatHandler{chatbot: chatbot, logger: log}
}

func (h *ChatHandler) RegisterRoutes(app fiber.Router) {
	ws := app.Group("/ws")
	ws.Use(func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/chat", websocket.New(h.serve))
}

func (h *ChatHandler) serve(c *websocket.Conn) {
	client := &Client{
		Conn:    c,
		ID:      uuid.NewString(),
		Send:    make(chan []byte, 16),
		chatbot: h.chatbot,
		logger:  h.logger,
	}
	h.logger.Info("WEBSOCKET", "Chat client connected", map[string]interface{}{"client_id": client.ID})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.writePump()
	client.readPump(ctx)

	h.logger.Info("WEBSOCKET", "Chat client disconnected", map[string]interface{}{"client_id": client.ID})
}
