package websocket

import (
	"context"
	"encoding/json"
	"time"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/pkg/serverutils"
	"jarvina-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client serves one chat connection. Requests on a connection are handled in
// arrival order.
type Client struct {
	Conn    *websocket.Conn
	ID      string
	Send    chan []byte
	chatbot service.IChatbotService
	logger  logger.ILogger
}

// readPump decodes each inbound frame as a chat request and queues the reply.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		close(c.Send)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WEBSOCKET", "Unexpected close", map[string]interface{}{
					"client_id": c.ID,
					"error":     err.Error(),
				})
			}
			return
		}

		c.Send <- c.handle(ctx, data)
	}
}

func (c *Client) handle(ctx context.Context, data []byte) []byte {
	var req dto.SendChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return encode(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return encode(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.chatbot.SendChat(ctx, &req)
	if err != nil {
		code := serverutils.StatusFromError(err)
		return encode(serverutils.ErrorResponse(code, err.Error()))
	}
	return encode(serverutils.SuccessResponse("Success send chat", res))
}

func encode(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(serverutils.ErrorResponse(500, "failed to encode response"))
	}
	return data
}

// writePump sends queued replies and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
