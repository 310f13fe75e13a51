package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatbot struct {
	err error
}

func (s stubChatbot) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SendChatResponse{Response: "pong", Source: "reply"}, nil
}

func (s stubChatbot) ModelReady() bool { return true }

type frame struct {
	Success bool                  `json:"success"`
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Data    *dto.SendChatResponse `json:"data"`
}

func decodeFrame(t *testing.T, data []byte) frame {
	t.Helper()
	var f frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestClientHandle(t *testing.T) {
	tests := []struct {
		name     string
		chatbot  service.IChatbotService
		input    string
		wantCode int
	}{
		{name: "reply", chatbot: stubChatbot{}, input: `{"prompt":"ping"}`, wantCode: 200},
		{name: "malformed json", chatbot: stubChatbot{}, input: `{`, wantCode: 400},
		{name: "invalid role", chatbot: stubChatbot{}, input: `{"prompt":"hi","messages":[{"role":"robot","content":"x"}]}`, wantCode: 400},
		{name: "degraded", chatbot: stubChatbot{err: service.ErrServiceUnavailable}, input: `{"prompt":"hi"}`, wantCode: 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{chatbot: tt.chatbot, logger: logger.NewNopLogger()}
			f := decodeFrame(t, c.handle(context.Background(), []byte(tt.input)))
			assert.Equal(t, tt.wantCode, f.Code)
			assert.Equal(t, tt.wantCode == 200, f.Success)
			if tt.wantCode == 200 {
				require.NotNil(t, f.Data)
				assert.Equal(t, "pong", f.Data.Response)
			}
		})
	}
}
