package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jarvina-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string                   `json:"model"`
	Messages []map[string]interface{} `json:"messages"`
	Stream   bool                     `json:"stream"`
	Options  map[string]interface{}   `json:"options"`
}

func TestOllamaProviderChat(t *testing.T) {
	var captured capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.1:8b","message":{"role":"assistant","content":"Hello from Ollama"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "llama3.1:8b")
	require.NoError(t, err)

	got, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleModel, Content: "hello"},
		{Role: llm.RoleUser, Content: "how are you"},
	}, llm.WithTemperature(0.2), llm.WithMaxTokens(64))
	require.NoError(t, err)

	assert.Equal(t, "Hello from Ollama", got)
	assert.Equal(t, "llama3.1:8b", captured.Model)
	assert.False(t, captured.Stream)
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "assistant", captured.Messages[1]["role"])
	assert.InDelta(t, 0.2, captured.Options["temperature"], 1e-9)
	assert.EqualValues(t, 64, captured.Options["num_predict"])
}

func TestOllamaProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "llama3.1:8b")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "hi")
	assert.Error(t, err)
}
