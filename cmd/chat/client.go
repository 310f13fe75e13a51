package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/serverutils"
)

// apiClient talks to the REST API and unwraps the response envelope.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// apiError carries the server's status code and message.
type apiError struct {
	Code    int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	envelope := serverutils.Response[json.RawMessage]{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &apiError{Code: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &apiError{Code: resp.StatusCode, Message: envelope.Message}
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *apiClient) Chat(ctx context.Context, prompt string) (*dto.SendChatResponse, error) {
	var res dto.SendChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat/v1", dto.SendChatRequest{Prompt: prompt}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) History(ctx context.Context, limit int) ([]*dto.HistoryEntryResponse, error) {
	var res []*dto.HistoryEntryResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/history/v1?limit=%d", limit), nil, &res)
	return res, err
}

func (c *apiClient) Notes(ctx context.Context, limit int) ([]*dto.NoteResponse, error) {
	var res []*dto.NoteResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/note/v1?limit=%d", limit), nil, &res)
	return res, err
}

func (c *apiClient) Instructions(ctx context.Context) (*dto.InstructionsResponse, error) {
	var res dto.InstructionsResponse
	if err := c.do(ctx, http.MethodGet, "/instructions/v1", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) UpdateInstructions(ctx context.Context, text string) (*dto.InstructionsResponse, error) {
	var res dto.InstructionsResponse
	req := dto.UpdateInstructionsRequest{Instructions: text}
	if err := c.do(ctx, http.MethodPut, "/instructions/v1", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
