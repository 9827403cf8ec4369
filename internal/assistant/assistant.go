// Package assistant relays user questions to an OpenAI-compatible
// chat-completion endpoint. It is an external collaborator with plain
// request/response semantics; nothing here persists state.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const systemPrompt = "You are the in-app helper of a maintenance asset tracker. " +
	"Answer briefly and practically about equipment upkeep, inventory bookkeeping and service planning."

// Config holds the connection settings for the chat-completion endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	TimeoutSec int
}

// Client calls the chat-completion endpoint. A client without an API key is
// disabled and must not be asked anything.
type Client struct {
	config Config
	http   *http.Client
}

// New creates a Client, filling in endpoint defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	timeout := cfg.TimeoutSec
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Enabled reports whether the client has credentials to make calls.
func (c *Client) Enabled() bool {
	return c.config.APIKey != ""
}

// Ask sends one user message and returns the assistant's reply.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("assistant is not configured")
	}
	if message == "" {
		return "", errors.New("message is empty")
	}

	body := map[string]any{
		"model": c.config.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": message},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return "", fmt.Errorf("assistant: %s", resp.Status)
		}
		return "", fmt.Errorf("assistant: %s: %s", resp.Status, raw)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("assistant decode: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("assistant: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// chatResponse is the raw chat-completion response shape.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
