package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrUnavailable means the model server could not be reached or refused the
// request; callers translate it into a 503.
var ErrUnavailable = errors.New("ollama service is unavailable")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

type Client struct {
	baseURL string
	model   string
	client  *http.Client
	log     *slog.Logger
}

func New(log *slog.Logger, baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Chat sends the conversation to the model and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	const op = "clients.ollama.Chat"

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("ollama request failed", slog.String("operation", op), slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("ollama returned non-200", slog.String("operation", op), slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return parsed.Message.Content, nil
}
