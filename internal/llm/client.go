package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client wraps the queue for one OpenAI-compatible endpoint.
type Client struct {
	manager  *Manager
	priority Priority
	timeout  time.Duration
	baseURL  string
	model    string
	apiKey   string
}

func NewClient(manager *Manager, priority Priority, timeout time.Duration, baseURL, model, apiKey string) *Client {
	return &Client{
		manager:  manager,
		priority: priority,
		timeout:  timeout,
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		apiKey:   apiKey,
	}
}

// Call submits payload to path under the base URL and waits for the body.
func (c *Client) Call(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	respCh := make(chan *Response, 1)
	errCh := make(chan error, 1)

	req := &Request{
		ID:         uuid.NewString(),
		Priority:   c.priority,
		Context:    ctx,
		URL:        c.baseURL + path,
		APIKey:     c.apiKey,
		Payload:    payload,
		ResponseCh: respCh,
		ErrorCh:    errCh,
		SubmitTime: time.Now(),
		Timeout:    c.timeout,
	}

	if err := c.manager.Submit(req); err != nil {
		return nil, fmt.Errorf("failed to submit: %w", err)
	}

	select {
	case resp := <-respCh:
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("llm returned status %d", resp.StatusCode)
		}
		return resp.Body, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const chatCompletionsPath = "/v1/chat/completions"

// ChatJSON runs one chat completion in JSON mode and returns the message
// content of the first choice.
func (c *Client) ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	body, err := c.Call(ctx, chatCompletionsPath, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", err
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyContent
	}
	return parsed.Choices[0].Message.Content, nil
}
