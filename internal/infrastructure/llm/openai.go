package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"shopbot-backend/pkg/logger"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. One
// instance serves classification, extraction and small talk.
type Client struct {
	config     Config
	httpClient *http.Client
}

// Config carries the resolved provider settings.
type Config struct {
	Provider    Provider
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s: set %s",
			config.Provider, APIKeyEnvVar(config.Provider))
	}
	if config.Model == "" {
		config.Model = DefaultModel(config.Provider)
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL(config.Provider)
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 1000
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	logger.Debug(fmt.Sprintf("LLM call: provider=%s model=%s status=%d latency=%s",
		c.config.Provider, c.config.Model, resp.StatusCode, time.Since(start)))

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ClassifyIntent asks the model for the intent label of a user message
func (c *Client) ClassifyIntent(ctx context.Context, message string, convCtx Context) (string, error) {
	label, err := c.complete(ctx, buildIntentMessages(message, convCtx))
	if err != nil {
		return "", err
	}
	return label, nil
}

// ExtractCartAction asks the model for the structured cart payload and
// validates it against the schema. A schema violation is an error, not a
// silent default.
func (c *Client) ExtractCartAction(ctx context.Context, message string, convCtx Context) (*CartAction, error) {
	raw, err := c.complete(ctx, buildExtractionMessages(message, convCtx))
	if err != nil {
		return nil, err
	}

	action, err := ParseCartAction(raw)
	if err != nil {
		return nil, err
	}
	return action, nil
}

// SmallTalk asks the model to phrase a deflection for off-topic input
func (c *Client) SmallTalk(ctx context.Context, message string) (string, error) {
	return c.complete(ctx, buildSmallTalkMessages(message))
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// cleanJSONResponse strips markdown code fences and surrounding prose
// from a model reply, leaving the JSON object.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}

	if match := jsonObjectPattern.FindString(content); match != "" {
		content = match
	}

	return strings.TrimSpace(content)
}

// ParseCartAction decodes and validates a raw extractor reply. Exported
// so deterministic stand-ins can share the schema handling.
func ParseCartAction(raw string) (*CartAction, error) {
	cleaned := cleanJSONResponse(raw)

	var action CartAction
	if err := json.Unmarshal([]byte(cleaned), &action); err != nil {
		return nil, fmt.Errorf("extractor reply is not valid JSON: %w", err)
	}

	// Absent quantity means one unit.
	if action.Quantity == 0 {
		action.Quantity = 1
	}

	if err := action.Validate(); err != nil {
		return nil, fmt.Errorf("extractor reply violates schema: %w", err)
	}

	return &action, nil
}
