// Package textgen is the HTTP client for the external message generator.
// The generator speaks the OpenAI chat-completions format, so any
// compatible provider (or a locally hosted model) can back it. Calls carry
// an explicit timeout; callers must treat failure as degraded, never fatal.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spotter-app/spotter/internal/domain"
	"github.com/spotter-app/spotter/internal/infra/metrics"
)

// Config holds generator connection settings.
type Config struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	TimeoutS int    `toml:"timeout_s"`
}

// DefaultConfig returns the generator defaults (disabled — fallback
// templates only — until an endpoint is configured).
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Endpoint: "http://127.0.0.1:11434",
		Model:    "llama3.2",
		TimeoutS: 5,
	}
}

// Client talks to the message generator. Implements domain.TextGenerator.
type Client struct {
	cfg Config
	hc  *http.Client
}

// New creates a generator client, or nil when disabled. A nil client makes
// the classifier's Message helper go straight to fallback templates.
func New(cfg Config) *Client {
	if !cfg.Enabled {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: timeout}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate produces message text for a request descriptor.
func (c *Client) Generate(ctx context.Context, req domain.MessageRequest) (string, error) {
	start := time.Now()
	defer func() { metrics.GeneratorLatency.Observe(time.Since(start).Seconds()) }()

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(req)},
		},
		MaxTokens:   120,
		Temperature: 0.9,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.Endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("generator returned no text")
	}
	return out.Choices[0].Message.Content, nil
}

const systemPrompt = `You write one short punchy accountability message for a gym app. ` +
	`Match the requested tone severity exactly. One or two sentences, no hashtags, no emoji spam.`

// userPrompt renders the descriptor as a compact prompt. The generator only
// ever sees a snapshot — it cannot mutate engine state.
func userPrompt(req domain.MessageRequest) string {
	b, _ := json.Marshal(struct {
		Event    domain.BehaviorEvent    `json:"event"`
		Severity domain.Severity         `json:"severity"`
		Name     string                  `json:"name"`
		Streak   int                     `json:"current_streak"`
		Longest  int                     `json:"longest_streak"`
		Level    int                     `json:"level"`
		Delta    *domain.ComparisonDelta `json:"partner_delta,omitempty"`
	}{
		Event:    req.Event,
		Severity: req.Severity,
		Name:     req.UserName,
		Streak:   req.Stats.CurrentStreak,
		Longest:  req.Stats.LongestStreak,
		Level:    req.Stats.Level,
		Delta:    req.Comparison,
	})
	return string(b)
}
