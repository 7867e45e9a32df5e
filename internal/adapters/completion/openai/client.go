// Package openai habla con cualquier endpoint compatible con chat completions.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"futbol-tracker/internal/platform/httpclient"
	"futbol-tracker/internal/ports/completion"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

var ErrNotConfigured = errors.New("openai client not configured")

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration

	Transport http.RoundTripper
}

type Client struct {
	http        *httpclient.Client
	model       string
	temperature float64
}

func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, fmt.Errorf("%w: %w", ErrNotConfigured, completion.ErrUnauthorized)
	}

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   cfg.Timeout,
		Headers:   map[string]string{"Authorization": "Bearer " + key},
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	return &Client{http: hc, model: model, temperature: cfg.Temperature}, nil
}

func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete manda el prompt como único mensaje de usuario.
func (c *Client) Complete(ctx context.Context, prompt string) (completion.Result, error) {
	var out chatResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/chat/completions", nil, chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	}, &out)
	if err != nil {
		return completion.Result{}, mapError(err)
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return completion.Result{}, completion.ErrEmptyResponse
	}

	model := out.Model
	if model == "" {
		model = c.model
	}
	return completion.Result{Text: out.Choices[0].Message.Content, Model: model}, nil
}

// Verify lista los modelos, lo más barato que exige credencial válida.
func (c *Client) Verify(ctx context.Context) error {
	if err := c.http.DoJSON(ctx, http.MethodGet, "/models", nil, nil, nil); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	switch httpclient.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", completion.ErrUnauthorized, err)
	}
	return fmt.Errorf("openai: %w", err)
}
