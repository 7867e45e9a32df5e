package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"futbol-tracker/internal/platform/httpclient"
	"futbol-tracker/internal/ports/completion"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"

	apiKeyHeader = "x-goog-api-key"
)

var ErrNotConfigured = errors.New("gemini client not configured")

// Config del cliente Gemini (Generative Language API, REST).
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	http  *httpclient.Client
	model string
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
		Headers:   map[string]string{apiKeyHeader: key},
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	return &Client{http: hc, model: model}, nil
}

func (c *Client) Model() string { return c.model }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	ModelVersion string `json:"modelVersion"`
}

// Complete manda el prompt como un único turno de usuario y concatena las partes
// de texto del primer candidato.
func (c *Client) Complete(ctx context.Context, prompt string) (completion.Result, error) {
	var out generateResponse
	err := c.http.DoJSON(ctx, http.MethodPost, c.modelPath()+":generateContent", nil, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}, &out)
	if err != nil {
		return completion.Result{}, mapError(err)
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return completion.Result{}, fmt.Errorf("%w: blocked (%s)", completion.ErrEmptyResponse, out.PromptFeedback.BlockReason)
		}
		return completion.Result{}, completion.ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return completion.Result{}, fmt.Errorf("%w: finish_reason=%s", completion.ErrEmptyResponse, out.Candidates[0].FinishReason)
	}

	model := out.ModelVersion
	if model == "" {
		model = c.model
	}
	return completion.Result{Text: sb.String(), Model: model}, nil
}

// Verify pide la ficha del modelo; falla si la key no es aceptada.
func (c *Client) Verify(ctx context.Context) error {
	if err := c.http.DoJSON(ctx, http.MethodGet, c.modelPath(), nil, nil, nil); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) modelPath() string {
	return "/v1beta/models/" + url.PathEscape(c.model)
}

// mapError: 401/403, o 400 con API_KEY_INVALID, cuentan como credencial inválida.
func mapError(err error) error {
	switch httpclient.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", completion.ErrUnauthorized, err)
	case http.StatusBadRequest:
		var he *httpclient.HTTPError
		if errors.As(err, &he) && strings.Contains(he.Body, "API_KEY_INVALID") {
			return fmt.Errorf("%w: %w", completion.ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("gemini: %w", err)
}
