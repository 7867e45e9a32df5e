package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"futbol-tracker/internal/ports/completion"
)

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "  "}); !errors.Is(err, completion.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestComplete_SendsPromptAndJoinsParts(t *testing.T) {
	var gotPrompt, gotPath, gotKey string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) == 1 && len(req.Contents[0].Parts) == 1 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"1. Cerrar "},{"text":"la zona 3"}]},"finishReason":"STOP"}],"modelVersion":"gemini-1.5-flash-002"}`))
	}))
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "k-123"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res, err := c.Complete(context.Background(), "datos del partido")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "k-123" || gotPrompt != "datos del partido" {
		t.Fatalf("unexpected request: key=%q prompt=%q", gotKey, gotPrompt)
	}
	if res.Text != "1. Cerrar la zona 3" || res.Model != "gemini-1.5-flash-002" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestComplete_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"invalid key", http.StatusBadRequest, `{"error":{"status":"INVALID_ARGUMENT","details":[{"reason":"API_KEY_INVALID"}]}}`, completion.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{}`, completion.ErrUnauthorized},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, completion.ErrEmptyResponse},
		{"no text", http.StatusOK, `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`, completion.ErrEmptyResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c, _ := NewClient(Config{BaseURL: ts.URL, APIKey: "k"})
			_, err := c.Complete(context.Background(), "p")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestComplete_ServerErrorIsNotUnauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c, _ := NewClient(Config{BaseURL: ts.URL, APIKey: "k"})
	_, err := c.Complete(context.Background(), "p")
	if err == nil || errors.Is(err, completion.ErrUnauthorized) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1beta/models/gemini-pro" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("x-goog-api-key") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"details":[{"reason":"API_KEY_INVALID"}]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"models/gemini-pro"}`))
	}))
	defer ts.Close()

	good, _ := NewClient(Config{BaseURL: ts.URL, APIKey: "good", Model: "gemini-pro"})
	if err := good.Verify(context.Background()); err != nil {
		t.Fatalf("verify good key: %v", err)
	}

	bad, _ := NewClient(Config{BaseURL: ts.URL, APIKey: "bad", Model: "gemini-pro"})
	if err := bad.Verify(context.Background()); !errors.Is(err, completion.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
