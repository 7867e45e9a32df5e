package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" || r.Header.Get("X-Extra") != "1" {
			http.Error(w, "missing headers", http.StatusBadRequest)
			return
		}
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "bad content type", http.StatusBadRequest)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"], "path": r.URL.Path})
	}))
	defer ts.Close()

	c, err := New(Options{BaseURL: ts.URL + "/", Headers: map[string]string{"X-Api-Key": "secret"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var out map[string]string
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/echo", map[string]string{"X-Extra": "1"}, map[string]string{"msg": "hola"}, &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if out["echo"] != "hola" || out["path"] != "/v1/echo" {
		t.Fatalf("unexpected out: %v", out)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer ts.Close()

	c, _ := New(Options{})
	err := c.DoJSON(context.Background(), http.MethodGet, ts.URL, nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusForbidden || he.Body != "bad key" {
		t.Fatalf("unexpected error: %+v", he)
	}
	if StatusOf(err) != http.StatusForbidden {
		t.Fatalf("StatusOf mismatch")
	}
}

func TestResolveURL(t *testing.T) {
	c, _ := New(Options{})
	if _, err := c.resolveURL("/relative"); err == nil {
		t.Fatalf("relative path without BaseURL must fail")
	}
	if _, err := c.resolveURL("  "); err == nil {
		t.Fatalf("empty url must fail")
	}
	if _, err := New(Options{BaseURL: "::not a url"}); err == nil {
		t.Fatalf("invalid base url must fail")
	}
}
