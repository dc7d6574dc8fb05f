package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"google.golang.org/grpc/metadata"

	language "github.com/davmik/gqlserve/internal/language"
	reqid "github.com/davmik/gqlserve/internal/reqid"
	service "github.com/davmik/gqlserve/internal/service"
)

func newTestHandler(resolvers service.ResolverMap, opts ...Option) *Handler {
	if resolvers == nil {
		resolvers = service.ResolverMap{}
	}
	if _, ok := resolvers["hello"]; !ok {
		resolvers["hello"] = func(params service.ResolverParams) (any, error) {
			return service.StringResult().Convert("world", params)
		}
	}
	query := service.NewObject(service.NewTypeNames("Query"), resolvers)
	return New(service.NewRequest(service.TypeMap{language.Query: query}), opts...)
}

func postQuery(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostQuery(t *testing.T) {
	h := newTestHandler(nil)

	w := postQuery(t, h, `{"query":"{ hello }"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":{"hello":"world"}}` {
		t.Fatalf("body %q", got)
	}
}

func TestGetQuery(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest("GET", "/?query={hello}", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":{"hello":"world"}}` {
		t.Fatalf("body %q", got)
	}
}

func TestParseErrorResponse(t *testing.T) {
	h := newTestHandler(nil)

	w := postQuery(t, h, `{"query":"{ hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"errors"`) || !strings.Contains(body, `"data":null`) {
		t.Fatalf("body %q", body)
	}
}

func TestBatchedRequests(t *testing.T) {
	h := newTestHandler(nil)

	w := postQuery(t, h, `[{"query":"{ hello }"},{"query":"{ hello }"}]`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	got := strings.TrimSpace(w.Body.String())
	want := `[{"data":{"hello":"world"}},{"data":{"hello":"world"}}]`
	if got != want {
		t.Fatalf("body %q, want %q", got, want)
	}
}

func TestVariablesReachResolver(t *testing.T) {
	resolvers := service.ResolverMap{
		"echo": func(params service.ResolverParams) (any, error) {
			text, err := service.StringArgument().Require("text", params.Arguments)
			if err != nil {
				return nil, err
			}
			return service.StringResult().Convert(text, params)
		},
	}
	h := newTestHandler(resolvers)

	w := postQuery(t, h, `{"query":"query ($t: String!) { echo(text: $t) }","variables":{"t":"hi"}}`)
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":{"echo":"hi"}}` {
		t.Fatalf("body %q", got)
	}
}

func TestForwardedHeaders(t *testing.T) {
	var captured metadata.MD
	resolvers := service.ResolverMap{
		"hello": func(params service.ResolverParams) (any, error) {
			captured, _ = metadata.FromOutgoingContext(params.Context)
			return service.StringResult().Convert("world", params)
		},
	}
	h := newTestHandler(resolvers, WithMetadataHeaders("X-Test"))

	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test", "abc")
	req.Header.Set("X-Other", "nope")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if captured == nil || captured.Get("x-test")[0] != "abc" || len(captured.Get("x-other")) > 0 {
		t.Fatalf("metadata not propagated correctly: %v", captured)
	}
}

func TestCORSAndPreflight(t *testing.T) {
	h := newTestHandler(nil, WithCORS("*"))

	// simple request
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}

	// preflight
	pre := httptest.NewRequest("OPTIONS", "/", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Headers", "X-Test")
	pw := httptest.NewRecorder()
	h.ServeHTTP(pw, pre)
	if pw.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", pw.Code)
	}
	if pw.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight missing CORS header")
	}
	if pw.Header().Get("Access-Control-Allow-Headers") != "X-Test" {
		t.Fatalf("preflight missing allow headers")
	}
}

func TestMaxBodyBytes(t *testing.T) {
	h := newTestHandler(nil, WithMaxBodyBytes(10))

	w := postQuery(t, h, `{"query":"1234567890"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	var capturedMD metadata.MD
	var capturedID int64
	resolvers := service.ResolverMap{
		"hello": func(params service.ResolverParams) (any, error) {
			capturedMD, _ = metadata.FromOutgoingContext(params.Context)
			capturedID, _ = reqid.FromContext(params.Context)
			return service.StringResult().Convert("world", params)
		},
	}
	h := newTestHandler(resolvers)

	w := postQuery(t, h, `{"query":"{ hello }"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if capturedID == 0 {
		t.Fatalf("missing request id in context")
	}
	if got := capturedMD.Get("graphql-request-id"); len(got) == 0 || got[0] != strconv.FormatInt(capturedID, 10) {
		t.Fatalf("metadata mismatch: %v id %d", capturedMD, capturedID)
	}
}

func TestGraphiQLPage(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "GraphiQL") {
		t.Fatalf("missing GraphiQL page")
	}
}
