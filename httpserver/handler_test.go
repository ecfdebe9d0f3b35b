package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/toolhost/toolhost-go/internal/engine"
	"github.com/toolhost/toolhost-go/mcp"
	"github.com/toolhost/toolhost-go/toolset"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg, err := toolset.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(
		mcp.ImplementationInfo{Name: "toolhost-test", Version: "0.0.0"},
		reg,
		engine.WithLogger(quiet),
	)
	srv := New(eng, WithLogger(quiet))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/mcp", strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	var env map[string]any
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("invalid JSON body %q: %v", data, err)
	}
	return env
}

func TestPostMCP_Initialize(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "application/json",
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type = %q", ct)
	}

	env := decodeEnvelope(t, resp)
	if env["jsonrpc"] != "2.0" || env["id"] != float64(1) {
		t.Fatalf("bad envelope: %v", env)
	}
	result, ok := env["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result, got %v", env)
	}
	if result["protocolVersion"] != "2025-06-18" {
		t.Fatalf("protocolVersion = %v", result["protocolVersion"])
	}
}

func TestPostMCP_ToolsList(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "application/json",
		`{"jsonrpc":"2.0","id":"a","method":"tools/list"}`)
	env := decodeEnvelope(t, resp)
	result, ok := env["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result, got %v", env)
	}
	if _, ok := result["tools"].([]any); !ok {
		t.Fatalf("tools must be an array: %v", result)
	}
}

func TestPostMCP_WrongContentType(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "text/plain", `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", resp.StatusCode)
	}
}

func TestPostMCP_UnacceptableAccept(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/mcp",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/html")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotAcceptable {
		t.Fatalf("status = %d, want 406", resp.StatusCode)
	}
}

func TestPostMCP_ParseError(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "application/json", `{"jsonrpc":`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("parse errors are JSON-RPC level, status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	errObj, ok := env["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error, got %v", env)
	}
	if errObj["code"] != float64(-32700) {
		t.Fatalf("code = %v, want -32700", errObj["code"])
	}
	if id, present := env["id"]; !present || id != nil {
		t.Fatalf("parse error id must be null, got %v (present=%v)", id, present)
	}
}

func TestPostMCP_BatchRejected(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "application/json",
		`[{"jsonrpc":"2.0","id":1,"method":"ping"}]`)
	env := decodeEnvelope(t, resp)
	errObj, ok := env["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error, got %v", env)
	}
	if errObj["code"] != float64(-32600) {
		t.Fatalf("code = %v, want -32600", errObj["code"])
	}
}

func TestPostMCP_InvalidVersionRejected(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "application/json",
		`{"jsonrpc":"1.0","id":1,"method":"ping"}`)
	env := decodeEnvelope(t, resp)
	errObj, ok := env["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error, got %v", env)
	}
	if errObj["code"] != float64(-32600) {
		t.Fatalf("code = %v, want -32600", errObj["code"])
	}
}

func TestPostMCP_NotificationAccepted(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "application/json",
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if len(data) != 0 {
		t.Fatalf("notification ack must have an empty body, got %q", data)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env["status"] != "ok" {
		t.Fatalf("body = %v", env)
	}
}
