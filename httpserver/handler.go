// Package httpserver is the thin HTTP transport for the dispatch engine: it
// accepts JSON-RPC 2.0 messages on a single POST endpoint, frames them, and
// returns the engine's response. Protocol logic lives in the engine; this
// layer only moves bytes.
package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/toolhost/toolhost-go/internal/engine"
	"github.com/toolhost/toolhost-go/internal/jsonrpc"
	"github.com/toolhost/toolhost-go/internal/logctx"
)

var (
	jsonMediaType        = contenttype.NewMediaType("application/json")
	eventStreamMediaType = contenttype.NewMediaType("text/event-stream")

	// Responses are always framed as JSON; clients may still Accept
	// text/event-stream since the protocol permits either framing.
	acceptableMediaTypes = []contenttype.MediaType{jsonMediaType, eventStreamMediaType}
)

// Server wires the dispatch engine into an HTTP router.
type Server struct {
	eng     *engine.Engine
	log     *slog.Logger
	router  *chi.Mux
	timeout time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the slog logger used by the transport. If not provided,
// logs go to slog's default logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithRequestTimeout bounds the total time spent serving one request,
// including any tool handler network calls. Default 60s.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New constructs a Server with middleware and routes configured.
func New(eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		eng:     eng,
		log:     slog.Default(),
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(s.requestLogContext)

	r.Get("/healthz", s.handleHealth)
	r.Post("/mcp", s.handleMCP)

	s.router = r
	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// requestLogContext attaches request attributes to the slog context.
func (s *Server) requestLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logctx.WithRequestData(r.Context(), &logctx.RequestData{
			RequestID:  uuid.NewString(),
			Method:     r.Method,
			Path:       r.URL.Path,
			UserAgent:  r.UserAgent(),
			RemoteAddr: r.RemoteAddr,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleMCP handles the POST /mcp endpoint carrying JSON-RPC messages.
// Transport-level rejections (wrong media type) use HTTP status codes;
// everything past framing is answered with a JSON-RPC envelope.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	s.log.DebugContext(ctx, "http.post.start")

	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		s.log.WarnContext(ctx, "http.content_type.unsupported")
		writeHTTPError(w, http.StatusUnsupportedMediaType, "content-type must be application/json")
		return
	}
	if _, _, err := contenttype.GetAcceptableMediaType(r, acceptableMediaTypes); err != nil {
		s.log.WarnContext(ctx, "http.accept.unsupported")
		writeHTTPError(w, http.StatusNotAcceptable, "accept must allow application/json or text/event-stream")
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.log.WarnContext(ctx, "http.json.decode_fail", slog.String("err", err.Error()))
		s.writeResponse(ctx, w, jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeParseError, "invalid JSON body", nil))
		return
	}
	if len(raw) > 0 && raw[0] == '[' {
		s.log.WarnContext(ctx, "http.jsonrpc.batch_forbidden")
		s.writeResponse(ctx, w, jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeInvalidRequest, "batch requests are not supported", nil))
		return
	}

	var req jsonrpc.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.log.WarnContext(ctx, "http.jsonrpc.invalid", slog.String("err", err.Error()))
		s.writeResponse(ctx, w, jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeInvalidRequest, err.Error(), nil))
		return
	}

	resp := s.eng.HandleRequest(ctx, &req)

	// Client disconnected mid-call: the handler ran to completion but its
	// result has nowhere to go.
	if ctx.Err() != nil {
		s.log.InfoContext(ctx, "http.post.cancelled", slog.Duration("dur", time.Since(start)))
		return
	}

	if resp == nil {
		// Notification: acknowledge without a body.
		w.WriteHeader(http.StatusAccepted)
		s.log.InfoContext(ctx, "http.post.accepted", slog.Duration("dur", time.Since(start)))
		return
	}

	s.writeResponse(ctx, w, resp)
	s.log.InfoContext(ctx, "http.post.ok", slog.Duration("dur", time.Since(start)))
}

func (s *Server) writeResponse(ctx context.Context, w http.ResponseWriter, resp *jsonrpc.Response) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.ErrorContext(ctx, "http.response.write_fail", slog.String("err", err.Error()))
	}
}

// writeHTTPError emits a minimal JSON body for transport-layer rejections
// that happen before a JSON-RPC exchange is possible.
func writeHTTPError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": status, "message": msg}})
}
