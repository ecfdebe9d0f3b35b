// Package engine dispatches JSON-RPC requests to the tool registry: it
// resolves the method, validates tools/call arguments against the target's
// schema, invokes the handler, and wraps results and errors into JSON-RPC
// response envelopes. Each request transitions independently; the engine
// holds no cross-request state beyond the read-only registry.
package engine

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/toolhost/toolhost-go/internal/jsonrpc"
	"github.com/toolhost/toolhost-go/internal/logctx"
	"github.com/toolhost/toolhost-go/mcp"
	"github.com/toolhost/toolhost-go/schema"
	"github.com/toolhost/toolhost-go/toolset"
)

// Engine routes requests for a single immutable registry.
type Engine struct {
	info mcp.ImplementationInfo
	reg  *toolset.Registry
	log  *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the slog logger used by the engine. If not provided, logs
// are discarded.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New constructs an Engine over a sealed registry.
func New(info mcp.ImplementationInfo, reg *toolset.Registry, opts ...Option) *Engine {
	e := &Engine{
		info: info,
		reg:  reg,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleRequest processes a single JSON-RPC request and returns its
// response. Notifications return nil: there is nothing to send. Tool-level
// failures never surface here as protocol errors; the only error envelopes
// produced are for malformed params, unknown methods and unknown tools.
func (e *Engine) HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: req.Method, ID: req.ID.String()})

	if req.IsNotification() {
		// Notifications (e.g. notifications/initialized) are acknowledged
		// implicitly; there is no response envelope to build.
		e.log.DebugContext(ctx, "engine.notification.ignored")
		return nil
	}

	switch req.Method {
	case string(mcp.InitializeMethod):
		return e.handleInitialize(ctx, req)
	case string(mcp.ToolsListMethod):
		return e.handleToolsList(ctx, req)
	case string(mcp.ToolsCallMethod):
		return e.handleToolCall(ctx, req)
	case string(mcp.PingMethod):
		return e.mustResult(ctx, req.ID, &mcp.EmptyResult{})
	}

	e.log.InfoContext(ctx, "engine.handle_request.unknown_method")
	return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, "method not found: "+req.Method, nil)
}

func (e *Engine) handleInitialize(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	// The negotiated capability details are acknowledged but not acted on;
	// a malformed params object is still a protocol error.
	if len(req.Params) > 0 {
		var params mcp.InitializeRequest
		if err := json.Unmarshal(req.Params, &params); err != nil {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil)
		}
	}

	result := &mcp.InitializeResult{
		ProtocolVersion: mcp.ProtocolVersion,
		Capabilities:    e.reg.Capabilities(),
		ServerInfo:      e.info,
	}

	log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", time.Since(start).Milliseconds()))
	return e.mustResult(ctx, req.ID, result)
}

func (e *Engine) handleToolsList(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	tools := e.reg.ListAll()

	log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.Int("tool_count", len(tools)))
	return e.mustResult(ctx, req.ID, &mcp.ListToolsResult{Tools: tools})
}

func (e *Engine) handleToolCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.CallToolRequestReceived
	if err := json.Unmarshal(req.Params, &params); err != nil {
		log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil)
	}
	if params.Name == "" {
		log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", "missing tool name"), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params: missing tool name", nil)
	}

	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: params.Name})

	// Unknown tool is a dispatch-stage error: no handler contract has been
	// entered yet, so it maps to a protocol-level error envelope.
	desc, err := e.reg.Lookup(params.Name)
	if err != nil {
		log.InfoContext(ctx, "engine.tool_call.unknown_tool", slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "unknown tool: "+params.Name, map[string]any{"tool": params.Name})
	}

	// Fail fast before the handler runs; all violations are reported, not
	// just the first.
	args, violations := desc.Schema.Validate(params.Arguments)
	if len(violations) > 0 {
		log.InfoContext(ctx, "engine.tool_call.invalid_arguments", slog.Int("violation_count", len(violations)), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid arguments for tool "+params.Name, map[string]any{"violations": violations})
	}

	res := e.invoke(ctx, desc, args)

	log.InfoContext(ctx, "engine.handle_request.ok", slog.Bool("tool_success", res.Success), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
	return e.mustResult(ctx, req.ID, toolset.Normalize(res))
}

// invoke runs the tool handler with per-tool error isolation: handler errors
// and panics become failed Results carried in a successful envelope, never
// protocol faults. One misbehaving tool cannot be mistaken for a protocol
// error and cannot destabilize other in-flight calls.
func (e *Engine) invoke(ctx context.Context, desc toolset.Descriptor, args schema.Bundle) (res *toolset.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.ErrorContext(ctx, "engine.tool_call.panic", slog.Any("panic", rec))
			res = toolset.Failf("tool %s failed unexpectedly", desc.Name)
		}
	}()

	r, err := desc.Handler(ctx, args)
	if err != nil {
		e.log.InfoContext(ctx, "engine.tool_call.handler_fail", slog.String("err", err.Error()))
		return toolset.Failf("tool %s failed: %v", desc.Name, err)
	}
	if r == nil {
		return toolset.Textf("tool %s completed", desc.Name)
	}
	return r
}

// mustResult builds a result response; marshal failures degrade to an
// internal error envelope rather than a dropped response.
func (e *Engine) mustResult(ctx context.Context, id *jsonrpc.RequestID, result any) *jsonrpc.Response {
	resp, err := jsonrpc.NewResultResponse(id, result)
	if err != nil {
		e.log.ErrorContext(ctx, "engine.response.encode_fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInternalError, "internal error", nil)
	}
	return resp
}
