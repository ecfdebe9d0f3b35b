package toolset

import (
	"fmt"

	"github.com/toolhost/toolhost-go/mcp"
)

// Result is the uniform value produced by tool handlers: a human-readable
// text summary, an optional structured payload, and a success flag. Failure
// is a first-class, inspectable value here, never a control-flow exception.
type Result struct {
	Text    string
	Fields  map[string]any
	Success bool
}

// Textf builds a successful Result with a formatted text summary.
func Textf(format string, a ...any) *Result {
	return &Result{Text: fmt.Sprintf(format, a...), Success: true}
}

// Failf builds a failed Result with a formatted text summary.
func Failf(format string, a ...any) *Result {
	return &Result{Text: fmt.Sprintf(format, a...), Success: false}
}

// With attaches a structured payload field and returns the Result for
// chaining.
func (r *Result) With(key string, v any) *Result {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	r.Fields[key] = v
	return r
}

// Normalize converts a handler's raw result into the protocol's content
// representation: a content array with at least one text block, plus the
// structured payload fields flattened alongside it. It never fails; a nil
// result normalizes to a generic failure.
func Normalize(r *Result) mcp.CallToolResult {
	if r == nil {
		return mcp.CallToolResult{
			Content: []mcp.ContentBlock{mcp.TextBlock("tool produced no result")},
		}
	}
	text := r.Text
	if text == "" {
		if r.Success {
			text = "tool completed"
		} else {
			text = "tool failed"
		}
	}
	var fields map[string]any
	if len(r.Fields) > 0 {
		fields = make(map[string]any, len(r.Fields))
		for k, v := range r.Fields {
			fields[k] = v
		}
	}
	return mcp.CallToolResult{
		Content: []mcp.ContentBlock{mcp.TextBlock(text)},
		Success: r.Success,
		Fields:  fields,
	}
}
