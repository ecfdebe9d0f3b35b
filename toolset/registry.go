// Package toolset owns the tool registry: named, schema-described callables
// with a uniform invocation signature and a uniform result type.
package toolset

import (
	"context"
	"errors"
	"fmt"

	"github.com/toolhost/toolhost-go/mcp"
	"github.com/toolhost/toolhost-go/schema"
)

var (
	// ErrDuplicateTool is returned when registering a name that already exists.
	ErrDuplicateTool = errors.New("duplicate tool name")
	// ErrToolNotFound is returned by Lookup for unregistered names.
	ErrToolNotFound = errors.New("tool not found")
)

// HandlerFunc executes a tool invocation with validated, narrowed arguments.
// A returned error marks a tool-level failure; the dispatch engine converts
// it into a failed Result rather than a protocol fault.
type HandlerFunc func(ctx context.Context, args schema.Bundle) (*Result, error)

// Descriptor pairs a tool's display metadata and argument schema with its
// handler. Descriptors are created at startup registration time and never
// mutated afterwards.
type Descriptor struct {
	Name        string
	Description string
	Schema      *schema.ArgumentSchema
	Handler     HandlerFunc
}

// Registry holds the registered tools. Registration happens once at startup
// on a single goroutine; after that the registry is effectively immutable
// and Lookup/ListAll may be called concurrently without synchronization.
type Registry struct {
	order  []string
	byName map[string]Descriptor
}

// NewRegistry constructs an empty Registry and registers the given tools,
// returning the first registration error encountered.
func NewRegistry(defs ...Descriptor) (*Registry, error) {
	r := &Registry{byName: make(map[string]Descriptor, len(defs))}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool. The name is the unique, immutable key.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("tool descriptor missing name")
	}
	if d.Handler == nil {
		return fmt.Errorf("tool %q missing handler", d.Name)
	}
	if d.Schema == nil {
		d.Schema = schema.New()
	}
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, d.Name)
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return d, nil
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// ListAll renders every registered tool as a client-facing declaration, in
// registration order.
func (r *Registry) ListAll() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		d := r.byName[name]
		out = append(out, mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.Schema.InputSchema(),
		})
	}
	return out
}

// Capabilities renders the tool set as the initialize capability map.
func (r *Registry) Capabilities() mcp.ServerCapabilities {
	tools := make(map[string]mcp.ToolCapability, len(r.order))
	for _, name := range r.order {
		tools[name] = mcp.ToolCapability{Description: r.byName[name].Description}
	}
	return mcp.ServerCapabilities{Tools: tools}
}
