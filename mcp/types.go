package mcp

// ProtocolVersion is the protocol revision this server speaks. It is fixed;
// the server acknowledges whatever the client proposes during initialize but
// always answers with this version.
const ProtocolVersion = "2025-06-18"

// ImplementationInfo describes the implementation name and version.
type ImplementationInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Title   string `json:"title,omitzero"`
}

// ContentBlock is a typed unit of response payload. This server only ever
// emits text blocks, but the type field keeps the wire shape open.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitzero"`
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// Tool describes a callable tool and its input schema as advertised to
// clients via tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema ToolInputSchema `json:"inputSchema"`
}

// ToolInputSchema is a JSON-schema-like declaration of tool input, rendered
// from a tool's argument schema so a client can construct valid calls without
// prior knowledge.
type ToolInputSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
}

// SchemaProperty is a simplified schema node for a single argument.
type SchemaProperty struct {
	Type             string   `json:"type,omitempty"`
	Description      string   `json:"description,omitzero"`
	MinLength        *int     `json:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
}

// ToolCapability is the per-tool entry in the initialize capability map.
type ToolCapability struct {
	Description string `json:"description,omitempty"`
}

// ServerCapabilities advertises the server's registered tools keyed by name.
type ServerCapabilities struct {
	Tools map[string]ToolCapability `json:"tools"`
}
