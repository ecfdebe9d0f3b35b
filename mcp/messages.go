package mcp

import "encoding/json"

// Method is a protocol method identifier used in JSON-RPC messages.
type Method string

const (
	InitializeMethod              Method = "initialize"
	InitializedNotificationMethod Method = "notifications/initialized"
	ToolsListMethod               Method = "tools/list"
	ToolsCallMethod               Method = "tools/call"
	PingMethod                    Method = "ping"
)

// InitializeRequest starts the initialization handshake. The server
// acknowledges the negotiated details but does not act on them beyond
// echoing its own fixed protocol version.
type InitializeRequest struct {
	ProtocolVersion string             `json:"protocolVersion,omitzero"`
	Capabilities    json.RawMessage    `json:"capabilities,omitempty"`
	ClientInfo      ImplementationInfo `json:"clientInfo,omitzero"`
}

// InitializeResult returns the server's protocol version and declared
// capabilities (tool names and descriptions pulled from the registry).
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ImplementationInfo `json:"serverInfo"`
}

// ListToolsResult returns the registered tools in registration order.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolRequestReceived is the server-received representation of a
// tools/call. Arguments arrive untyped, exactly as decoded from JSON.
type CallToolRequestReceived struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// CallToolResult is a normalized tool invocation result. On the wire the
// structured fields are flattened into the top level of the result object
// alongside the content array, so humans (reading text) and machines
// (reading fields) consume one response.
type CallToolResult struct {
	Content []ContentBlock
	Success bool
	Fields  map[string]any
}

// MarshalJSON flattens Fields into the top-level object. The reserved keys
// "content" and "success" always reflect the struct members.
func (r CallToolResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["content"] = r.Content
	out["success"] = r.Success
	return json.Marshal(out)
}

// UnmarshalJSON reverses the flattening: every key other than "content" and
// "success" lands in Fields. Used by clients and tests.
func (r *CallToolResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if b, ok := raw["content"]; ok {
		if err := json.Unmarshal(b, &r.Content); err != nil {
			return err
		}
		delete(raw, "content")
	}
	if b, ok := raw["success"]; ok {
		if err := json.Unmarshal(b, &r.Success); err != nil {
			return err
		}
		delete(raw, "success")
	}
	if len(raw) > 0 {
		r.Fields = make(map[string]any, len(raw))
		for k, b := range raw {
			var v any
			if err := json.Unmarshal(b, &v); err != nil {
				return err
			}
			r.Fields[k] = v
		}
	}
	return nil
}

// EmptyResult is returned for operations that carry no data, such as ping.
type EmptyResult struct{}
