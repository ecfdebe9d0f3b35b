// Package tools contains the built-in tool descriptors registered by the
// server at startup.
package tools

import (
	"context"

	"github.com/toolhost/toolhost-go/schema"
	"github.com/toolhost/toolhost-go/toolset"
)

type echoArgs struct {
	Message string `json:"message" jsonschema:"description=Message to echo back"`
}

// Echo returns the echo tool: it repeats the caller's message back with a
// fixed prefix.
func Echo() toolset.Descriptor {
	return toolset.Descriptor{
		Name:        "echo",
		Description: "Echo a message back to the caller",
		Schema:      schema.FromStruct[echoArgs](),
		Handler: func(ctx context.Context, args schema.Bundle) (*toolset.Result, error) {
			msg := args.String("message")
			return toolset.Textf("Tool echo: %s", msg).With("message", msg), nil
		},
	}
}
