// Package mcp contains the protocol-visible types exchanged with clients:
// tool descriptors, content blocks, and the request/result shapes for the
// initialize, tools/list and tools/call methods.
package mcp
