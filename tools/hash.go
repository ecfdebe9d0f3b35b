package tools

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"

	"github.com/toolhost/toolhost-go/schema"
	"github.com/toolhost/toolhost-go/toolset"
)

type hashArgs struct {
	Input string `json:"input" jsonschema:"description=Text to hash"`
}

// SHA1Hash returns the sha1_hash tool: a deterministic lowercase hex SHA-1
// digest of the input's UTF-8 bytes.
func SHA1Hash() toolset.Descriptor {
	return newHashTool("sha1_hash", "sha1", "Compute the SHA-1 digest of a string", func(b []byte) string {
		sum := sha1.Sum(b)
		return hex.EncodeToString(sum[:])
	})
}

// SHA256Hash returns the sha256_hash tool: a deterministic lowercase hex
// SHA-256 digest of the input's UTF-8 bytes.
func SHA256Hash() toolset.Descriptor {
	return newHashTool("sha256_hash", "sha256", "Compute the SHA-256 digest of a string", func(b []byte) string {
		sum := sha256.Sum256(b)
		return hex.EncodeToString(sum[:])
	})
}

func newHashTool(name, algorithm, description string, sum func([]byte) string) toolset.Descriptor {
	return toolset.Descriptor{
		Name:        name,
		Description: description,
		Schema:      schema.FromStruct[hashArgs](),
		Handler: func(ctx context.Context, args schema.Bundle) (*toolset.Result, error) {
			input := args.String("input")
			digest := sum([]byte(input))
			return toolset.Textf("%s digest: %s", algorithm, digest).
				With("algorithm", algorithm).
				With("input", input).
				With("hash", digest), nil
		},
	}
}
