package tools

import (
	"context"
	"unicode"

	"github.com/toolhost/toolhost-go/schema"
	"github.com/toolhost/toolhost-go/toolset"
)

// LetterCount returns the letter_count tool: a case-insensitive count of a
// single letter within a text, with zero-indexed match positions and an
// uppercase-highlighted rendering of the matches.
func LetterCount() toolset.Descriptor {
	s := schema.New().
		Add("text", schema.FieldSpec{
			Kind:        schema.String,
			Required:    true,
			Description: "Text to search",
		}).
		Add("letter", schema.FieldSpec{
			Kind:        schema.String,
			Required:    true,
			Description: "Single letter to count",
			Constraints: schema.Constraints{ExactLength: 1},
		})

	return toolset.Descriptor{
		Name:        "letter_count",
		Description: "Count occurrences of a letter in a text, case-insensitively",
		Schema:      s,
		Handler: func(ctx context.Context, args schema.Bundle) (*toolset.Result, error) {
			text := args.String("text")
			target := unicode.ToLower([]rune(args.String("letter"))[0])

			runes := []rune(text)
			highlighted := make([]rune, len(runes))
			var positions []int
			for i, r := range runes {
				if unicode.ToLower(r) == target {
					positions = append(positions, i)
					highlighted[i] = unicode.ToUpper(r)
				} else {
					highlighted[i] = r
				}
			}
			if positions == nil {
				positions = []int{}
			}

			return toolset.Textf("The letter %q appears %d time(s) in %q: %s", string(target), len(positions), text, string(highlighted)).
				With("letter", string(target)).
				With("count", len(positions)).
				With("positions", positions).
				With("highlighted", string(highlighted)), nil
		},
	}
}
