package schema

import (
	"slices"

	"github.com/invopop/jsonschema"
)

// FromStruct reflects a typed argument struct into an ArgumentSchema using
// JSON schema reflection. Field order follows struct declaration order.
// Fields without an omitempty JSON tag are required, matching the
// reflector's convention. Only primitive fields (string, number, integer,
// boolean) are declared; anything else is skipped since tool arguments are
// flat by contract.
func FromStruct[A any]() *ArgumentSchema {
	r := &jsonschema.Reflector{
		DoNotReference: true, // inline defs
		ExpandedStruct: true, // put struct at root
	}
	js := r.Reflect(new(A))

	s := New()
	if js == nil || js.Type != "object" || js.Properties == nil {
		return s
	}

	for el := js.Properties.Oldest(); el != nil; el = el.Next() {
		var kind Kind
		switch el.Value.Type {
		case "string":
			kind = String
		case "number":
			kind = Number
		case "integer":
			kind = Integer
		case "boolean":
			kind = Boolean
		default:
			continue
		}
		spec := FieldSpec{
			Kind:        kind,
			Required:    slices.Contains(js.Required, el.Key),
			Description: el.Value.Description,
		}
		if el.Value.MinLength != nil {
			spec.Constraints.MinLength = int(*el.Value.MinLength)
		}
		s.Add(el.Key, spec)
	}
	return s
}
