// Package schema declares typed argument schemas for tools and validates
// untyped JSON argument maps against them before a handler ever runs.
package schema

import (
	"math"

	"github.com/toolhost/toolhost-go/mcp"
)

// Kind is the declared runtime kind of an argument.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Integer Kind = "integer"
	Boolean Kind = "boolean"
)

// Constraints narrow the acceptable values for a field beyond its kind.
// Zero-valued length constraints are treated as unset; Minimum uses a
// pointer because a minimum of 0 is meaningful.
type Constraints struct {
	MinLength   int
	ExactLength int
	Minimum     *float64
	Positive    bool
}

// Min returns a pointer suitable for Constraints.Minimum.
func Min(v float64) *float64 { return &v }

// FieldSpec describes one argument: its kind, whether it must be supplied,
// and any value constraints. Immutable once attached to a schema.
type FieldSpec struct {
	Kind        Kind
	Required    bool
	Description string
	Constraints Constraints
}

type field struct {
	name string
	spec FieldSpec
}

// ArgumentSchema is an ordered mapping from argument name to FieldSpec.
// Build it at registration time; it is never mutated afterwards.
type ArgumentSchema struct {
	fields []field
	index  map[string]int
}

// New constructs an empty ArgumentSchema.
func New() *ArgumentSchema {
	return &ArgumentSchema{index: make(map[string]int)}
}

// Add appends a field declaration, replacing any earlier declaration of the
// same name. It returns the schema for chaining.
func (s *ArgumentSchema) Add(name string, spec FieldSpec) *ArgumentSchema {
	if i, ok := s.index[name]; ok {
		s.fields[i].spec = spec
		return s
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, field{name: name, spec: spec})
	return s
}

// Len returns the number of declared fields.
func (s *ArgumentSchema) Len() int { return len(s.fields) }

// Validate checks the supplied arguments against the schema. It does not
// short-circuit: all violations are collected so the caller gets a complete
// diagnostic. Arguments not declared in the schema are ignored. On success
// the returned Bundle holds the narrowed values for every declared field
// that was present.
func (s *ArgumentSchema) Validate(args map[string]any) (Bundle, []Violation) {
	var violations []Violation
	values := make(map[string]any, len(s.fields))

	for _, f := range s.fields {
		raw, present := args[f.name]
		if !present {
			if f.spec.Required {
				violations = append(violations, missingArgument(f.name))
			}
			continue
		}
		v, vvs := checkField(f.name, f.spec, raw)
		if len(vvs) > 0 {
			violations = append(violations, vvs...)
			continue
		}
		values[f.name] = v
	}

	if len(violations) > 0 {
		return Bundle{}, violations
	}
	return Bundle{values: values}, nil
}

// checkField narrows a single raw JSON value to its declared kind and
// applies constraints. It returns the narrowed value or the violations.
func checkField(name string, spec FieldSpec, raw any) (any, []Violation) {
	switch spec.Kind {
	case String:
		str, ok := raw.(string)
		if !ok {
			return nil, []Violation{invalidType(name, spec.Kind, raw)}
		}
		var vs []Violation
		n := len([]rune(str))
		if spec.Constraints.MinLength > 0 && n < spec.Constraints.MinLength {
			vs = append(vs, constraintViolation(name, "minLength", spec.Constraints.MinLength))
		}
		if spec.Constraints.ExactLength > 0 && n != spec.Constraints.ExactLength {
			vs = append(vs, constraintViolation(name, "exactLength", spec.Constraints.ExactLength))
		}
		if len(vs) > 0 {
			return nil, vs
		}
		return str, nil

	case Number:
		num, ok := raw.(float64)
		if !ok {
			return nil, []Violation{invalidType(name, spec.Kind, raw)}
		}
		if vs := checkNumeric(name, spec.Constraints, num); len(vs) > 0 {
			return nil, vs
		}
		return num, nil

	case Integer:
		num, ok := raw.(float64)
		if !ok || num != math.Trunc(num) {
			return nil, []Violation{invalidType(name, spec.Kind, raw)}
		}
		if vs := checkNumeric(name, spec.Constraints, num); len(vs) > 0 {
			return nil, vs
		}
		return int64(num), nil

	case Boolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, []Violation{invalidType(name, spec.Kind, raw)}
		}
		return b, nil
	}

	return nil, []Violation{invalidType(name, spec.Kind, raw)}
}

func checkNumeric(name string, c Constraints, num float64) []Violation {
	var vs []Violation
	if c.Minimum != nil && num < *c.Minimum {
		vs = append(vs, constraintViolation(name, "minimum", *c.Minimum))
	}
	if c.Positive && num <= 0 {
		vs = append(vs, constraintViolation(name, "positive", true))
	}
	return vs
}

// InputSchema renders the schema as a client-facing declaration for
// tools/list and capability negotiation.
func (s *ArgumentSchema) InputSchema() mcp.ToolInputSchema {
	props := make(map[string]mcp.SchemaProperty, len(s.fields))
	var required []string
	for _, f := range s.fields {
		p := mcp.SchemaProperty{
			Type:        string(f.spec.Kind),
			Description: f.spec.Description,
		}
		if n := f.spec.Constraints.MinLength; n > 0 {
			p.MinLength = &n
		}
		if n := f.spec.Constraints.ExactLength; n > 0 {
			p.MinLength = &n
			p.MaxLength = &n
		}
		if m := f.spec.Constraints.Minimum; m != nil {
			p.Minimum = m
		}
		if f.spec.Constraints.Positive {
			zero := 0.0
			p.ExclusiveMinimum = &zero
		}
		props[f.name] = p
		if f.spec.Required {
			required = append(required, f.name)
		}
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}
