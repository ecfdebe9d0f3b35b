package schema

import "testing"

func numberSchema() *ArgumentSchema {
	return New().
		Add("amount", FieldSpec{Kind: Number, Required: true, Constraints: Constraints{Positive: true}}).
		Add("rate", FieldSpec{Kind: Number, Required: true, Constraints: Constraints{Minimum: Min(0)}}).
		Add("years", FieldSpec{Kind: Integer, Required: true, Constraints: Constraints{Positive: true}})
}

func TestValidate_MissingRequired(t *testing.T) {
	s := New().Add("message", FieldSpec{Kind: String, Required: true})
	_, vs := s.Validate(map[string]any{})
	if len(vs) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(vs), vs)
	}
	if vs[0].Field != "message" || vs[0].Code != CodeMissingArgument {
		t.Fatalf("expected missing_argument on message, got %+v", vs[0])
	}
}

func TestValidate_OptionalAbsentOK(t *testing.T) {
	s := New().Add("verbose", FieldSpec{Kind: Boolean})
	b, vs := s.Validate(map[string]any{})
	if len(vs) != 0 {
		t.Fatalf("expected no violations, got %v", vs)
	}
	if b.Has("verbose") {
		t.Fatalf("absent optional field must not appear in bundle")
	}
}

func TestValidate_WrongKinds(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		val  any
	}{
		{"number for string", String, 3.0},
		{"string for number", Number, "3"},
		{"bool for number", Number, true},
		{"fractional for integer", Integer, 2.5},
		{"string for integer", Integer, "2"},
		{"string for boolean", Boolean, "true"},
		{"null for string", String, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New().Add("f", FieldSpec{Kind: tc.kind, Required: true})
			_, vs := s.Validate(map[string]any{"f": tc.val})
			if len(vs) != 1 || vs[0].Code != CodeInvalidType {
				t.Fatalf("expected invalid_argument_type, got %v", vs)
			}
			if vs[0].Expected != string(tc.kind) {
				t.Fatalf("violation must name the expected kind %q, got %+v", tc.kind, vs[0])
			}
		})
	}
}

func TestValidate_IntegerNarrowing(t *testing.T) {
	s := New().Add("n", FieldSpec{Kind: Integer, Required: true})
	b, vs := s.Validate(map[string]any{"n": 30.0})
	if len(vs) != 0 {
		t.Fatalf("expected no violations, got %v", vs)
	}
	if got := b.Int("n"); got != 30 {
		t.Fatalf("expected narrowed int64 30, got %d", got)
	}
	if got := b.Float("n"); got != 30.0 {
		t.Fatalf("integer field must be readable as float, got %v", got)
	}
}

func TestValidate_Constraints(t *testing.T) {
	s := New().
		Add("country", FieldSpec{Kind: String, Required: true, Constraints: Constraints{MinLength: 1}}).
		Add("letter", FieldSpec{Kind: String, Required: true, Constraints: Constraints{ExactLength: 1}})

	_, vs := s.Validate(map[string]any{"country": "", "letter": "ab"})
	if len(vs) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(vs), vs)
	}
	for _, v := range vs {
		if v.Code != CodeConstraintViolation {
			t.Fatalf("expected constraint_violation, got %+v", v)
		}
	}
}

func TestValidate_NumericConstraints(t *testing.T) {
	s := numberSchema()

	_, vs := s.Validate(map[string]any{"amount": -5.0, "rate": -0.1, "years": 0.0})
	if len(vs) != 3 {
		t.Fatalf("expected 3 violations (all collected, no short-circuit), got %d: %v", len(vs), vs)
	}

	b, vs := s.Validate(map[string]any{"amount": 300000.0, "rate": 0.0, "years": 30.0})
	if len(vs) != 0 {
		t.Fatalf("minimum=0 must accept zero rate, got %v", vs)
	}
	if b.Float("rate") != 0 {
		t.Fatalf("expected rate 0, got %v", b.Float("rate"))
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	s := numberSchema()
	// One missing, one wrong-kind, one constraint violation: all three must
	// be reported in a single pass.
	_, vs := s.Validate(map[string]any{"rate": "high", "years": -1.0})
	if len(vs) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(vs), vs)
	}
	seen := map[ViolationCode]bool{}
	for _, v := range vs {
		seen[v.Code] = true
	}
	if !seen[CodeMissingArgument] || !seen[CodeInvalidType] || !seen[CodeConstraintViolation] {
		t.Fatalf("expected one violation of each class, got %v", vs)
	}
}

func TestValidate_UndeclaredArgumentsIgnored(t *testing.T) {
	s := New().Add("message", FieldSpec{Kind: String, Required: true})
	b, vs := s.Validate(map[string]any{"message": "hi", "extra": 42.0, "future": true})
	if len(vs) != 0 {
		t.Fatalf("undeclared arguments must be ignored, got %v", vs)
	}
	if b.Has("extra") || b.Has("future") {
		t.Fatalf("undeclared arguments must not leak into the bundle")
	}
}

func TestInputSchema_Rendering(t *testing.T) {
	s := numberSchema()
	in := s.InputSchema()
	if in.Type != "object" {
		t.Fatalf("expected object schema, got %q", in.Type)
	}
	if len(in.Required) != 3 {
		t.Fatalf("expected 3 required fields, got %v", in.Required)
	}
	amount, ok := in.Properties["amount"]
	if !ok || amount.Type != "number" {
		t.Fatalf("expected amount number property, got %+v", amount)
	}
	if amount.ExclusiveMinimum == nil || *amount.ExclusiveMinimum != 0 {
		t.Fatalf("positive constraint must render as exclusiveMinimum 0, got %+v", amount)
	}
	rate := in.Properties["rate"]
	if rate.Minimum == nil || *rate.Minimum != 0 {
		t.Fatalf("minimum constraint must render, got %+v", rate)
	}
	years := in.Properties["years"]
	if years.Type != "integer" {
		t.Fatalf("expected integer property, got %+v", years)
	}
}

func TestInputSchema_ExactLength(t *testing.T) {
	s := New().Add("letter", FieldSpec{Kind: String, Required: true, Constraints: Constraints{ExactLength: 1}})
	in := s.InputSchema()
	p := in.Properties["letter"]
	if p.MinLength == nil || p.MaxLength == nil || *p.MinLength != 1 || *p.MaxLength != 1 {
		t.Fatalf("exactLength must render as minLength=maxLength, got %+v", p)
	}
}

func TestAdd_ReplacesDuplicate(t *testing.T) {
	s := New().
		Add("f", FieldSpec{Kind: String}).
		Add("f", FieldSpec{Kind: Integer, Required: true})
	if s.Len() != 1 {
		t.Fatalf("redeclaring a field must not grow the schema, got %d fields", s.Len())
	}
	_, vs := s.Validate(map[string]any{})
	if len(vs) != 1 || vs[0].Code != CodeMissingArgument {
		t.Fatalf("replacement spec must win, got %v", vs)
	}
}
