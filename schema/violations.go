package schema

import "fmt"

// ViolationCode identifies the class of a schema violation.
type ViolationCode string

const (
	// CodeMissingArgument means a required field was absent.
	CodeMissingArgument ViolationCode = "missing_argument"
	// CodeInvalidType means a supplied value had the wrong runtime kind.
	CodeInvalidType ViolationCode = "invalid_argument_type"
	// CodeConstraintViolation means a value failed a declared constraint.
	CodeConstraintViolation ViolationCode = "constraint_violation"
)

// Violation is a specific, named mismatch between supplied arguments and a
// declared schema. It marshals cleanly into a JSON-RPC error's data field.
type Violation struct {
	Field      string        `json:"field"`
	Code       ViolationCode `json:"code"`
	Expected   string        `json:"expected,omitempty"`
	Constraint string        `json:"constraint,omitempty"`
	Message    string        `json:"message"`
}

func (v Violation) String() string { return v.Message }

func missingArgument(field string) Violation {
	return Violation{
		Field:   field,
		Code:    CodeMissingArgument,
		Message: fmt.Sprintf("missing required argument %q", field),
	}
}

func invalidType(field string, want Kind, got any) Violation {
	return Violation{
		Field:    field,
		Code:     CodeInvalidType,
		Expected: string(want),
		Message:  fmt.Sprintf("argument %q must be a %s, got %v", field, want, got),
	}
}

func constraintViolation(field, constraint string, bound any) Violation {
	return Violation{
		Field:      field,
		Code:       CodeConstraintViolation,
		Constraint: fmt.Sprintf("%s=%v", constraint, bound),
		Message:    fmt.Sprintf("argument %q violates constraint %s=%v", field, constraint, bound),
	}
}
