package schema

// Bundle holds validated, kind-narrowed argument values ready for handler
// invocation. Accessors return zero values for absent fields; required
// fields are guaranteed present by validation.
type Bundle struct {
	values map[string]any
}

// Has reports whether the named argument was supplied.
func (b Bundle) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// String returns the named string argument.
func (b Bundle) String(name string) string {
	v, _ := b.values[name].(string)
	return v
}

// Float returns the named number argument. Integer-kind fields are also
// readable as floats.
func (b Bundle) Float(name string) float64 {
	switch v := b.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Int returns the named integer argument.
func (b Bundle) Int(name string) int64 {
	v, _ := b.values[name].(int64)
	return v
}

// Bool returns the named boolean argument.
func (b Bundle) Bool(name string) bool {
	v, _ := b.values[name].(bool)
	return v
}
