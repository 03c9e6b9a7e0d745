package types

import "strconv"

// StrValue represents a Wright string
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// String returns the quoted representation
func (s StrValue) String() string {
	return strconv.Quote(s.val)
}

// Kind returns the kind for strings
func (s StrValue) Kind() Kind {
	return KIND_STR
}

// Equal compares two values for equality. Strings compare exactly.
func (s StrValue) Equal(other Value) bool {
	o, ok := other.(StrValue)
	return ok && s.val == o.val
}

// Value returns the internal string value
func (s StrValue) Value() string {
	return s.val
}
