package types

// BoolValue represents a Wright boolean
type BoolValue struct {
	Val bool
}

// NewBool creates a new BoolValue
func NewBool(val bool) BoolValue {
	return BoolValue{Val: val}
}

// Kind returns the kind for booleans
func (b BoolValue) Kind() Kind {
	return KIND_BOOL
}

// String returns the literal representation
func (b BoolValue) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Equal checks structural equality
func (b BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && b.Val == o.Val
}
