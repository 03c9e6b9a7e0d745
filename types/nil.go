package types

// NilValue is the absence of a value
type NilValue struct{}

// Nil is the single Nil value
var Nil = NilValue{}

func (NilValue) Kind() Kind { return KIND_NIL }

func (NilValue) String() string { return "nil" }

func (NilValue) Equal(other Value) bool {
	_, ok := other.(NilValue)
	return ok
}
