package types

import "strconv"

// NumValue represents a Wright number. Numbers are non-negative integers;
// the unsigned payload makes a negative NumValue unrepresentable.
type NumValue struct {
	Val uint64
}

// NewNum creates a new NumValue
func NewNum(val uint64) NumValue {
	return NumValue{Val: val}
}

// NumFromInt converts a signed host integer, rejecting negatives
func NumFromInt(val int64) (NumValue, error) {
	if val < 0 {
		return NumValue{}, NewError(E_INVNUM, "%d is negative", val)
	}
	return NumValue{Val: uint64(val)}, nil
}

// Kind returns the kind for numbers
func (n NumValue) Kind() Kind {
	return KIND_NUM
}

// String returns the literal representation
func (n NumValue) String() string {
	return strconv.FormatUint(n.Val, 10)
}

// Equal checks structural equality
func (n NumValue) Equal(other Value) bool {
	o, ok := other.(NumValue)
	return ok && n.Val == o.Val
}

// Int returns the payload as a host int
func (n NumValue) Int() int {
	return int(n.Val)
}
