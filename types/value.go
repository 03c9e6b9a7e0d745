package types

// Value is the interface all Wright values implement
type Value interface {
	Kind() Kind
	String() string   // printable representation
	Equal(Value) bool // structural equality, no cross-kind coercion
}

// Truth returns the truthiness of a value used in a boolean context.
// Only Nil, Boolean, Number, String and List have a truth value; anything
// else (entities, callables, templates, jump positions) is an E_TYPE error.
func Truth(v Value) (bool, error) {
	switch val := v.(type) {
	case NilValue:
		return false, nil
	case BoolValue:
		return val.Val, nil
	case NumValue:
		return val.Val != 0, nil
	case StrValue:
		return len(val.val) > 0, nil
	case ListValue:
		return val.Len() > 0, nil
	}
	if v == nil {
		return false, nil
	}
	return false, NewError(E_TYPE, "%s has no truth value", v.Kind())
}

// Equal compares two possibly-nil values
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
