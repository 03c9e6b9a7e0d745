package bridge

import (
	"math"
	"strconv"

	"wright/eval"
	"wright/types"
)

// literal is the packer for one literal kind. Strict packers accept only
// their own kind in both directions. Lenient ones unpack any literal to its
// host value and coerce whatever literal host value they pack.
type literal struct {
	kind   types.Kind
	strict bool
}

// Number handles Number values as int
func Number(strict bool) Packer { return literal{kind: types.KIND_NUM, strict: strict} }

// Boolean handles Boolean values as bool
func Boolean(strict bool) Packer { return literal{kind: types.KIND_BOOL, strict: strict} }

// String handles String values as string
func String(strict bool) Packer { return literal{kind: types.KIND_STR, strict: strict} }

func (p literal) Unpack(_ *eval.CallContext, v types.Value) (any, error) {
	if p.strict && v.Kind() != p.kind {
		return nil, types.NewError(types.E_TYPE, "expected %s as argument, got %s", p.kind, v.Kind())
	}
	switch lit := v.(type) {
	case types.NumValue:
		if lit.Val > math.MaxInt {
			return nil, types.NewError(types.E_RANGE, "%s is too large for a native", lit)
		}
		return lit.Int(), nil
	case types.BoolValue:
		return lit.Val, nil
	case types.StrValue:
		return lit.Value(), nil
	default:
		return nil, types.NewError(types.E_TYPE, "expected a literal as argument, got %s", v.Kind())
	}
}

func (p literal) Pack(_ *eval.CallContext, x any) (types.Value, error) {
	switch p.kind {
	case types.KIND_NUM:
		return p.packNumber(x)
	case types.KIND_BOOL:
		return p.packBoolean(x)
	default:
		return p.packString(x)
	}
}

func (p literal) mismatch(x any) error {
	return types.NewError(types.E_TYPE, "expected %s as native result, got %T", p.kind, x)
}

func (p literal) packNumber(x any) (types.Value, error) {
	switch n := x.(type) {
	case int:
		return types.NumFromInt(int64(n))
	case int64:
		if !p.strict {
			return types.NumFromInt(n)
		}
	case uint64:
		if !p.strict {
			return types.NewNum(n), nil
		}
	case bool:
		if !p.strict {
			if n {
				return types.NewNum(1), nil
			}
			return types.NewNum(0), nil
		}
	case string:
		if !p.strict {
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, types.NewError(types.E_TYPE, "%q is not a number", n)
			}
			return types.NumFromInt(i)
		}
	}
	return nil, p.mismatch(x)
}

func (p literal) packBoolean(x any) (types.Value, error) {
	switch b := x.(type) {
	case bool:
		return types.NewBool(b), nil
	case int:
		if !p.strict {
			return types.NewBool(b != 0), nil
		}
	case string:
		if !p.strict {
			return types.NewBool(b != ""), nil
		}
	}
	return nil, p.mismatch(x)
}

func (p literal) packString(x any) (types.Value, error) {
	switch s := x.(type) {
	case string:
		return types.NewStr(s), nil
	case int:
		if !p.strict {
			return types.NewStr(strconv.Itoa(s)), nil
		}
	case bool:
		if !p.strict {
			return types.NewStr(strconv.FormatBool(s)), nil
		}
	}
	return nil, p.mismatch(x)
}
