package builtins

import (
	"math"
	"math/bits"

	"wright/types"
)

// builtinAdd: +(a, b) -> number
// Arguments are never negative; a sum past math.MaxInt raises E_RANGE.
func builtinAdd(args []any) (any, error) {
	a, b := args[0].(int), args[1].(int)
	if a > math.MaxInt-b {
		return nil, overflow("+", a, b)
	}
	return a + b, nil
}

// builtinSub: -(a, b) -> number
// Numbers are never negative, so b > a raises E_INVNUM when the result is
// packed.
func builtinSub(args []any) (any, error) {
	return args[0].(int) - args[1].(int), nil
}

// builtinMul: *(a, b) -> number
func builtinMul(args []any) (any, error) {
	a, b := args[0].(int), args[1].(int)
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return nil, overflow("*", a, b)
	}
	return int(lo), nil
}

func overflow(op string, a, b int) error {
	return types.NewError(types.E_RANGE, "%d %s %d overflows", a, op, b)
}

func builtinGreater(args []any) (any, error) {
	return args[0].(int) > args[1].(int), nil
}

func builtinLess(args []any) (any, error) {
	return args[0].(int) < args[1].(int), nil
}

// builtinEqual: =(a, b) -> boolean, same variant and same payload
func builtinEqual(args []any) (any, error) {
	return types.Equal(args[0].(types.Value), args[1].(types.Value)), nil
}

// builtinNot: not(x) -> boolean, the negated truth value of x
func builtinNot(args []any) (any, error) {
	truth, err := types.Truth(args[0].(types.Value))
	if err != nil {
		return nil, err
	}
	return !truth, nil
}
