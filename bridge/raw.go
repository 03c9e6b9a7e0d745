package bridge

import (
	"wright/eval"
	"wright/types"
)

type anyPacker struct{}

// Any converts by category, the way list elements and entity fields are
func Any() Packer { return anyPacker{} }

func (anyPacker) Unpack(ctx *eval.CallContext, v types.Value) (any, error) {
	return unpackAny(ctx, v)
}

func (anyPacker) Pack(ctx *eval.CallContext, x any) (types.Value, error) {
	return packAny(ctx, x)
}

type rawPacker struct{}

// Raw hands script values to the host untouched, for natives that work on
// the language's own values (equality, printing, template names)
func Raw() Packer { return rawPacker{} }

func (rawPacker) Unpack(_ *eval.CallContext, v types.Value) (any, error) {
	return v, nil
}

func (rawPacker) Pack(_ *eval.CallContext, x any) (types.Value, error) {
	switch v := x.(type) {
	case nil:
		return types.Nil, nil
	case types.Value:
		if v.Kind().IsCallable() {
			return nil, types.FunctionAsRightValue(v)
		}
		return v, nil
	default:
		return nil, types.NewError(types.E_TYPE, "expected a script value as native result, got %T", x)
	}
}
