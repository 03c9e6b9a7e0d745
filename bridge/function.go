package bridge

import (
	"fmt"

	"wright/eval"
	"wright/types"
)

// Thunk is the host side of a script callable. Arguments and the result
// convert by category.
type Thunk func(args ...any) (any, error)

// SignalError carries a control-flow signal (an exit, say) out of a thunk.
// A native that returns it re-raises the signal in the script.
type SignalError struct {
	Result types.Result
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("uncaught %s signal in native call", e.Result.Flow)
}

type functionPacker struct{}

// Function handles callables as Thunk
func Function() Packer { return functionPacker{} }

func (functionPacker) Unpack(ctx *eval.CallContext, v types.Value) (any, error) {
	fn, ok := v.(eval.Callable)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "expected a function as argument, got %s", v.Kind())
	}

	return Thunk(func(args ...any) (any, error) {
		values := make([]types.Value, len(args))
		for i, x := range args {
			v, err := packAny(ctx, x)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}

		r := ctx.Eval.Call(fn, values, ctx.Env)
		switch {
		case r.IsNormal():
			return unpackAny(ctx, r.Val)
		case r.IsError():
			return nil, r.Err
		default:
			return nil, &SignalError{Result: r}
		}
	}), nil
}

func (functionPacker) Pack(*eval.CallContext, any) (types.Value, error) {
	return nil, types.NewError(types.E_TYPE, "functions can't be created by natives")
}
