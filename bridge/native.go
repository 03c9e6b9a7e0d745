package bridge

import (
	"errors"
	"fmt"

	"wright/eval"
	"wright/types"
)

// HostFunc is the Go side of a native: unpacked arguments in, one host
// value out
type HostFunc func(args []any) (any, error)

// Native is a Go function callable from scripts. Build one with New and
// chain Expects and Returns:
//
//	bridge.New("factorial", factorial).Expects(bridge.Number(true)).Returns(bridge.Number(true))
type Native struct {
	name   string
	fn     HostFunc
	params []Packer
	ret    Packer
}

// New creates a native that takes no arguments and returns Nil
func New(name string, fn HostFunc) *Native {
	return &Native{name: name, fn: fn, ret: None()}
}

// Expects declares one packer per parameter
func (n *Native) Expects(params ...Packer) *Native {
	n.params = params
	return n
}

// Returns declares the result packer
func (n *Native) Returns(p Packer) *Native {
	n.ret = p
	return n
}

func (n *Native) Kind() types.Kind { return types.KIND_NATIVE }

func (n *Native) Name() string { return n.name }

func (n *Native) String() string { return "<native " + n.name + ">" }

func (n *Native) Equal(other types.Value) bool {
	o, ok := other.(*Native)
	return ok && o == n
}

// Invoke checks arity, unpacks the arguments positionally, calls the host
// function and packs its result
func (n *Native) Invoke(ctx *eval.CallContext, args []types.Value) types.Result {
	if len(args) != len(n.params) {
		return types.Err(types.WrongArgumentNumber(n.name, len(n.params), len(args)))
	}

	host := make([]any, len(args))
	for i, p := range n.params {
		x, err := p.Unpack(ctx, args[i])
		if err != nil {
			return types.Err(err)
		}
		host[i] = x
	}

	out, err := n.call(host)
	if err != nil {
		var sig *SignalError
		if errors.As(err, &sig) {
			return sig.Result
		}
		var rt *types.Error
		if errors.As(err, &rt) {
			return types.Err(err)
		}
		return types.Err(types.NewError(types.E_NATIVE, "%s: %v", n.name, err))
	}

	v, err := n.ret.Pack(ctx, out)
	if err != nil {
		return types.Err(err)
	}
	return types.Ok(v)
}

// call runs the host function, turning a panic into an error
func (n *Native) call(args []any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return n.fn(args)
}

// Register binds each native under its name in env
func Register(env *eval.Environment, natives ...*Native) error {
	for _, n := range natives {
		if err := env.AddFunction(n.name, n); err != nil {
			return err
		}
	}
	return nil
}
