package eval

import (
	"errors"
	"testing"

	"wright/ast"
	"wright/types"
)

// testNative is a minimal native callable for exercising the evaluator
// without the bridge
type testNative struct {
	name string
	fn   func(ctx *CallContext, args []types.Value) types.Result
}

func (n *testNative) Kind() types.Kind { return types.KIND_NATIVE }
func (n *testNative) Name() string     { return n.name }
func (n *testNative) String() string   { return "<native " + n.name + ">" }

func (n *testNative) Equal(other types.Value) bool {
	o, ok := other.(*testNative)
	return ok && o == n
}

func (n *testNative) Invoke(ctx *CallContext, args []types.Value) types.Result {
	return n.fn(ctx, args)
}

// textbox records the text of every call
func textbox(out *[]string) *testNative {
	return &testNative{name: "textbox", fn: func(_ *CallContext, args []types.Value) types.Result {
		for _, a := range args {
			if s, ok := a.(types.StrValue); ok {
				*out = append(*out, s.Value())
			} else {
				*out = append(*out, a.String())
			}
		}
		return types.Ok(types.Nil)
	}}
}

func numArgs(args []types.Value) ([]uint64, error) {
	nums := make([]uint64, len(args))
	for i, a := range args {
		n, ok := a.(types.NumValue)
		if !ok {
			return nil, types.NewError(types.E_TYPE, "%s is not a number", a)
		}
		nums[i] = n.Val
	}
	return nums, nil
}

var (
	plus = &testNative{name: "+", fn: func(_ *CallContext, args []types.Value) types.Result {
		nums, err := numArgs(args)
		if err != nil {
			return types.Err(err)
		}
		var sum uint64
		for _, n := range nums {
			sum += n
		}
		return types.Ok(types.NewNum(sum))
	}}
	minus = &testNative{name: "-", fn: func(_ *CallContext, args []types.Value) types.Result {
		nums, err := numArgs(args)
		if err != nil {
			return types.Err(err)
		}
		n, err := types.NumFromInt(int64(nums[0]) - int64(nums[1]))
		if err != nil {
			return types.Err(err)
		}
		return types.Ok(n)
	}}
	greater = &testNative{name: ">", fn: func(_ *CallContext, args []types.Value) types.Result {
		nums, err := numArgs(args)
		if err != nil {
			return types.Err(err)
		}
		return types.Ok(types.NewBool(nums[0] > nums[1]))
	}}
)

// newTestEnv returns a global environment with the arithmetic natives and
// a textbox writing into out
func newTestEnv(t *testing.T, out *[]string) *Environment {
	t.Helper()
	env := NewEnvironment(nil)
	for _, fn := range []Callable{plus, minus, greater, textbox(out)} {
		if err := env.AddFunction(fn.Name(), fn); err != nil {
			t.Fatalf("AddFunction(%s) failed: %v", fn.Name(), err)
		}
	}
	return env
}

// bind performs the binding pass on seq: labels (also inside function
// bodies), functions and entity templates at the top level
func bind(t *testing.T, env *Environment, seq *ast.Sequence) {
	t.Helper()
	bindLabels(t, env, seq)
	for _, st := range seq.Statements() {
		switch n := st.Node.(type) {
		case *ast.Function:
			if err := env.AddFunction(n.Name, FunctionValue{Def: n}); err != nil {
				t.Fatalf("AddFunction(%s) failed: %v", n.Name, err)
			}
		case *ast.EntityDefinition:
			if err := env.AddEntityTemplate(n); err != nil {
				t.Fatalf("AddEntityTemplate(%s) failed: %v", n.Name, err)
			}
		}
	}
}

func bindLabels(t *testing.T, env *Environment, seq *ast.Sequence) {
	for _, st := range seq.Statements() {
		switch n := st.Node.(type) {
		case *ast.Label:
			if err := env.AddLabel(n.Name, st.Line, seq); err != nil {
				t.Fatalf("AddLabel(%s) failed: %v", n.Name, err)
			}
		case *ast.Function:
			bindLabels(t, env, n.Body)
		}
	}
}

func call(fn string, args ...ast.Node) *ast.Call {
	return ast.NewCall(ast.NewIdentifier(fn), args...)
}

func num(n uint64) *ast.NumberLit { return ast.NewNumber(n) }
func str(s string) *ast.StringLit { return ast.NewString(s) }
func id(name string) *ast.Identifier {
	return ast.NewIdentifier(name)
}

// run binds and runs seq in a fresh test environment
func run(t *testing.T, seq *ast.Sequence, opts ...Option) (Outcome, []string, error) {
	t.Helper()
	var out []string
	env := newTestEnv(t, &out)
	bind(t, env, seq)
	outcome, err := New(opts...).Run(seq, env)
	return outcome, out, err
}

// mustRun is run for programs expected to succeed
func mustRun(t *testing.T, seq *ast.Sequence) (types.Value, []string) {
	t.Helper()
	outcome, out, err := run(t, seq)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return outcome.Value, out
}

// expectCode checks that err carries code
func expectCode(t *testing.T, err error, code types.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s, got no error", code)
	}
	if !errors.Is(err, types.Code(code)) {
		t.Fatalf("Expected %s, got %v", code, err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
