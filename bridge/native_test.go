package bridge

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"wright/ast"
	"wright/eval"
	"wright/types"
)

func factorial(x int) int {
	if x == 0 {
		return 1
	}
	return x * factorial(x-1)
}

func TestNativeNoArgs(t *testing.T) {
	fn := New("hello", func([]any) (any, error) {
		return "Hello World", nil
	}).Returns(String(true))

	r := fn.Invoke(newCtx(), nil)
	if !r.IsNormal() || !r.Val.Equal(types.NewStr("Hello World")) {
		t.Errorf("Expected \"Hello World\", got %v (%v)", r.Val, r.Err)
	}
}

func TestNativeFactorial(t *testing.T) {
	fn := New("factorial", func(args []any) (any, error) {
		return factorial(args[0].(int)), nil
	}).Expects(Number(true)).Returns(Number(true))

	r := fn.Invoke(newCtx(), []types.Value{types.NewNum(5)})
	if !r.IsNormal() || !r.Val.Equal(types.NewNum(120)) {
		t.Errorf("Expected Number(120), got %v (%v)", r.Val, r.Err)
	}
}

func TestNativeEntity(t *testing.T) {
	capitalizeName := New("capitalizeName", func(args []any) (any, error) {
		e := args[0].(*EntityView)
		name, err := e.Get("name")
		if err != nil {
			return nil, err
		}
		s := name.(string)
		return nil, e.Set("name", strings.ToUpper(s[:1])+s[1:])
	}).Expects(Entity("Character"))

	entity := types.NewEntity("Character", []string{"name"}, map[string]types.Value{"name": types.NewStr("phoenix")})
	r := capitalizeName.Invoke(newCtx(), []types.Value{entity})
	if !r.IsNormal() || r.Val != types.Nil {
		t.Fatalf("Expected nil result, got %v (%v)", r.Val, r.Err)
	}
	got, _ := entity.Get("name")
	if !got.Equal(types.NewStr("Phoenix")) {
		t.Errorf("Expected \"Phoenix\", got %s", got)
	}

	other := types.NewEntity("Place", []string{"name"}, map[string]types.Value{"name": types.NewStr("court")})
	r = capitalizeName.Invoke(newCtx(), []types.Value{other})
	expectCode(t, r.Err, types.E_TYPE)
}

func TestNativeList(t *testing.T) {
	appendFn := New("append", func(args []any) (any, error) {
		return args[0].(*ListView).Concat([]any{args[1]})
	}).Expects(List(), String(false)).Returns(List())

	r := appendFn.Invoke(newCtx(), []types.Value{
		types.NewList([]types.Value{types.NewNum(1)}),
		types.NewNum(2),
	})
	want := types.NewList([]types.Value{types.NewNum(1), types.NewNum(2)})
	if !r.IsNormal() || !r.Val.Equal(want) {
		t.Errorf("Expected %s, got %v (%v)", want, r.Val, r.Err)
	}
}

func TestNativeSum(t *testing.T) {
	sum := New("sum", func(args []any) (any, error) {
		total := 0
		for x, err := range args[0].(*ListView).All() {
			if err != nil {
				return nil, err
			}
			n, ok := x.(int)
			if !ok {
				return nil, types.NewError(types.E_TYPE, "%v is not a number", x)
			}
			total += n
		}
		return total, nil
	}).Expects(List()).Returns(Number(true))

	list := types.NewList([]types.Value{types.NewNum(1), types.NewNum(2), types.NewNum(3)})
	r := sum.Invoke(newCtx(), []types.Value{list})
	if !r.IsNormal() || !r.Val.Equal(types.NewNum(6)) {
		t.Errorf("Expected Number(6), got %v (%v)", r.Val, r.Err)
	}

	bad := types.NewList([]types.Value{types.NewNum(1), types.NewStr("x")})
	r = sum.Invoke(newCtx(), []types.Value{bad})
	expectCode(t, r.Err, types.E_TYPE)
}

func TestNativeFunctionArgument(t *testing.T) {
	addone := New("addone", func(args []any) (any, error) {
		return args[0].(int) + 1, nil
	}).Expects(Number(true)).Returns(Number(true))

	half := New("half", func(args []any) (any, error) {
		out, err := args[0].(Thunk)(1)
		if err != nil {
			return nil, err
		}
		return out.(int) / 2, nil
	}).Expects(Function()).Returns(Number(true))

	r := half.Invoke(newCtx(), []types.Value{addone})
	if !r.IsNormal() || !r.Val.Equal(types.NewNum(1)) {
		t.Errorf("Expected Number(1), got %v (%v)", r.Val, r.Err)
	}
}

func TestNativeCallsScriptFunction(t *testing.T) {
	// twice(f, x) = f(f(x)), with f a script function calling +
	twice := New("twice", func(args []any) (any, error) {
		f := args[0].(Thunk)
		once, err := f(args[1])
		if err != nil {
			return nil, err
		}
		return f(once)
	}).Expects(Function(), Number(true)).Returns(Number(true))
	plus := New("+", func(args []any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	}).Expects(Number(true), Number(true)).Returns(Number(true))

	inc := ast.NewFunction("inc", []string{"x"}, ast.SequenceOf(
		ast.NewCall(ast.NewIdentifier("+"), ast.NewIdentifier("x"), ast.NewNumber(1)),
	))
	seq := ast.SequenceOf(
		inc,
		ast.NewCall(ast.NewIdentifier("twice"), ast.NewIdentifier("inc"), ast.NewNumber(5)),
	)

	env := eval.NewEnvironment(nil)
	if err := Register(env, twice, plus); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := env.AddFunction("inc", eval.FunctionValue{Def: inc}); err != nil {
		t.Fatalf("AddFunction failed: %v", err)
	}

	outcome, err := eval.New().Run(seq, env)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !outcome.Value.Equal(types.NewNum(7)) {
		t.Errorf("Expected Number(7), got %s", outcome.Value)
	}
}

func TestNativeReraisesExit(t *testing.T) {
	callIt := New("call", func(args []any) (any, error) {
		return args[0].(Thunk)()
	}).Expects(Function())
	quit := ast.NewFunction("quit", nil, ast.SequenceOf(ast.NewExit()))

	ctx := newCtx()
	r := callIt.Invoke(ctx, []types.Value{eval.FunctionValue{Def: quit}})
	if !r.IsExit() {
		t.Errorf("Expected exit, got %s (%v)", r.Flow, r.Err)
	}
}

func TestNativeErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   HostFunc
		code types.ErrorCode
	}{
		{"runtime error propagates", func([]any) (any, error) {
			return nil, types.UnboundName("x")
		}, types.E_UNBOUND},
		{"wrapped runtime error propagates", func([]any) (any, error) {
			return nil, fmt.Errorf("lookup: %w", types.UnboundName("x"))
		}, types.E_UNBOUND},
		{"host error", func([]any) (any, error) {
			return nil, errors.New("disk on fire")
		}, types.E_NATIVE},
		{"panic", func([]any) (any, error) {
			panic("boom")
		}, types.E_NATIVE},
		{"bad result", func([]any) (any, error) {
			return "not a number", nil
		}, types.E_TYPE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := New("f", tt.fn).Returns(Number(true))
			r := fn.Invoke(newCtx(), nil)
			expectCode(t, r.Err, tt.code)
		})
	}
}

func TestNativeArity(t *testing.T) {
	fn := New("f", func([]any) (any, error) { return nil, nil }).Expects(Number(true))
	r := fn.Invoke(newCtx(), nil)
	expectCode(t, r.Err, types.E_ARGS)
	r = fn.Invoke(newCtx(), []types.Value{types.NewNum(1), types.NewNum(2)})
	expectCode(t, r.Err, types.E_ARGS)
}

func TestRegisterConflict(t *testing.T) {
	env := eval.NewEnvironment(nil)
	fn := New("f", func([]any) (any, error) { return nil, nil })
	if err := Register(env, fn); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	expectCode(t, Register(env, fn), types.E_CONFLICT)
	expectCode(t, env.Set("f", types.NewNum(1), false), types.E_DEFINED)
}
