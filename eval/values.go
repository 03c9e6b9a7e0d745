package eval

import (
	"fmt"
	"strings"

	"wright/ast"
	"wright/types"
)

// Callable is a value a Call node can invoke: a script function or a
// native registered through the bridge.
type Callable interface {
	types.Value
	Name() string
	Invoke(ctx *CallContext, args []types.Value) types.Result
}

// CallContext is handed to every invocation. Env is the call-site
// environment.
type CallContext struct {
	Eval *Evaluator
	Env  *Environment
}

// FunctionValue is a script function
type FunctionValue struct {
	Def *ast.Function
}

func (f FunctionValue) Kind() types.Kind { return types.KIND_FUNCTION }

func (f FunctionValue) Name() string { return f.Def.Name }

func (f FunctionValue) String() string {
	return fmt.Sprintf("<function %s(%s)>", f.Def.Name, strings.Join(f.Def.Params, ", "))
}

func (f FunctionValue) Equal(other types.Value) bool {
	o, ok := other.(FunctionValue)
	return ok && ast.Equal(f.Def, o.Def)
}

// Invoke binds the arguments in a fresh child of the call-site scope and
// evaluates the body. A return inside the body supplies the result;
// otherwise the body's last value does.
func (f FunctionValue) Invoke(ctx *CallContext, args []types.Value) types.Result {
	if len(args) != len(f.Def.Params) {
		return types.Err(types.WrongArgumentNumber(f.Def.Name, len(f.Def.Params), len(args)))
	}

	scope := NewEnvironment(ctx.Env)
	for i, param := range f.Def.Params {
		if err := scope.Set(param, args[i], true); err != nil {
			return types.Err(err)
		}
	}

	result := ctx.Eval.evalBlock(f.Def.Body, scope)
	if result.IsReturn() {
		return types.Ok(result.Val)
	}
	return result
}

// TemplateValue is an entity template bound in an environment
type TemplateValue struct {
	Def *ast.EntityDefinition
}

func (t TemplateValue) Kind() types.Kind { return types.KIND_TEMPLATE }

func (t TemplateValue) String() string { return "<entity " + t.Def.Name + ">" }

func (t TemplateValue) Equal(other types.Value) bool {
	o, ok := other.(TemplateValue)
	return ok && ast.Equal(t.Def, o.Def)
}

// JumpValue is a label position: a line in its owning sequence
type JumpValue struct {
	Line int
	Seq  *ast.Sequence
}

func (j JumpValue) Kind() types.Kind { return types.KIND_JUMP }

func (j JumpValue) String() string { return fmt.Sprintf("<line %d>", j.Line) }

func (j JumpValue) Equal(other types.Value) bool {
	o, ok := other.(JumpValue)
	return ok && j.Line == o.Line && j.Seq == o.Seq
}
