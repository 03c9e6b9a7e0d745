package eval

import (
	"wright/ast"
	"wright/task"
	"wright/types"
)

// evalCall evaluates the callee, then the arguments left to right, then
// invokes
func (e *Evaluator) evalCall(n *ast.Call, env *Environment) types.Result {
	fr := e.Eval(n.Fn, env)
	if !fr.IsNormal() {
		return fr
	}
	fn, ok := fr.Val.(Callable)
	if !ok {
		return types.Err(types.NotAFunction(fr.Val))
	}

	args := make([]types.Value, 0, len(n.Args))
	for _, arg := range n.Args {
		r := e.Eval(arg, env)
		if !r.IsNormal() {
			return r
		}
		args = append(args, r.Val)
	}

	return e.Call(fn, args, env)
}

// Call invokes fn with already evaluated arguments, env being the call
// site. Natives use it to call back into script functions.
func (e *Evaluator) Call(fn Callable, args []types.Value, env *Environment) types.Result {
	name := fn.Name()
	if fn.Kind() == types.KIND_NATIVE {
		e.metrics.NativeCall(name)
	} else {
		e.metrics.FunctionCall()
		if e.task != nil {
			e.task.PushFrame(task.ActivationFrame{Function: name, Args: args})
			defer e.task.PopFrame()
		}
	}

	e.tracer.Call(name, args)
	r := fn.Invoke(&CallContext{Eval: e, Env: env}, args)
	if r.IsNormal() {
		e.tracer.Return(name, r.Val)
	}
	return r
}
