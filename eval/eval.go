package eval

import (
	"wright/ast"
	"wright/metrics"
	"wright/task"
	"wright/trace"
	"wright/types"
)

// DefaultMaxDepth bounds evaluation nesting when no limit is configured
const DefaultMaxDepth = 2000

// Evaluator walks the AST and evaluates nodes
type Evaluator struct {
	maxDepth int
	depth    int
	tracer   *trace.Tracer
	metrics  *metrics.Collector
	manager  *task.Manager
	task     *task.Task
	targets  map[*ast.Sequence]struct{} // sequences given a resume point during Run
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithMaxDepth bounds evaluation nesting; deeper recursion fails with E_MAXREC
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithTracer sends trace events to t instead of the global tracer
func WithTracer(t *trace.Tracer) Option {
	return func(e *Evaluator) { e.tracer = t }
}

// WithMetrics reports evaluation counters into c
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Evaluator) { e.metrics = c }
}

// WithManager registers every run as a task on m
func WithManager(m *task.Manager) Option {
	return func(e *Evaluator) { e.manager = m }
}

// New creates an evaluator
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		maxDepth: DefaultMaxDepth,
		tracer:   trace.Global(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Task returns the task of the current or most recent run
func (e *Evaluator) Task() *task.Task {
	return e.task
}

// Tracer returns the tracer events go to
func (e *Evaluator) Tracer() *trace.Tracer {
	return e.tracer
}

// Metrics returns the configured collector, which may be nil
func (e *Evaluator) Metrics() *metrics.Collector {
	return e.metrics
}

// Eval evaluates an AST node and returns a Result
// All evaluation methods follow this pattern:
// - Accept the Environment the node is evaluated in
// - Return Result (not raw Value) to unify error handling and control flow
// - Check the nesting depth before processing
func (e *Evaluator) Eval(node ast.Node, env *Environment) types.Result {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return types.Err(types.NewError(types.E_MAXREC, "nesting deeper than %d", e.maxDepth))
	}

	switch n := node.(type) {
	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.BooleanLit:
		return types.Ok(types.NewBool(n.Value))
	case *ast.NumberLit:
		return types.Ok(types.NewNum(n.Value))
	case *ast.StringLit:
		return types.Ok(types.NewStr(n.Value))
	case *ast.Label:
		return types.Ok(types.Nil)
	case *ast.Resume:
		return types.Resume()
	case *ast.Goto:
		return e.evalGoto(n, env)
	case *ast.Exit:
		return types.Exit()
	case *ast.Return:
		return e.evalReturn(n, env)
	case *ast.If:
		return e.evalIf(n, env)
	case *ast.Call:
		return e.evalCall(n, env)
	case *ast.Function:
		return types.Ok(FunctionValue{Def: n})
	case *ast.CreateList:
		return e.evalList(n, env)
	case *ast.Assignment:
		return e.evalAssignment(n, env)
	case *ast.FieldAssignment:
		return e.evalFieldAssignment(n, env)
	case *ast.EntityDefinition:
		return types.Ok(TemplateValue{Def: n})
	case *ast.CreateEntity:
		return e.evalCreateEntity(n, env)
	case *ast.Sequence:
		return e.evalBlock(n, env)
	case nil:
		return types.Err(types.NewError(types.E_TYPE, "missing node"))
	default:
		return types.Err(types.NewError(types.E_TYPE, "cannot evaluate %T", node))
	}
}

// evalIdentifier looks up a name, following dotted field paths
func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *Environment) types.Result {
	val, err := env.Get(n.Name)
	if err != nil {
		return types.Err(err)
	}
	return types.Ok(val)
}

// evalGoto resolves the target label to its jump position
func (e *Evaluator) evalGoto(n *ast.Goto, env *Environment) types.Result {
	val, err := env.Get(n.Target.Name)
	if err != nil {
		return types.Err(err)
	}
	jump, ok := val.(JumpValue)
	if !ok {
		return types.Err(types.NewError(types.E_TYPE, "'%s' is not a label", n.Target.Name))
	}
	return types.Goto(jump)
}

func (e *Evaluator) evalReturn(n *ast.Return, env *Environment) types.Result {
	if n.Value == nil {
		return types.Return(types.Nil)
	}
	r := e.Eval(n.Value, env)
	if !r.IsNormal() {
		return r
	}
	return types.Return(r.Val)
}

// evalIf evaluates only the branch the test selects
func (e *Evaluator) evalIf(n *ast.If, env *Environment) types.Result {
	test := e.Eval(n.Test, env)
	if !test.IsNormal() {
		return test
	}
	truth, err := types.Truth(test.Val)
	if err != nil {
		return types.Err(err)
	}

	if truth {
		return e.Eval(n.Then, env)
	}
	if n.HasElse() {
		return e.Eval(n.Else, env)
	}
	return types.Ok(types.Nil)
}

// evalList evaluates the elements left to right into a new list
func (e *Evaluator) evalList(n *ast.CreateList, env *Environment) types.Result {
	elements := make([]types.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		r := e.Eval(el, env)
		if !r.IsNormal() {
			return r
		}
		elements = append(elements, r.Val)
	}
	return types.Ok(types.NewList(elements))
}

// evalRightValue evaluates the right-hand side of an assignment, which may
// not be a function
func (e *Evaluator) evalRightValue(node ast.Node, env *Environment) types.Result {
	r := e.Eval(node, env)
	if r.IsNormal() && r.Val.Kind().IsCallable() {
		return types.Err(types.FunctionAsRightValue(r.Val))
	}
	return r
}

func (e *Evaluator) evalAssignment(n *ast.Assignment, env *Environment) types.Result {
	r := e.evalRightValue(n.Value, env)
	if !r.IsNormal() {
		return r
	}
	if err := env.Set(n.Name, r.Val, false); err != nil {
		return types.Err(err)
	}
	return r
}

func (e *Evaluator) evalFieldAssignment(n *ast.FieldAssignment, env *Environment) types.Result {
	r := e.evalRightValue(n.Value, env)
	if !r.IsNormal() {
		return r
	}
	if err := env.SetField(n.Path, r.Val); err != nil {
		return types.Err(err)
	}
	return r
}
