package eval

import (
	"wright/ast"
	"wright/task"
	"wright/types"
)

// Outcome is how a run finished when it did not fail
type Outcome struct {
	Value  types.Value // last statement's value; Nil after Exit
	Exited bool        // the program executed an Exit
}

// Run evaluates a top-level sequence in env as one task.
// Exit is a normal outcome. A Return, Goto or Resume nothing handled is
// reported as an E_SIGNAL error; runtime errors carry the line they were
// raised on.
func (e *Evaluator) Run(seq *ast.Sequence, env *Environment) (Outcome, error) {
	if e.manager != nil {
		e.task = e.manager.CreateTask()
	} else {
		e.task = task.NewTask()
	}
	tracer := e.tracer
	e.tracer = tracer.ForRun(e.task.ID.String())
	defer func() { e.tracer = tracer }()

	e.depth = 0
	seq.ClearResume()
	defer e.clearResumePoints()
	e.task.Start()
	e.tracer.RunStart(seq.Len())

	seq.Rewind()
	r := e.evalSequence(seq, env)

	switch r.Flow {
	case types.FlowNormal:
		e.task.Finish(task.TaskCompleted)
		e.tracer.RunEnd("completed", r.Val)
		return Outcome{Value: r.Val}, nil
	case types.FlowExit:
		e.task.Finish(task.TaskExited)
		e.tracer.RunEnd("exited", nil)
		return Outcome{Value: types.Nil, Exited: true}, nil
	case types.FlowError:
		return Outcome{}, e.runFailed(r.Err)
	default:
		err := types.NewError(types.E_SIGNAL, "uncaught %s signal", r.Flow)
		e.task.CaptureErrorStack()
		return Outcome{}, e.runFailed(types.WithLine(err, e.currentLine()))
	}
}

// clearResumePoints drops the resume slots gotos left behind so a later run
// of the same program starts clean
func (e *Evaluator) clearResumePoints() {
	for seq := range e.targets {
		seq.ClearResume()
	}
	clear(e.targets)
}

func (e *Evaluator) runFailed(err error) error {
	e.task.Finish(task.TaskFailed)
	e.metrics.RuntimeError(types.CodeOf(err).String())
	e.tracer.RunEnd("failed", nil)
	return err
}

func (e *Evaluator) currentLine() int {
	if e.task == nil {
		return 0
	}
	if top := e.task.GetTopFrame(); top != nil {
		return top.LineNumber
	}
	return 0
}

// evalBlock runs seq from its first statement and then puts its
// instruction pointer back, so an activation already running seq (an outer
// call of a recursive function) continues where it was.
func (e *Evaluator) evalBlock(seq *ast.Sequence, env *Environment) types.Result {
	mark := seq.Mark()
	defer seq.Restore(mark)
	seq.Rewind()
	return e.evalSequence(seq, env)
}

// evalSequence is the statement loop. It handles Goto and Resume itself,
// possibly moving on to another sequence; Return and Exit propagate to the
// caller unchanged. The result is the value of the last statement
// evaluated, or Nil.
func (e *Evaluator) evalSequence(seq *ast.Sequence, env *Environment) types.Result {
	cur := seq
	last := types.Ok(types.Nil)

	for {
		st, ok := cur.Next()
		if !ok {
			return last
		}
		e.step(st.Line)

		r := e.Eval(st.Node, env)
		switch r.Flow {
		case types.FlowNormal:
			last = r

		case types.FlowResume:
			e.signal(types.FlowResume, st.Line)
			from, pos, ok := cur.ResumePoint()
			if !ok {
				// Nothing jumped here; resume is a no-op
				continue
			}
			if err := from.JumpTo(pos); err != nil {
				return e.fail(err, st.Line)
			}
			cur = from

		case types.FlowGoto:
			e.signal(types.FlowGoto, st.Line)
			jump, ok := r.Val.(JumpValue)
			if !ok {
				return e.fail(types.NewError(types.E_TYPE, "%s is not a jump position", r.Val), st.Line)
			}
			target, ok := jump.Seq.PositionOf(jump.Line)
			if !ok {
				return e.fail(types.NewError(types.E_RANGE, "no statement on line %d", jump.Line), st.Line)
			}
			jump.Seq.SetResume(cur, cur.Pos())
			if e.targets == nil {
				e.targets = make(map[*ast.Sequence]struct{})
			}
			e.targets[jump.Seq] = struct{}{}
			if err := jump.Seq.JumpTo(target); err != nil {
				return e.fail(err, st.Line)
			}
			cur = jump.Seq

		case types.FlowError:
			return e.fail(r.Err, st.Line)

		default:
			// Return and Exit belong to an enclosing function or the host
			return r
		}
	}
}

// step records that the statement on line is about to run
func (e *Evaluator) step(line int) {
	e.metrics.Statement()
	if e.task != nil {
		e.task.Step(line)
	}
}

// signal records a control-flow signal raised or handled on line
func (e *Evaluator) signal(flow types.ControlFlow, line int) {
	e.metrics.Signal(flow.String())
	e.tracer.Signal(flow, line)
}

// fail attaches line to err. Only the innermost sequence does so, and that
// is also where the call stack is captured for the traceback.
func (e *Evaluator) fail(err error, line int) types.Result {
	if _, ok := types.LineOf(err); !ok {
		if e.task != nil {
			e.task.CaptureErrorStack()
		}
		e.tracer.Error(err, line)
	}
	return types.Err(types.WithLine(err, line))
}
