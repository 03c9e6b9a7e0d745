package types

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal ControlFlow = iota // Normal execution
	FlowResume                    // Resume statement
	FlowGoto                      // Goto statement (Val holds the jump position)
	FlowExit                      // Exit statement
	FlowReturn                    // Return statement
	FlowError                     // Runtime error being raised
)

// String returns the name of the flow
func (f ControlFlow) String() string {
	switch f {
	case FlowNormal:
		return "normal"
	case FlowResume:
		return "resume"
	case FlowGoto:
		return "goto"
	case FlowExit:
		return "exit"
	case FlowReturn:
		return "return"
	case FlowError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of evaluating a node.
// This unifies normal values, the four control-flow signals, and errors.
type Result struct {
	Val  Value       // The value (FlowNormal, FlowReturn, FlowGoto)
	Flow ControlFlow // Control flow state
	Err  error       // Only set when Flow == FlowError
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	if v == nil {
		v = Nil
	}
	return Result{Val: v, Flow: FlowNormal}
}

// Return creates a Result for a return statement
func Return(v Value) Result {
	if v == nil {
		v = Nil
	}
	return Result{Val: v, Flow: FlowReturn}
}

// Goto creates a Result for a goto to the given jump position
func Goto(target Value) Result {
	return Result{Val: target, Flow: FlowGoto}
}

// Resume creates a Result for a resume statement
func Resume() Result {
	return Result{Flow: FlowResume}
}

// Exit creates a Result for an exit statement
func Exit() Result {
	return Result{Flow: FlowExit}
}

// Err creates a Result for a runtime error
func Err(err error) Result {
	return Result{Flow: FlowError, Err: err}
}

// IsNormal returns true if this is normal execution
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsError returns true if this is a runtime error
func (r Result) IsError() bool {
	return r.Flow == FlowError
}

// IsReturn returns true if this is a return statement
func (r Result) IsReturn() bool {
	return r.Flow == FlowReturn
}

// IsExit returns true if this is an exit statement
func (r Result) IsExit() bool {
	return r.Flow == FlowExit
}

// IsSignal returns true for any of the four control-flow signals
func (r Result) IsSignal() bool {
	switch r.Flow {
	case FlowResume, FlowGoto, FlowExit, FlowReturn:
		return true
	}
	return false
}
