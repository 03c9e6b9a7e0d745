package task

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"wright/types"
)

// TaskState represents the current state of a task
type TaskState int

const (
	TaskCreated TaskState = iota
	TaskRunning
	TaskCompleted
	TaskExited
	TaskFailed
)

func (s TaskState) String() string {
	switch s {
	case TaskCreated:
		return "created"
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskExited:
		return "exited"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MainFrame names the bottom frame of every task
const MainFrame = "<main>"

// ActivationFrame represents a single function call on the call stack
type ActivationFrame struct {
	Function   string        // Function name, or MainFrame
	Args       []types.Value // Arguments passed to the function
	LineNumber int           // Line of the statement being evaluated
}

// Task is one run of a program
type Task struct {
	ID         uuid.UUID
	State      TaskState
	StartTime  time.Time
	EndTime    time.Time
	Statements int64
	CallStack  []ActivationFrame

	errorStack []ActivationFrame
	mu         sync.RWMutex
}

// NewTask creates a new task with a fresh run ID and the main frame pushed
func NewTask() *Task {
	return &Task{
		ID:        uuid.New(),
		State:     TaskCreated,
		CallStack: []ActivationFrame{{Function: MainFrame}},
	}
}

// GetState returns the current state (thread-safe)
func (t *Task) GetState() TaskState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.State
}

// Start marks the task running
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.State = TaskRunning
	t.StartTime = time.Now()
}

// Finish records the final state
func (t *Task) Finish(state TaskState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.State = state
	t.EndTime = time.Now()
}

// Duration is the wall time between Start and Finish
func (t *Task) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.EndTime.IsZero() {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}

// PushFrame pushes an activation frame onto the call stack
func (t *Task) PushFrame(frame ActivationFrame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.CallStack = append(t.CallStack, frame)
}

// PopFrame pops an activation frame from the call stack
func (t *Task) PopFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.CallStack) > 0 {
		t.CallStack = t.CallStack[:len(t.CallStack)-1]
	}
}

// GetCallStack returns a copy of the call stack (thread-safe)
func (t *Task) GetCallStack() []ActivationFrame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stack := make([]ActivationFrame, len(t.CallStack))
	copy(stack, t.CallStack)
	return stack
}

// GetTopFrame returns the frame currently executing
func (t *Task) GetTopFrame() *ActivationFrame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.CallStack) == 0 {
		return nil
	}
	return &t.CallStack[len(t.CallStack)-1]
}

// Step records that the top frame is evaluating the statement at line
func (t *Task) Step(line int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Statements++
	if n := len(t.CallStack); n > 0 {
		t.CallStack[n-1].LineNumber = line
	}
}

// CaptureErrorStack snapshots the call stack where an error was raised.
// Only the first capture is kept; the stack unwinds after it.
func (t *Task) CaptureErrorStack() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.errorStack != nil {
		return
	}
	t.errorStack = make([]ActivationFrame, len(t.CallStack))
	copy(t.errorStack, t.CallStack)
}

// ErrorStack returns the stack captured by CaptureErrorStack
func (t *Task) ErrorStack() []ActivationFrame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errorStack
}
