package trace

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"wright/types"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	log     zerolog.Logger
}

// Global tracer instance
var globalTracer *Tracer

// New creates a tracer writing structured events to log
func New(log zerolog.Logger, enabled bool, filters []string) *Tracer {
	return &Tracer{
		enabled: enabled,
		filters: filters,
		log:     log.With().Str("component", "trace").Logger(),
	}
}

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = New(zerolog.New(writer).With().Timestamp().Logger(), enabled, filters)
}

// Global returns the global tracer, or nil before Init
func Global() *Tracer {
	return globalTracer
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	return globalTracer.IsEnabled()
}

// IsEnabled reports whether this tracer emits anything
func (t *Tracer) IsEnabled() bool {
	return t != nil && t.enabled
}

// ForRun returns a tracer whose events carry the given run ID
func (t *Tracer) ForRun(runID string) *Tracer {
	if t == nil {
		return nil
	}
	return &Tracer{
		enabled: t.enabled,
		filters: t.filters,
		log:     t.log.With().Str("run_id", runID).Logger(),
	}
}

// matchesFilter checks if a function name matches any of the filter patterns
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// RunStart logs the beginning of a run
func (t *Tracer) RunStart(statements int) {
	if !t.IsEnabled() {
		return
	}
	t.log.Debug().Str("event", "run.start").Int("statements", statements).Send()
}

// RunEnd logs how a run finished
func (t *Tracer) RunEnd(outcome string, result types.Value) {
	if !t.IsEnabled() {
		return
	}
	ev := t.log.Debug().Str("event", "run.end").Str("outcome", outcome)
	if result != nil {
		ev = ev.Str("result", result.String())
	}
	ev.Send()
}

// Call logs a function call
func (t *Tracer) Call(name string, args []types.Value) {
	if !t.IsEnabled() || !t.matchesFilter(name) {
		return
	}

	argStrs := make([]string, len(args))
	for i, arg := range args {
		argStrs[i] = arg.String()
	}

	t.log.Debug().
		Str("event", "call").
		Str("function", name).
		Str("args", "["+strings.Join(argStrs, ", ")+"]").
		Send()
}

// Return logs a function return value
func (t *Tracer) Return(name string, result types.Value) {
	if !t.IsEnabled() || !t.matchesFilter(name) {
		return
	}

	resultStr := "nil"
	if result != nil {
		resultStr = result.String()
	}
	t.log.Debug().Str("event", "return").Str("function", name).Str("result", resultStr).Send()
}

// Signal logs a control-flow signal handled by a sequence
func (t *Tracer) Signal(flow types.ControlFlow, line int) {
	if !t.IsEnabled() {
		return
	}
	t.log.Debug().Str("event", "signal").Str("kind", flow.String()).Int("line", line).Send()
}

// Error logs a runtime error at the line it was raised
func (t *Tracer) Error(err error, line int) {
	if !t.IsEnabled() {
		return
	}
	t.log.Warn().
		Str("event", "error").
		Str("code", types.CodeOf(err).String()).
		Int("line", line).
		Err(err).
		Send()
}
