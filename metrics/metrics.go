// Package metrics counts interpreter activity as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wright"

// Collector holds the interpreter counters. A nil *Collector is valid and
// records nothing.
type Collector struct {
	statements    prometheus.Counter
	signals       *prometheus.CounterVec
	runtimeErrors *prometheus.CounterVec
	nativeCalls   *prometheus.CounterVec
	functionCalls prometheus.Counter
}

// NewCollector creates the counters and registers them on reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		statements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Total number of statements evaluated",
		}),
		signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signals_total",
				Help:      "Control-flow signals handled by statement sequences",
			},
			[]string{"kind"},
		),
		runtimeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runtime_errors_total",
				Help:      "Runtime errors raised, by error code",
			},
			[]string{"code"},
		),
		nativeCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "native_calls_total",
				Help:      "Native function invocations, by name",
			},
			[]string{"name"},
		),
		functionCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "function_calls_total",
			Help:      "Script function invocations",
		}),
	}

	collectors := []prometheus.Collector{
		c.statements,
		c.signals,
		c.runtimeErrors,
		c.nativeCalls,
		c.functionCalls,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Statement counts one evaluated statement
func (c *Collector) Statement() {
	if c == nil {
		return
	}
	c.statements.Inc()
}

// Statements exposes the statement counter
func (c *Collector) Statements() prometheus.Counter {
	return c.statements
}

// Signal counts a goto, resume, return or exit seen by a sequence
func (c *Collector) Signal(kind string) {
	if c == nil {
		return
	}
	c.signals.WithLabelValues(kind).Inc()
}

// RuntimeError counts an error that ended a run
func (c *Collector) RuntimeError(code string) {
	if c == nil {
		return
	}
	c.runtimeErrors.WithLabelValues(code).Inc()
}

// NativeCall counts an invocation of a host function
func (c *Collector) NativeCall(name string) {
	if c == nil {
		return
	}
	c.nativeCalls.WithLabelValues(name).Inc()
}

// FunctionCall counts an invocation of a script function
func (c *Collector) FunctionCall() {
	if c == nil {
		return
	}
	c.functionCalls.Inc()
}
