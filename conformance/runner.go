package conformance

import (
	"fmt"
	"strings"

	"wright/builtins"
	"wright/eval"
	"wright/metrics"
	"wright/program"
	"wright/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Every test gets a fresh environment
// with the standard natives installed.
type Runner struct {
	metrics *metrics.Collector
}

// NewRunner creates a test runner. metrics may be nil.
func NewRunner(m *metrics.Collector) *Runner {
	return &Runner{metrics: m}
}

// run holds what one executed test produced
type run struct {
	outcome eval.Outcome
	output  []string
	err     error
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	got, err := r.execute(test)
	if err != nil {
		return TestResult{Test: test, Error: err}
	}

	if err := checkExpectation(test.Test.Expect, got); err != nil {
		return TestResult{Test: test, Error: err}
	}
	return TestResult{Test: test, Passed: true}
}

// execute decodes and runs the suite setup and the test statements. Only
// harness problems are returned as errors; what the program raised is
// part of the run.
func (r *Runner) execute(test LoadedTest) (run, error) {
	sink := &builtins.Recorder{}
	env := eval.NewEnvironment(nil)
	if err := builtins.NewRegistry(sink).Install(env); err != nil {
		return run{}, fmt.Errorf("install builtins: %w", err)
	}

	opts := []eval.Option{eval.WithMetrics(r.metrics)}
	if test.Test.MaxDepth > 0 {
		opts = append(opts, eval.WithMaxDepth(test.Test.MaxDepth))
	}

	if test.Suite != nil && test.Suite.Setup.Kind != 0 {
		seq, err := program.DecodeStatements(&test.Suite.Setup)
		if err != nil {
			return run{}, fmt.Errorf("setup decode error: %w", err)
		}
		setup := &program.Program{Name: test.Suite.Name, Main: seq}
		if err := setup.Bind(env); err != nil {
			return run{}, fmt.Errorf("setup bind error: %w", err)
		}
		if _, err := eval.New(opts...).Run(setup.Main, env); err != nil {
			return run{}, fmt.Errorf("setup error: %w", err)
		}
	}

	seq, err := program.DecodeStatements(&test.Test.Statements)
	if err != nil {
		return run{}, fmt.Errorf("decode error: %w", err)
	}
	p := &program.Program{Name: test.Test.Name, Main: seq}
	if err := p.Bind(env); err != nil {
		return run{err: err, output: sink.Texts()}, nil
	}

	outcome, err := eval.New(opts...).Run(p.Main, env)
	return run{outcome: outcome, output: sink.Texts(), err: err}, nil
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks a run against the expected outcome
func checkExpectation(expect Expectation, got run) error {
	if expect.IsEmpty() {
		return fmt.Errorf("no expectation specified")
	}

	// Output is checked for failing runs too: text shown before an error
	// stays shown
	if expect.Output != nil {
		if err := checkOutput(*expect.Output, got.output); err != nil {
			return err
		}
	}

	if expect.Error != "" {
		return checkError(expect, got.err)
	}
	if got.err != nil {
		return fmt.Errorf("unexpected error: %v", got.err)
	}

	if expect.Exited != got.outcome.Exited {
		return fmt.Errorf("expected exited=%t, got %t", expect.Exited, got.outcome.Exited)
	}

	if expect.Value != nil {
		expectedVal, err := convertYAMLValue(expect.Value)
		if err != nil {
			return fmt.Errorf("failed to convert expected value: %w", err)
		}
		if got.outcome.Value == nil || !got.outcome.Value.Equal(expectedVal) {
			return fmt.Errorf("expected %s, got %v", expectedVal, got.outcome.Value)
		}
	}

	if expect.Type != "" {
		kind := "<none>"
		if got.outcome.Value != nil {
			kind = got.outcome.Value.Kind().String()
		}
		if kind != expect.Type {
			return fmt.Errorf("expected type %s, got %s", expect.Type, kind)
		}
	}
	return nil
}

func checkError(expect Expectation, err error) error {
	code, ok := types.ErrorFromString(expect.Error)
	if !ok {
		return fmt.Errorf("unknown error code: %s", expect.Error)
	}
	if err == nil {
		return fmt.Errorf("expected error %s, got none", expect.Error)
	}
	if got := types.CodeOf(err); got != code {
		return fmt.Errorf("expected error %s, got %s (%v)", code, got, err)
	}
	if expect.Contains != "" && !strings.Contains(err.Error(), expect.Contains) {
		return fmt.Errorf("expected error containing %q, got %q", expect.Contains, err.Error())
	}
	if expect.Line != 0 {
		line, _ := types.LineOf(err)
		if line != expect.Line {
			return fmt.Errorf("expected error at line %d, got %d", expect.Line, line)
		}
	}
	return nil
}

func checkOutput(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected output %q, got %q", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("expected output %q, got %q", want, got)
		}
	}
	return nil
}

// convertYAMLValue converts a YAML value to a Wright value. Entities are
// written {entity: Template, fields: {name: value}}.
func convertYAMLValue(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case int:
		if val < 0 {
			return nil, fmt.Errorf("numbers are never negative: %d", val)
		}
		return types.NewNum(uint64(val)), nil
	case uint64:
		return types.NewNum(val), nil
	case bool:
		return types.NewBool(val), nil
	case string:
		return types.NewStr(val), nil
	case []interface{}:
		elems := make([]types.Value, len(val))
		for i, e := range val {
			ev, err := convertYAMLValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return types.NewList(elems), nil
	case map[string]interface{}:
		return convertEntity(val)
	default:
		return nil, fmt.Errorf("unsupported YAML value type: %T", v)
	}
}

func convertEntity(m map[string]interface{}) (types.Value, error) {
	template, ok := m["entity"].(string)
	if !ok {
		return nil, fmt.Errorf("mapping values must be entities: {entity: Name, fields: {...}}")
	}
	raw, _ := m["fields"].(map[string]interface{})
	names := make([]string, 0, len(raw))
	fields := make(map[string]types.Value, len(raw))
	for name, fv := range raw {
		v, err := convertYAMLValue(fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		names = append(names, name)
		fields[name] = v
	}
	return types.NewEntity(template, names, fields), nil
}
