package trace

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"wright/types"
)

func newTestTracer(filters ...string) (*Tracer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(zerolog.New(&buf), true, filters), &buf
}

func TestTracerCall(t *testing.T) {
	tr, buf := newTestTracer()
	tr.ForRun("run-1").Call("f", []types.Value{types.NewNum(5), types.NewStr("a")})

	out := buf.String()
	for _, want := range []string{`"event":"call"`, `"function":"f"`, `"run_id":"run-1"`, `[5, \"a\"]`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in %s", want, out)
		}
	}
}

func TestTracerFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		fn      string
		traced  bool
	}{
		{"no filters", nil, "anything", true},
		{"exact", []string{"textbox"}, "textbox", true},
		{"glob", []string{"text*"}, "textbox", true},
		{"miss", []string{"text*"}, "capitalize", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, buf := newTestTracer(tt.filters...)
			tr.Return(tt.fn, types.Nil)
			if got := buf.Len() > 0; got != tt.traced {
				t.Errorf("Expected traced=%v, got %v", tt.traced, got)
			}
		})
	}
}

func TestTracerDisabled(t *testing.T) {
	var buf bytes.Buffer
	tr := New(zerolog.New(&buf), false, nil)
	tr.RunStart(3)
	tr.Call("f", nil)
	tr.Signal(types.FlowGoto, 2)
	tr.Error(errors.New("boom"), 1)
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %s", buf.String())
	}
}

func TestNilTracer(t *testing.T) {
	var tr *Tracer
	tr.RunStart(1)
	tr.ForRun("x").Call("f", nil)
	tr.RunEnd("ok", types.Nil)
	if tr.IsEnabled() {
		t.Error("Expected nil tracer to be disabled")
	}
}

func TestTracerError(t *testing.T) {
	tr, buf := newTestTracer()
	tr.Error(types.UnboundName("x"), 4)

	out := buf.String()
	if !strings.Contains(out, `"code":"E_UNBOUND"`) || !strings.Contains(out, `"line":4`) {
		t.Errorf("Unexpected error event: %s", out)
	}
}

func TestGlobalInit(t *testing.T) {
	var buf bytes.Buffer
	Init(true, nil, &buf)
	defer func() { globalTracer = nil }()

	if !IsEnabled() {
		t.Fatal("Expected global tracer to be enabled")
	}
	Global().Signal(types.FlowResume, 7)
	if !strings.Contains(buf.String(), `"kind":"resume"`) {
		t.Errorf("Unexpected signal event: %s", buf.String())
	}
}
