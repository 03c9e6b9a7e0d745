package builtins

import (
	"fmt"
	"io"
	"sync"

	"wright/bridge"
)

// Sink receives what a program shows the player
type Sink interface {
	Textbox(text string) error
}

// Recorder is a Sink that keeps every textbox in memory
type Recorder struct {
	mu    sync.Mutex
	texts []string
}

// Textbox records text
func (r *Recorder) Textbox(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

// Texts returns a copy of everything recorded so far
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

// WriterSink prints each textbox as a line
type WriterSink struct {
	W io.Writer
}

// Textbox writes text followed by a newline
func (w WriterSink) Textbox(text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}

// textbox: textbox(text) shows text to the player. Numbers and booleans
// are shown as written.
func textbox(sink Sink) bridge.HostFunc {
	return func(args []any) (any, error) {
		if sink == nil {
			return nil, nil
		}
		return nil, sink.Textbox(fmt.Sprint(args[0]))
	}
}
