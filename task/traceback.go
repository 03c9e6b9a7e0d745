package task

import (
	"fmt"
	"strings"

	"wright/types"
)

// FormatTraceback formats a call stack and error into a traceback
// Format:
//
//	<- <function>, line <N>:  <error message>
//	<- ... called from <function>, line <N>
//	<- (End of traceback)
func FormatTraceback(stack []ActivationFrame, err error) []string {
	msg := errorMessage(err)
	if len(stack) == 0 {
		return []string{
			fmt.Sprintf("<- (no stack):  %s", msg),
			"<- (End of traceback)",
		}
	}

	var lines []string

	// Walk the stack from top (most recent) to bottom (oldest)
	for i := len(stack) - 1; i >= 0; i-- {
		frame := &stack[i]

		if i == len(stack)-1 {
			lines = append(lines, fmt.Sprintf("<- %s, line %d:  %s",
				frame.Function, frame.LineNumber, msg))
		} else {
			lines = append(lines, fmt.Sprintf("<- ... called from %s, line %d",
				frame.Function, frame.LineNumber))
		}
	}

	lines = append(lines, "<- (End of traceback)")

	return lines
}

// FormatTracebackString returns the traceback as a single string with newlines
func FormatTracebackString(stack []ActivationFrame, err error) string {
	return strings.Join(FormatTraceback(stack, err), "\n")
}

// errorMessage drops the line prefix of a traceback; the frames carry it
func errorMessage(err error) string {
	if tb, ok := err.(*types.Traceback); ok {
		return tb.Err.Error()
	}
	return err.Error()
}
