package ast

import (
	"fmt"
	"strconv"
	"strings"

	"wright/types"
)

// Statement is one node of a sequence together with its source line
type Statement struct {
	Node Node
	Line int
}

// SeqState is the state of a sequence's instruction pointer
type SeqState int

const (
	SeqNotStarted SeqState = iota
	SeqRunning
	SeqFinished
)

func (s SeqState) String() string {
	switch s {
	case SeqNotStarted:
		return "not-started"
	case SeqRunning:
		return "running"
	case SeqFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Sequence is an ordered, resumable list of statements with its own
// instruction pointer. It also remembers where the last goto into it came
// from, so a resume can go back there.
type Sequence struct {
	statements []Statement
	pos        int
	lines      map[int]int // line -> position; a later duplicate line wins

	resumeSeq *Sequence
	resumePos int
}

// NewSequence creates an empty sequence
func NewSequence() *Sequence {
	return &Sequence{pos: -1, lines: make(map[int]int)}
}

// SequenceOf creates a sequence from nodes numbered from line 1
func SequenceOf(nodes ...Node) *Sequence {
	s := NewSequence()
	for i, n := range nodes {
		s.Add(n, i+1)
	}
	return s
}

// Add appends a statement and indexes its line
func (s *Sequence) Add(node Node, line int) *Sequence {
	s.statements = append(s.statements, Statement{Node: node, Line: line})
	s.lines[line] = len(s.statements) - 1
	return s
}

// Len returns the number of statements
func (s *Sequence) Len() int {
	return len(s.statements)
}

// Statements returns the statements in order
func (s *Sequence) Statements() []Statement {
	out := make([]Statement, len(s.statements))
	copy(out, s.statements)
	return out
}

// Rewind moves the instruction pointer before the first statement
func (s *Sequence) Rewind() {
	s.pos = -1
}

// Next advances the instruction pointer and returns the statement it now
// points at. It returns false once the sequence is finished.
func (s *Sequence) Next() (Statement, bool) {
	if s.pos < len(s.statements) {
		s.pos++
	}
	if s.pos >= len(s.statements) {
		return Statement{}, false
	}
	return s.statements[s.pos], true
}

// Current returns the statement at the instruction pointer
func (s *Sequence) Current() (Statement, bool) {
	if s.pos < 0 || s.pos >= len(s.statements) {
		return Statement{}, false
	}
	return s.statements[s.pos], true
}

// Pos returns the position of the statement last returned by Next
func (s *Sequence) Pos() int {
	return s.pos
}

// State returns the state of the instruction pointer
func (s *Sequence) State() SeqState {
	switch {
	case s.pos < 0:
		return SeqNotStarted
	case s.pos >= len(s.statements):
		return SeqFinished
	default:
		return SeqRunning
	}
}

// Finished reports whether every statement has been consumed
func (s *Sequence) Finished() bool {
	return s.State() == SeqFinished
}

// JumpTo moves the instruction pointer to pos. The next call to Next
// returns the statement after pos.
func (s *Sequence) JumpTo(pos int) error {
	if pos < 0 || pos >= len(s.statements) {
		return types.NewError(types.E_RANGE, "statement %d does not exist", pos)
	}
	s.pos = pos
	return nil
}

// PositionOf returns the position of the statement on line
func (s *Sequence) PositionOf(line int) (int, bool) {
	pos, ok := s.lines[line]
	return pos, ok
}

// SetResume remembers where a goto into this sequence came from
func (s *Sequence) SetResume(from *Sequence, pos int) {
	s.resumeSeq = from
	s.resumePos = pos
}

// ClearResume forgets any remembered goto origin
func (s *Sequence) ClearResume() {
	s.resumeSeq = nil
	s.resumePos = 0
}

// ResumePoint returns the remembered goto origin, if any
func (s *Sequence) ResumePoint() (*Sequence, int, bool) {
	if s.resumeSeq == nil {
		return nil, 0, false
	}
	return s.resumeSeq, s.resumePos, true
}

// Mark captures the instruction pointer so a nested activation of the same
// sequence can be undone with Restore
type Mark struct {
	pos int
}

// Mark returns the current instruction pointer
func (s *Sequence) Mark() Mark {
	return Mark{pos: s.pos}
}

// Restore resets the instruction pointer to a previous Mark
func (s *Sequence) Restore(m Mark) {
	s.pos = m.pos
}

// String lists the statements with right-aligned line numbers
func (s *Sequence) String() string {
	if len(s.statements) == 0 {
		return ""
	}
	width := 1
	for _, st := range s.statements {
		if w := len(strconv.Itoa(st.Line)); w > width {
			width = w
		}
	}
	lines := make([]string, len(s.statements))
	for i, st := range s.statements {
		lines[i] = fmt.Sprintf("%*d: %s", width, st.Line, st.Node.String())
	}
	return strings.Join(lines, "\n")
}
