// Package ast defines the Wright abstract syntax tree. Nodes are immutable
// data once built; the only node carrying mutable interpreter state is the
// Sequence, which owns its instruction pointer and resume slot.
package ast

// Node is the interface implemented by every AST node
type Node interface {
	String() string
	node()
}

// Identifier is a named reference. Dotted names (a.b.c) address entity
// fields.
type Identifier struct {
	Name string
}

func NewIdentifier(name string) *Identifier { return &Identifier{Name: name} }

// BooleanLit is a boolean literal
type BooleanLit struct {
	Value bool
}

func NewBoolean(v bool) *BooleanLit { return &BooleanLit{Value: v} }

// NumberLit is a non-negative integer literal
type NumberLit struct {
	Value uint64
}

func NewNumber(v uint64) *NumberLit { return &NumberLit{Value: v} }

// StringLit is a string literal
type StringLit struct {
	Value string
}

func NewString(v string) *StringLit { return &StringLit{Value: v} }

// Label is a named position in a sequence. The binder maps the name to the
// label's line before evaluation; reaching a label is a no-op.
type Label struct {
	Name string
}

func NewLabel(name string) *Label { return &Label{Name: name} }

// Resume jumps back to the statement after the most recent goto that
// entered the current sequence. Gotos don't stack: only the last one is
// remembered.
type Resume struct{}

func NewResume() *Resume { return &Resume{} }

// Goto transfers control to the label bound to Target
type Goto struct {
	Target *Identifier
}

func NewGoto(target string) *Goto { return &Goto{Target: NewIdentifier(target)} }

// If evaluates Then when Test is truthy, otherwise Else (which may be nil)
type If struct {
	Test Node
	Then Node
	Else Node
}

func NewIf(test, then, els Node) *If { return &If{Test: test, Then: then, Else: els} }

// HasElse reports whether the else branch is present
func (n *If) HasElse() bool { return n.Else != nil }

// Call invokes the callable Fn evaluates to
type Call struct {
	Fn   Node
	Args []Node
}

func NewCall(fn Node, args ...Node) *Call { return &Call{Fn: fn, Args: args} }

// Function is a function definition. Parameters shadow names of the calling
// scope.
type Function struct {
	Name   string
	Params []string
	Body   *Sequence
}

func NewFunction(name string, params []string, body *Sequence) *Function {
	return &Function{Name: name, Params: params, Body: body}
}

// Exit stops the whole run
type Exit struct{}

func NewExit() *Exit { return &Exit{} }

// Return leaves the enclosing function. Value may be nil.
type Return struct {
	Value Node
}

func NewReturn(value Node) *Return { return &Return{Value: value} }

// CreateList builds a list. Elements are evaluated immediately, so
//
//	x := 42
//	l := [x]
//	x := 0
//
// leaves l holding 42.
type CreateList struct {
	Elements []Node
}

func NewList(elements ...Node) *CreateList { return &CreateList{Elements: elements} }

// Assignment binds Name to the value of Value
type Assignment struct {
	Name  string
	Value Node
}

func NewAssignment(name string, value Node) *Assignment {
	return &Assignment{Name: name, Value: value}
}

// FieldAssignment sets an entity field addressed by a dotted Path
type FieldAssignment struct {
	Path  string
	Value Node
}

func NewFieldAssignment(path string, value Node) *FieldAssignment {
	return &FieldAssignment{Path: path, Value: value}
}

func (*Identifier) node()       {}
func (*BooleanLit) node()       {}
func (*NumberLit) node()        {}
func (*StringLit) node()        {}
func (*Sequence) node()         {}
func (*Label) node()            {}
func (*Resume) node()           {}
func (*Goto) node()             {}
func (*If) node()               {}
func (*Call) node()             {}
func (*Function) node()         {}
func (*Exit) node()             {}
func (*Return) node()           {}
func (*CreateList) node()       {}
func (*Assignment) node()       {}
func (*FieldAssignment) node()  {}
func (*EntityDefinition) node() {}
func (*CreateEntity) node()     {}
