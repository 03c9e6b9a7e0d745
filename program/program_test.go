package program

import (
	"errors"
	"strings"
	"testing"

	"wright/ast"
	"wright/builtins"
	"wright/eval"
	"wright/types"
)

// runSource decodes, binds and runs src with the builtin registry
func runSource(t *testing.T, src string) (eval.Outcome, []string, error) {
	t.Helper()
	p, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out := &builtins.Recorder{}
	env := eval.NewEnvironment(nil)
	if err := builtins.NewRegistry(out).Install(env); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if err := p.Bind(env); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	res, err := eval.New().Run(p.Main, env)
	return res, out.Texts(), err
}

func TestDecodeLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Node
	}{
		{"42", ast.NewNumber(42)},
		{"0x10", ast.NewNumber(16)},
		{"true", ast.NewBoolean(true)},
		{"no-quotes", ast.NewString("no-quotes")},
		{`"42"`, ast.NewString("42")},
		{"{ident: x}", ast.NewIdentifier("x")},
		{"{list: [1, a]}", ast.NewList(ast.NewNumber(1), ast.NewString("a"))},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Decode([]byte("statements: [" + tt.src + "]"))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			got := p.Main.Statements()[0].Node
			if !ast.Equal(got, tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecodeStatements(t *testing.T) {
	src := `
name: forms
statements:
  - {goto: main}
  - {label: main}
  - {resume: true}
  - {exit: true}
  - {return: 3}
  - {return: null}
  - {call: textbox, args: [hi]}
  - {if: true, then: 1, else: 2}
  - {seq: [1, 2]}
  - {def: f, params: [a, b], body: [{return: {ident: a}}]}
  - {set: x, value: 1}
  - {setfield: p.name, value: Apollo}
  - {entity: Character, fields: [name, {name: blipsound, default: male}]}
  - {new: Character, fields: {name: Apollo}}
`
	p, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if p.Name != "forms" {
		t.Errorf("Expected name forms, got %q", p.Name)
	}

	want := ast.SequenceOf(
		ast.NewGoto("main"),
		ast.NewLabel("main"),
		ast.NewResume(),
		ast.NewExit(),
		ast.NewReturn(ast.NewNumber(3)),
		ast.NewReturn(nil),
		ast.NewCall(ast.NewIdentifier("textbox"), ast.NewString("hi")),
		ast.NewIf(ast.NewBoolean(true), ast.NewNumber(1), ast.NewNumber(2)),
		ast.SequenceOf(ast.NewNumber(1), ast.NewNumber(2)),
		ast.NewFunction("f", []string{"a", "b"}, ast.SequenceOf(ast.NewReturn(ast.NewIdentifier("a")))),
		ast.NewAssignment("x", ast.NewNumber(1)),
		ast.NewFieldAssignment("p.name", ast.NewString("Apollo")),
		ast.NewEntityDefinition("Character",
			ast.FieldDecl{Name: "name"},
			ast.FieldDecl{Name: "blipsound", Default: ast.NewString("male")},
		),
		ast.NewCreateEntity(ast.NewIdentifier("Character"), ast.FieldInit{Name: "name", Value: ast.NewString("Apollo")}),
	)
	if !ast.Equal(p.Main, want) {
		t.Errorf("Expected %s, got %s", want, p.Main)
	}
}

func TestDecodeLines(t *testing.T) {
	src := `
statements:
  - {label: a}
  - {label: b, line: 10}
  - {label: c}
`
	p, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	var lines []int
	for _, st := range p.Main.Statements() {
		lines = append(lines, st.Line)
	}
	if len(lines) != 3 || lines[0] != 1 || lines[1] != 10 || lines[2] != 3 {
		t.Errorf("Expected lines [1 10 3], got %v", lines)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no statements", "name: x", "no statements"},
		{"negative", "statements: [-1]", "never negative"},
		{"null", "statements: [null]", "null is not a value"},
		{"float", "statements: [1.5]", "unsupported scalar"},
		{"bare list", "statements: [[1]]", "bare lists"},
		{"two forms", "statements: [{ident: x, label: y}]", "exactly one node form"},
		{"no form", "statements: [{foo: 1}]", "exactly one node form"},
		{"stray key", "statements: [{goto: a, args: []}]", `unexpected key "args"`},
		{"missing then", "statements: [{if: true}]", `missing "then"`},
		{"set path", "statements: [{set: a.b, value: 1}]", "use setfield"},
		{"setfield name", "statements: [{setfield: a, value: 1}]", "not a field path"},
		{"duplicate param", "statements: [{def: f, params: [a, a], body: []}]", "duplicate parameter"},
		{"duplicate field", "statements: [{entity: E, fields: [a, a]}]", "duplicate field"},
		{"duplicate line", "statements: [{label: a, line: 2}, {label: b}]", "duplicate statement line 2"},
		{"bad line", "statements: [{label: a, line: zero}]", "positive integer"},
		{"not yaml", "statements: [", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunObjection(t *testing.T) {
	src := `
name: objection
statements:
  - {goto: main}
  - {label: pre}
  - {call: textbox, args: [A]}
  - {resume: true}
  - {label: main}
  - {call: textbox, args: [B]}
  - {goto: pre}
  - {call: textbox, args: [C]}
`
	_, out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.Join(out, " ") != "B A C" {
		t.Errorf("Expected [B A C], got %v", out)
	}
}

func TestRunFunctionAndEntity(t *testing.T) {
	src := `
statements:
  - {entity: Character, fields: [name, {name: blipsound, default: male}]}
  - {def: greet, params: [c], body: [{call: textbox, args: [{call: concat, args: [{ident: c.name}, " says hi"]}]}]}
  - {set: apollo, value: {new: Character, fields: {name: Apollo}}}
  - {call: greet, args: [{ident: apollo}]}
  - {ident: apollo.blipsound}
`
	res, out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(out) != 1 || out[0] != "Apollo says hi" {
		t.Errorf("Expected [Apollo says hi], got %v", out)
	}
	if !res.Value.Equal(types.NewStr("male")) {
		t.Errorf("Expected male, got %s", res.Value)
	}
}

func TestBindLabelsInFunctionBodies(t *testing.T) {
	src := `
statements:
  - {def: f, params: [], body: [{label: inner}, {return: 1}]}
  - {label: outer}
`
	p, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := strings.Join(p.Labels(), ","); got != "inner,outer" {
		t.Errorf("Expected labels inner,outer, got %s", got)
	}

	env := eval.NewEnvironment(nil)
	if err := p.Bind(env); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	for _, name := range []string{"f", "inner", "outer"} {
		if !env.IsBound(name) {
			t.Errorf("Expected %s to be bound", name)
		}
	}
}

func TestBindConflict(t *testing.T) {
	src := `
statements:
  - {label: textbox}
`
	p, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	env := eval.NewEnvironment(nil)
	if err := builtins.NewRegistry(&builtins.Recorder{}).Install(env); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	err = p.Bind(env)
	if !errors.Is(err, types.Code(types.E_CONFLICT)) {
		t.Errorf("Expected E_CONFLICT, got %v", err)
	}
}

func TestBindLabelsInNestedIf(t *testing.T) {
	src := `
statements:
  - if: false
    then:
      if: true
      then: {seq: [{label: deep}, {call: textbox, args: [deep]}, {resume: true}]}
  - {goto: deep}
  - {call: textbox, args: [after]}
`
	p, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := strings.Join(p.Labels(), ","); got != "deep" {
		t.Errorf("Expected labels deep, got %s", got)
	}

	_, out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.Join(out, " ") != "deep after" {
		t.Errorf("Expected [deep after], got %v", out)
	}
}
