package program

import (
	"wright/ast"
	"wright/eval"
)

// Bind prepares env for running the program: every label in every
// sequence (function bodies included) is bound to its line and owning
// sequence, then top-level functions and entity templates are defined.
func (p *Program) Bind(env *eval.Environment) error {
	if err := bindLabels(env, p.Main); err != nil {
		return err
	}
	for _, st := range p.Main.Statements() {
		switch n := st.Node.(type) {
		case *ast.Function:
			if err := env.AddFunction(n.Name, eval.FunctionValue{Def: n}); err != nil {
				return err
			}
		case *ast.EntityDefinition:
			if err := env.AddEntityTemplate(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func bindLabels(env *eval.Environment, seq *ast.Sequence) error {
	return walkLabels(seq, func(label *ast.Label, line int, owner *ast.Sequence) error {
		return env.AddLabel(label.Name, line, owner)
	})
}

// walkLabels calls fn for every label reachable from seq, in source order,
// with the line and sequence that own it. Branches of an If belong to the
// statement holding the If; only a nested Sequence or function body
// becomes a new owner.
func walkLabels(seq *ast.Sequence, fn func(label *ast.Label, line int, owner *ast.Sequence) error) error {
	for _, st := range seq.Statements() {
		if err := walkNode(seq, st.Node, st.Line, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(seq *ast.Sequence, node ast.Node, line int, fn func(*ast.Label, int, *ast.Sequence) error) error {
	switch n := node.(type) {
	case *ast.Label:
		return fn(n, line, seq)
	case *ast.Function:
		return walkLabels(n.Body, fn)
	case *ast.Sequence:
		return walkLabels(n, fn)
	case *ast.If:
		if err := walkNode(seq, n.Then, line, fn); err != nil {
			return err
		}
		return walkNode(seq, n.Else, line, fn)
	}
	return nil
}

// Labels returns the names of all labels in the program in source order
func (p *Program) Labels() []string {
	var names []string
	walkLabels(p.Main, func(label *ast.Label, _ int, _ *ast.Sequence) error {
		names = append(names, label.Name)
		return nil
	})
	return names
}
