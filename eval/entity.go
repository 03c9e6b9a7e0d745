package eval

import (
	"wright/ast"
	"wright/types"
)

// evalCreateEntity instantiates a template. Every check runs before any
// field value is evaluated, so a failed instantiation has no effects.
func (e *Evaluator) evalCreateEntity(n *ast.CreateEntity, env *Environment) types.Result {
	tr := e.Eval(n.Template, env)
	if !tr.IsNormal() {
		return tr
	}
	tmpl, ok := tr.Val.(TemplateValue)
	if !ok {
		return types.Err(types.NotAnEntityDefinition(tr.Val))
	}
	def := tmpl.Def

	for _, f := range n.Fields {
		if !def.HasField(f.Name) {
			return types.Err(types.UnknownField(def.Name, f.Name))
		}
	}
	provided := n.FieldNames()
	if missing := def.MissingFields(provided); len(missing) > 0 {
		return types.Err(types.MissingFieldDeclaration(def.Name, missing))
	}

	values := make(map[string]types.Value, len(def.Fields))
	explicit := make(map[string]bool, len(provided))
	for _, name := range provided {
		explicit[name] = true
	}

	// Defaults in declaration order
	for _, f := range def.Fields {
		if explicit[f.Name] {
			continue
		}
		r := e.evalRightValue(f.Default, env)
		if !r.IsNormal() {
			return r
		}
		values[f.Name] = r.Val
	}

	// Explicit assignments; their order is not part of the language
	for _, f := range n.Fields {
		r := e.evalRightValue(f.Value, env)
		if !r.IsNormal() {
			return r
		}
		values[f.Name] = r.Val
	}

	return types.Ok(types.NewEntity(def.Name, def.FieldNames(), values))
}
