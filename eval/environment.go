package eval

import (
	"sort"
	"strings"

	"wright/ast"
	"wright/types"
)

// Environment manages bindings with parent-chained scoping. A child never
// owns its parent: function calls create short-lived children of the
// call-site environment, and the parent outlives all of them.
//
// Variables, functions, labels and entity templates share one namespace per
// scope. Once a name is bound to a function, label or template it can't be
// rebound.
type Environment struct {
	vars   map[string]types.Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under parent
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]types.Value),
		parent: parent,
	}
}

// Parent exposes the enclosing scope (nil when global)
func (e *Environment) Parent() *Environment {
	return e.parent
}

// lookup finds the binding for name and the scope that holds it
func (e *Environment) lookup(name string) (types.Value, *Environment, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.vars[name]; ok {
			return val, env, true
		}
	}
	return nil, nil, false
}

// Get resolves name through the scope chain. Dotted names (a.b.c) resolve
// a, then look up each following segment as a field of the entity found
// so far.
func (e *Environment) Get(name string) (types.Value, error) {
	head, rest, dotted := strings.Cut(name, ".")
	val, _, ok := e.lookup(head)
	if !ok {
		return nil, types.UnboundName(head)
	}
	if !dotted {
		return val, nil
	}
	return getField(val, strings.Split(rest, "."))
}

// getField follows a field path starting at v
func getField(v types.Value, path []string) (types.Value, error) {
	for _, field := range path {
		entity, ok := v.(*types.EntityValue)
		if !ok {
			return nil, types.InvalidFieldAccess(v, field)
		}
		next, err := entity.Get(field)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

// IsBound reports whether name is bound here or in any parent
func (e *Environment) IsBound(name string) bool {
	_, _, ok := e.lookup(name)
	return ok
}

// Set binds name to value. Names bound to a function, label or entity
// template can't be changed, whatever local says.
//
// If local is true the binding is made in this scope, shadowing any outer
// binding; this is what parameter binding uses. Otherwise an existing
// binding in an enclosing scope is updated in place, and only an unbound
// name is created here.
func (e *Environment) Set(name string, value types.Value, local bool) error {
	existing, owner, ok := e.lookup(name)
	if ok && existing.Kind().IsProtected() {
		return types.AlreadyDefined(name, existing.Kind())
	}

	if ok && !local {
		owner.vars[name] = value
		return nil
	}
	e.vars[name] = value
	return nil
}

// SetField assigns the last segment of a dotted path on the entity the
// rest of the path resolves to
func (e *Environment) SetField(path string, value types.Value) error {
	cut := strings.LastIndex(path, ".")
	if cut < 0 {
		return types.NewError(types.E_INVFIELD, "'%s' is not a field path", path)
	}
	target, err := e.Get(path[:cut])
	if err != nil {
		return err
	}
	field := path[cut+1:]
	entity, ok := target.(*types.EntityValue)
	if !ok {
		return types.InvalidFieldAccess(target, field)
	}
	return entity.Set(field, value)
}

// define is the one-shot declaration shared by AddFunction,
// AddEntityTemplate and AddLabel: the name must be unbound everywhere.
func (e *Environment) define(name string, value types.Value) error {
	if existing, _, ok := e.lookup(name); ok {
		return types.DefinitionConflict(name, existing.Kind())
	}
	e.vars[name] = value
	return nil
}

// AddFunction declares a callable under name
func (e *Environment) AddFunction(name string, fn Callable) error {
	return e.define(name, fn)
}

// AddEntityTemplate declares an entity template under its own name
func (e *Environment) AddEntityTemplate(def *ast.EntityDefinition) error {
	return e.define(def.Name, TemplateValue{Def: def})
}

// AddLabel binds a label name to its line in the owning sequence
func (e *Environment) AddLabel(name string, line int, seq *ast.Sequence) error {
	return e.define(name, JumpValue{Line: line, Seq: seq})
}

// Keys returns the names bound in this scope in sorted order
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty reports whether neither this scope nor a parent exists to hold
// bindings
func (e *Environment) IsEmpty() bool {
	return len(e.vars) == 0 && e.parent == nil
}
