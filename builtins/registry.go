package builtins

import (
	"wright/bridge"
	"wright/eval"
)

// Registry holds the standard natives in registration order
type Registry struct {
	funcs map[string]*bridge.Native
	order []string
}

// NewRegistry creates a registry with every standard native. Dialogue
// output goes to sink.
func NewRegistry(sink Sink) *Registry {
	r := &Registry{
		funcs: make(map[string]*bridge.Native),
	}

	// Arithmetic and comparison
	r.Register(bridge.New("+", builtinAdd).Expects(bridge.Number(true), bridge.Number(true)).Returns(bridge.Number(true)))
	r.Register(bridge.New("-", builtinSub).Expects(bridge.Number(true), bridge.Number(true)).Returns(bridge.Number(true)))
	r.Register(bridge.New("*", builtinMul).Expects(bridge.Number(true), bridge.Number(true)).Returns(bridge.Number(true)))
	r.Register(bridge.New(">", builtinGreater).Expects(bridge.Number(true), bridge.Number(true)).Returns(bridge.Boolean(true)))
	r.Register(bridge.New("<", builtinLess).Expects(bridge.Number(true), bridge.Number(true)).Returns(bridge.Boolean(true)))
	r.Register(bridge.New("=", builtinEqual).Expects(bridge.Raw(), bridge.Raw()).Returns(bridge.Boolean(true)))
	r.Register(bridge.New("not", builtinNot).Expects(bridge.Raw()).Returns(bridge.Boolean(true)))

	// Strings
	r.Register(bridge.New("concat", builtinConcat).Expects(bridge.String(false), bridge.String(false)).Returns(bridge.String(true)))
	r.Register(bridge.New("capitalize", builtinCapitalize).Expects(bridge.String(true)).Returns(bridge.String(true)))
	r.Register(bridge.New("str", builtinStr).Expects(bridge.Raw()).Returns(bridge.String(true)))

	// Lists
	r.Register(bridge.New("length", builtinLength).Expects(bridge.Raw()).Returns(bridge.Number(true)))
	r.Register(bridge.New("append", builtinAppend).Expects(bridge.List(), bridge.Any()).Returns(bridge.List()))
	r.Register(bridge.New("nth", builtinNth).Expects(bridge.List(), bridge.Number(true)).Returns(bridge.Any()))

	// Entities
	r.Register(bridge.New("template", builtinTemplate).Expects(bridge.Raw()).Returns(bridge.String(true)))

	// Dialogue
	r.Register(bridge.New("textbox", textbox(sink)).Expects(bridge.String(false)).Returns(bridge.None()))

	return r
}

// Register adds or replaces a native
func (r *Registry) Register(fn *bridge.Native) {
	if _, ok := r.funcs[fn.Name()]; !ok {
		r.order = append(r.order, fn.Name())
	}
	r.funcs[fn.Name()] = fn
}

// Get retrieves a native by name
func (r *Registry) Get(name string) (*bridge.Native, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has checks if a native exists
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names lists the natives in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Install binds every native in env
func (r *Registry) Install(env *eval.Environment) error {
	natives := make([]*bridge.Native, len(r.order))
	for i, name := range r.order {
		natives[i] = r.funcs[name]
	}
	return bridge.Register(env, natives...)
}
