package types

import (
	"fmt"
	"strings"
)

// EntityValue is a mutable instance of an entity template. It keeps only
// the template's name; fields are fixed at creation.
type EntityValue struct {
	template string
	order    []string
	fields   map[string]Value
}

// NewEntity creates an entity of the given template. names fixes the
// declared field order; every name must be present in fields.
func NewEntity(template string, names []string, fields map[string]Value) *EntityValue {
	order := make([]string, len(names))
	copy(order, names)
	owned := make(map[string]Value, len(fields))
	for _, name := range order {
		v, ok := fields[name]
		if !ok {
			v = Nil
		}
		owned[name] = v
	}
	return &EntityValue{template: template, order: order, fields: owned}
}

// Kind returns the kind for entities
func (e *EntityValue) Kind() Kind {
	return KIND_ENTITY
}

// Template returns the name of the template the entity was created from
func (e *EntityValue) Template() string {
	return e.template
}

// Fields returns the declared field names in declaration order
func (e *EntityValue) Fields() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Has reports whether field is declared on the entity
func (e *EntityValue) Has(field string) bool {
	_, ok := e.fields[field]
	return ok
}

// Get returns the value of a declared field
func (e *EntityValue) Get(field string) (Value, error) {
	v, ok := e.fields[field]
	if !ok {
		return nil, UnknownField(e.template, field)
	}
	return v, nil
}

// Set mutates a declared field in place
func (e *EntityValue) Set(field string, v Value) error {
	if _, ok := e.fields[field]; !ok {
		return UnknownField(e.template, field)
	}
	e.fields[field] = v
	return nil
}

// String returns the entity representation
func (e *EntityValue) String() string {
	parts := make([]string, len(e.order))
	for i, name := range e.order {
		parts[i] = fmt.Sprintf("%s: %s", name, e.fields[name].String())
	}
	return e.template + "{" + strings.Join(parts, ", ") + "}"
}

// Equal compares template name and field contents
func (e *EntityValue) Equal(other Value) bool {
	o, ok := other.(*EntityValue)
	if !ok {
		return false
	}
	if e == o {
		return true
	}
	if e.template != o.template || len(e.fields) != len(o.fields) {
		return false
	}
	for name, v := range e.fields {
		ov, ok := o.fields[name]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}
