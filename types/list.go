package types

import "strings"

// ListValue represents an immutable Wright list. The backing slice is owned
// exclusively by the value; no two ListValues share storage.
type ListValue struct {
	elements []Value
}

// NewList creates a new list value holding a copy of elements
func NewList(elements []Value) ListValue {
	owned := make([]Value, len(elements))
	copy(owned, elements)
	return ListValue{elements: owned}
}

// NewEmptyList creates an empty list
func NewEmptyList() ListValue {
	return ListValue{elements: []Value{}}
}

// String returns the list representation
func (l ListValue) String() string {
	if len(l.elements) == 0 {
		return "[]"
	}

	parts := make([]string, len(l.elements))
	for i, elem := range l.elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Kind returns the kind for lists
func (l ListValue) Kind() Kind {
	return KIND_LIST
}

// Equal compares two values for equality (deep comparison)
func (l ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(l.elements) != len(o.elements) {
		return false
	}
	for i := range l.elements {
		if !Equal(l.elements[i], o.elements[i]) {
			return false
		}
	}
	return true
}

// Len returns the length of the list
func (l ListValue) Len() int {
	return len(l.elements)
}

// Get returns the element at index (0-based), or nil when out of range
func (l ListValue) Get(index int) Value {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Elements returns a copy of the elements for iteration
func (l ListValue) Elements() []Value {
	out := make([]Value, len(l.elements))
	copy(out, l.elements)
	return out
}

// Set returns a new list with the element at index replaced (COW).
// Out of range indices return the list unchanged.
func (l ListValue) Set(index int, v Value) ListValue {
	if index < 0 || index >= len(l.elements) {
		return l
	}
	newElems := make([]Value, len(l.elements))
	copy(newElems, l.elements)
	newElems[index] = v
	return ListValue{elements: newElems}
}

// Append returns a new list with the value appended (COW)
func (l ListValue) Append(v Value) ListValue {
	newElems := make([]Value, len(l.elements)+1)
	copy(newElems, l.elements)
	newElems[len(l.elements)] = v
	return ListValue{elements: newElems}
}

// Concat returns a new list holding l's elements followed by other's
func (l ListValue) Concat(other ListValue) ListValue {
	newElems := make([]Value, 0, len(l.elements)+len(other.elements))
	newElems = append(newElems, l.elements...)
	newElems = append(newElems, other.elements...)
	return ListValue{elements: newElems}
}
