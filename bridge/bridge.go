// Package bridge registers Go functions as natives callable from scripts.
//
// A native declares one Packer per parameter and one for its result.
// Packers convert between script values and host values: int, bool and
// string for the literals, *ListView, *EntityView and Thunk for the rest.
// Where no packer is declared (list elements, entity fields, thunk
// arguments) values are converted by category.
package bridge

import (
	"wright/eval"
	"wright/types"
)

// Packer converts one kind of script value to and from a host value
type Packer interface {
	Pack(ctx *eval.CallContext, x any) (types.Value, error)
	Unpack(ctx *eval.CallContext, v types.Value) (any, error)
}

// Category is the closed set of things that cross the bridge
type Category int

const (
	CatNone Category = iota
	CatNumber
	CatBoolean
	CatString
	CatList
	CatEntity
	CatFunction
)

func (c Category) String() string {
	switch c {
	case CatNone:
		return "None"
	case CatNumber:
		return "Number"
	case CatBoolean:
		return "Boolean"
	case CatString:
		return "String"
	case CatList:
		return "List"
	case CatEntity:
		return "Entity"
	case CatFunction:
		return "Function"
	default:
		return "unknown"
	}
}

// categoryOfValue classifies a script value
func categoryOfValue(v types.Value) (Category, bool) {
	if v == nil {
		return CatNone, true
	}
	switch v.Kind() {
	case types.KIND_NIL:
		return CatNone, true
	case types.KIND_NUM:
		return CatNumber, true
	case types.KIND_BOOL:
		return CatBoolean, true
	case types.KIND_STR:
		return CatString, true
	case types.KIND_LIST:
		return CatList, true
	case types.KIND_ENTITY:
		return CatEntity, true
	case types.KIND_FUNCTION, types.KIND_NATIVE:
		return CatFunction, true
	default:
		return 0, false
	}
}

// categoryOfHost classifies a host value
func categoryOfHost(x any) (Category, bool) {
	switch x.(type) {
	case nil:
		return CatNone, true
	case int, int64, uint64:
		return CatNumber, true
	case bool:
		return CatBoolean, true
	case string:
		return CatString, true
	case *ListView, []any:
		return CatList, true
	case *EntityView:
		return CatEntity, true
	case Thunk:
		return CatFunction, true
	default:
		return 0, false
	}
}

// packer returns the packer that handles a whole category
func (c Category) packer() Packer {
	switch c {
	case CatNumber:
		return Number(false)
	case CatBoolean:
		return Boolean(true)
	case CatString:
		return String(true)
	case CatList:
		return List()
	case CatEntity:
		return anyEntity
	case CatFunction:
		return Function()
	default:
		return nilPacker{}
	}
}

// unpackAny converts a script value by category
func unpackAny(ctx *eval.CallContext, v types.Value) (any, error) {
	cat, ok := categoryOfValue(v)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "%s can't be passed to a native", v.Kind())
	}
	return cat.packer().Unpack(ctx, v)
}

// packAny converts a host value by category
func packAny(ctx *eval.CallContext, x any) (types.Value, error) {
	cat, ok := categoryOfHost(x)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "invalid implicit conversion of %T", x)
	}
	return cat.packer().Pack(ctx, x)
}

// nilPacker carries Nil across as the host nil
type nilPacker struct{}

func (nilPacker) Pack(_ *eval.CallContext, x any) (types.Value, error) {
	if x != nil {
		return nil, types.NewError(types.E_TYPE, "expected nil, got %T", x)
	}
	return types.Nil, nil
}

func (nilPacker) Unpack(_ *eval.CallContext, v types.Value) (any, error) {
	if v != nil && v.Kind() != types.KIND_NIL {
		return nil, types.NewError(types.E_TYPE, "expected nil, got %s", v.Kind())
	}
	return nil, nil
}

// nonePacker is the result packer of natives with nothing to return
type nonePacker struct{}

// None packs every host result as Nil. It is only meaningful as a result
// packer.
func None() Packer { return nonePacker{} }

func (nonePacker) Pack(*eval.CallContext, any) (types.Value, error) {
	return types.Nil, nil
}

func (nonePacker) Unpack(*eval.CallContext, types.Value) (any, error) {
	return nil, types.NewError(types.E_TYPE, "None only packs results")
}
