package bridge

import (
	"iter"

	"wright/eval"
	"wright/types"
)

// ListView is the host side of a List. Elements convert by category when
// read or written. Lists are values: Set, Concat and Prepend never change
// the List the view was unpacked from.
type ListView struct {
	list types.ListValue
	ctx  *eval.CallContext
}

// NewListView wraps a list for host code
func NewListView(ctx *eval.CallContext, l types.ListValue) *ListView {
	return &ListView{list: l, ctx: ctx}
}

// Value returns the list the view currently shows
func (l *ListView) Value() types.ListValue {
	return l.list
}

// Len returns the number of elements
func (l *ListView) Len() int {
	return l.list.Len()
}

// Get unpacks the element at 0-based index i
func (l *ListView) Get(i int) (any, error) {
	if i < 0 || i >= l.list.Len() {
		return nil, types.NewError(types.E_RANGE, "index %d out of range for list of %d", i, l.list.Len())
	}
	return unpackAny(l.ctx, l.list.Get(i))
}

// Set packs x into position i of this view
func (l *ListView) Set(i int, x any) error {
	if i < 0 || i >= l.list.Len() {
		return types.NewError(types.E_RANGE, "index %d out of range for list of %d", i, l.list.Len())
	}
	v, err := packAny(l.ctx, x)
	if err != nil {
		return err
	}
	l.list = l.list.Set(i, v)
	return nil
}

// All iterates over the unpacked elements
func (l *ListView) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, v := range l.list.Elements() {
			x, err := unpackAny(l.ctx, v)
			if !yield(x, err) || err != nil {
				return
			}
		}
	}
}

// Values unpacks every element
func (l *ListView) Values() ([]any, error) {
	out := make([]any, 0, l.list.Len())
	for x, err := range l.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// Concat returns a view of this list followed by other, which is either a
// *ListView or a []any of host values
func (l *ListView) Concat(other any) (*ListView, error) {
	switch o := other.(type) {
	case *ListView:
		return NewListView(l.ctx, l.list.Concat(o.list)), nil
	case []any:
		tail, err := packList(l.ctx, o)
		if err != nil {
			return nil, err
		}
		return NewListView(l.ctx, l.list.Concat(tail)), nil
	default:
		return nil, types.NewError(types.E_TYPE, "can only append []any or lists to lists, got %T", other)
	}
}

// Prepend returns a view of items followed by this list
func (l *ListView) Prepend(items []any) (*ListView, error) {
	head, err := packList(l.ctx, items)
	if err != nil {
		return nil, err
	}
	return NewListView(l.ctx, head.Concat(l.list)), nil
}

func packList(ctx *eval.CallContext, items []any) (types.ListValue, error) {
	values := make([]types.Value, len(items))
	for i, x := range items {
		v, err := packAny(ctx, x)
		if err != nil {
			return types.ListValue{}, err
		}
		values[i] = v
	}
	return types.NewList(values), nil
}

type listPacker struct{}

// List handles List values as *ListView. It packs a *ListView or a []any.
func List() Packer { return listPacker{} }

func (listPacker) Unpack(ctx *eval.CallContext, v types.Value) (any, error) {
	l, ok := v.(types.ListValue)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "expected List as argument, got %s", v.Kind())
	}
	return NewListView(ctx, l), nil
}

func (listPacker) Pack(ctx *eval.CallContext, x any) (types.Value, error) {
	switch l := x.(type) {
	case *ListView:
		return l.list, nil
	case []any:
		return packList(ctx, l)
	default:
		return nil, types.NewError(types.E_TYPE, "expected a list as native result, got %T", x)
	}
}
