package builtins

import (
	"unicode/utf8"

	"wright/bridge"
	"wright/types"
)

// builtinLength: length(x) -> number of list elements or string characters
func builtinLength(args []any) (any, error) {
	switch v := args[0].(type) {
	case types.ListValue:
		return v.Len(), nil
	case types.StrValue:
		return utf8.RuneCountInString(v.Value()), nil
	default:
		return nil, types.NewError(types.E_TYPE, "%s has no length", v.(types.Value).Kind())
	}
}

// builtinAppend: append(list, x) -> new list with x at the end
func builtinAppend(args []any) (any, error) {
	return args[0].(*bridge.ListView).Concat([]any{args[1]})
}

// builtinNth: nth(list, i) -> element i, counting from 0
func builtinNth(args []any) (any, error) {
	return args[0].(*bridge.ListView).Get(args[1].(int))
}

// builtinTemplate: template(entity) -> name of the entity's template
func builtinTemplate(args []any) (any, error) {
	e, ok := args[0].(*types.EntityValue)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "%s is not an entity", args[0].(types.Value).Kind())
	}
	return e.Template(), nil
}
