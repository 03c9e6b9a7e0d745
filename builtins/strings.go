package builtins

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"wright/types"
)

// builtinConcat: concat(a, b) -> string
// Accepts any literals and joins their text.
func builtinConcat(args []any) (any, error) {
	return fmt.Sprint(args[0]) + fmt.Sprint(args[1]), nil
}

// builtinCapitalize: capitalize(s) -> s with its first letter upper-cased
// and the rest lower-cased
func builtinCapitalize(args []any) (any, error) {
	s := args[0].(string)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s, nil
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:]), nil
}

// builtinStr: str(x) -> printable form; strings print without quotes
func builtinStr(args []any) (any, error) {
	v := args[0].(types.Value)
	if s, ok := v.(types.StrValue); ok {
		return s.Value(), nil
	}
	return v.String(), nil
}
