package types

// Kind identifies the runtime value category
type Kind int

const (
	KIND_NIL Kind = iota
	KIND_BOOL
	KIND_NUM
	KIND_STR
	KIND_LIST
	KIND_ENTITY
	KIND_JUMP
	KIND_FUNCTION
	KIND_NATIVE
	KIND_TEMPLATE
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KIND_NIL:
		return "Nil"
	case KIND_BOOL:
		return "Boolean"
	case KIND_NUM:
		return "Number"
	case KIND_STR:
		return "String"
	case KIND_LIST:
		return "List"
	case KIND_ENTITY:
		return "Entity"
	case KIND_JUMP:
		return "JumpPosition"
	case KIND_FUNCTION:
		return "Function"
	case KIND_NATIVE:
		return "NativeFunction"
	case KIND_TEMPLATE:
		return "EntityTemplate"
	default:
		return "Unknown"
	}
}

// IsLiteral reports whether values of this kind are plain literals
// (Boolean, Number, String)
func (k Kind) IsLiteral() bool {
	return k == KIND_BOOL || k == KIND_NUM || k == KIND_STR
}

// IsCallable reports whether values of this kind can be invoked by a Call
func (k Kind) IsCallable() bool {
	return k == KIND_FUNCTION || k == KIND_NATIVE
}

// IsProtected reports whether a binding of this kind is immutable once made.
// Functions, labels and entity templates can never be rebound.
func (k Kind) IsProtected() bool {
	return k == KIND_FUNCTION || k == KIND_NATIVE || k == KIND_JUMP || k == KIND_TEMPLATE
}
