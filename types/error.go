package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the kind of a runtime error
type ErrorCode int

const (
	E_NONE         ErrorCode = iota
	E_UNBOUND                // UnboundNameError
	E_INVFIELD               // InvalidFieldAccessError
	E_UNKNOWNFIELD           // UnknownFieldError
	E_DEFINED                // AlreadyDefinedError
	E_CONFLICT               // function/label/entity definition conflict
	E_ARGS                   // WrongArgumentNumberError
	E_NOTENTITYDEF           // NotAnEntityDefinitionError
	E_MISSINGFIELD           // MissingFieldDeclarationError
	E_FUNCRVAL               // FunctionAsRightValueError
	E_NOTFUNC                // NotAFunctionError
	E_TYPE
	E_RANGE
	E_INVNUM
	E_SIGNAL
	E_MAXREC
	E_NATIVE
)

// String returns the string name for an error code
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_UNBOUND:
		return "E_UNBOUND"
	case E_INVFIELD:
		return "E_INVFIELD"
	case E_UNKNOWNFIELD:
		return "E_UNKNOWNFIELD"
	case E_DEFINED:
		return "E_DEFINED"
	case E_CONFLICT:
		return "E_CONFLICT"
	case E_ARGS:
		return "E_ARGS"
	case E_NOTENTITYDEF:
		return "E_NOTENTITYDEF"
	case E_MISSINGFIELD:
		return "E_MISSINGFIELD"
	case E_FUNCRVAL:
		return "E_FUNCRVAL"
	case E_NOTFUNC:
		return "E_NOTFUNC"
	case E_TYPE:
		return "E_TYPE"
	case E_RANGE:
		return "E_RANGE"
	case E_INVNUM:
		return "E_INVNUM"
	case E_SIGNAL:
		return "E_SIGNAL"
	case E_MAXREC:
		return "E_MAXREC"
	case E_NATIVE:
		return "E_NATIVE"
	default:
		return "E_UNKNOWN"
	}
}

// Message returns a human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_UNBOUND:
		return "Name is not defined"
	case E_INVFIELD:
		return "Field access on a non-entity"
	case E_UNKNOWNFIELD:
		return "Unknown field"
	case E_DEFINED:
		return "Name is already defined"
	case E_CONFLICT:
		return "Conflicting definition"
	case E_ARGS:
		return "Incorrect number of arguments"
	case E_NOTENTITYDEF:
		return "Not an entity definition"
	case E_MISSINGFIELD:
		return "Missing field declaration"
	case E_FUNCRVAL:
		return "Function used as right value"
	case E_NOTFUNC:
		return "Not a function"
	case E_TYPE:
		return "Type mismatch"
	case E_RANGE:
		return "Statement out of bounds"
	case E_INVNUM:
		return "Invalid number"
	case E_SIGNAL:
		return "Uncaught control-flow signal"
	case E_MAXREC:
		return "Too many nested evaluations"
	case E_NATIVE:
		return "Native function failed"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a string like "E_UNBOUND" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for code := E_NONE; code <= E_NATIVE; code++ {
		if code.String() == s {
			return code, true
		}
	}
	return E_NONE, false
}

// Error is a runtime error raised during evaluation. Errors are fatal to the
// current run and are distinguished by Code.
type Error struct {
	Code    ErrorCode
	Msg     string
	Missing []string // set for E_MISSINGFIELD
}

// NewError creates a runtime error with a formatted detail message
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.Message()
	}
	return e.Code.Message() + ": " + e.Msg
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// Code returns a bare error with the given code, for use with errors.Is
func Code(code ErrorCode) *Error {
	return &Error{Code: code}
}

// CodeOf extracts the runtime error code from err, or E_NONE when err does
// not carry one
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return E_NONE
}

// Traceback attaches the source line a runtime error was raised on
type Traceback struct {
	Line int
	Err  error
}

func (t *Traceback) Error() string {
	return fmt.Sprintf("line %d: %v", t.Line, t.Err)
}

func (t *Traceback) Unwrap() error {
	return t.Err
}

// WithLine wraps err with line unless it already carries a traceback
func WithLine(err error, line int) error {
	var tb *Traceback
	if errors.As(err, &tb) {
		return err
	}
	return &Traceback{Line: line, Err: err}
}

// LineOf returns the line attached to err, if any
func LineOf(err error) (int, bool) {
	var tb *Traceback
	if errors.As(err, &tb) {
		return tb.Line, true
	}
	return 0, false
}

func UnboundName(name string) *Error {
	return NewError(E_UNBOUND, "'%s'", name)
}

func InvalidFieldAccess(v Value, field string) *Error {
	return NewError(E_INVFIELD, "%s has no field '%s'", v.Kind(), field)
}

func UnknownField(template, field string) *Error {
	return NewError(E_UNKNOWNFIELD, "%s has no field '%s'", template, field)
}

func AlreadyDefined(name string, kind Kind) *Error {
	return NewError(E_DEFINED, "can't change '%s', already defined as %s", name, kind)
}

func DefinitionConflict(name string, existing Kind) *Error {
	return NewError(E_CONFLICT, "'%s' is already bound to a %s", name, existing)
}

func WrongArgumentNumber(fn string, expected, got int) *Error {
	return NewError(E_ARGS, "%s expects %d argument(s), got %d", fn, expected, got)
}

func NotAnEntityDefinition(v Value) *Error {
	return NewError(E_NOTENTITYDEF, "%s", v.Kind())
}

func MissingFieldDeclaration(template string, missing []string) *Error {
	e := NewError(E_MISSINGFIELD, "%s requires %s", template, strings.Join(missing, ", "))
	e.Missing = append([]string(nil), missing...)
	return e
}

func FunctionAsRightValue(v Value) *Error {
	return NewError(E_FUNCRVAL, "%s can't be assigned", v.String())
}

func NotAFunction(v Value) *Error {
	return NewError(E_NOTFUNC, "%s is not callable", v.Kind())
}
