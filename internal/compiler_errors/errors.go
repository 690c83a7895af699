package compiler_errors

import (
	"errors"
	"fmt"
)

type Position struct {
	Line   int
	Column int
}

type SyntaxError struct {
	Message string
	Pos     *Position

	// Incomplete is set when the error was raised at end of input.
	Incomplete bool
}

func NewSyntaxError(message string, pos *Position) *SyntaxError {
	return &SyntaxError{
		Message: message,
		Pos:     pos,
	}
}

func (e *SyntaxError) GetMessage() string { return e.Message }
func (e *SyntaxError) HasPosition() bool  { return e.Pos != nil }

func (e *SyntaxError) GetLine() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Line
}

func (e *SyntaxError) GetColumn() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Column
}

func (e *SyntaxError) Error() string {
	return render("SyntaxError", e.Message, e.Pos)
}

type SemanticKind int

const (
	Internal SemanticKind = iota
	UndefinedName
	Arity
	TypeMismatch
	Index
	DivisionByZero
	InputExhausted
)

func (k SemanticKind) String() string {
	switch k {
	case Internal:
		return "Internal"
	case UndefinedName:
		return "UndefinedName"
	case Arity:
		return "Arity"
	case TypeMismatch:
		return "TypeMismatch"
	case Index:
		return "Index"
	case DivisionByZero:
		return "DivisionByZero"
	case InputExhausted:
		return "InputExhausted"
	default:
		return fmt.Sprintf("SemanticKind(%d)", int(k))
	}
}

type SemanticError struct {
	Kind    SemanticKind
	Message string
	Pos     *Position
}

func NewSemanticError(kind SemanticKind, message string, pos *Position) *SemanticError {
	return &SemanticError{
		Kind:    kind,
		Message: message,
		Pos:     pos,
	}
}

func (e *SemanticError) GetMessage() string { return e.Message }
func (e *SemanticError) HasPosition() bool  { return e.Pos != nil }

func (e *SemanticError) GetLine() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Line
}

func (e *SemanticError) GetColumn() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Column
}

func (e *SemanticError) Error() string {
	return render("SemanticError", e.Message, e.Pos)
}

// IsDivisionByZero reports whether err carries the catchable condition.
func IsDivisionByZero(err error) bool {
	var se *SemanticError
	return errors.As(err, &se) && se.Kind == DivisionByZero
}

// IsIncomplete reports whether err is a syntax error raised at end of input.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

func render(kind, message string, pos *Position) string {
	if pos == nil {
		return fmt.Sprintf("%s: %s", kind, message)
	}
	return fmt.Sprintf("[Line %d:%d] %s: %s", pos.Line, pos.Column, kind, message)
}
