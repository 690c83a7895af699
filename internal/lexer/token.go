package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	NUMBER
	STRING

	IDENT

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /

	ASSIGN // =

	EQ  // ==
	NEQ // !=
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	LPAREN   // (
	LBRACKET // [
	LBRACE   // {

	RPAREN   // )
	RBRACKET // ]
	RBRACE   // }

	SEMICOLON // ;
	DOT       // .
	COMMA     // ,

	PROGRAM
	FUNC
	MAIN
	LET
	IF
	ELSE
	WHILE
	RETURN
	INPUT
	OUTPUT
	TRY
	CATCH
	STRUCT
)

var keywords = map[string]TokenKind{
	"program": PROGRAM,
	"func":    FUNC,
	"main":    MAIN,
	"let":     LET,
	"if":      IF,
	"else":    ELSE,
	"while":   WHILE,
	"return":  RETURN,
	"input":   INPUT,
	"output":  OUTPUT,
	"try":     TRY,
	"catch":   CATCH,
	"struct":  STRUCT,
}

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case ASSIGN:
		return "ASSIGN"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case LPAREN:
		return "LPAREN"
	case LBRACKET:
		return "LBRACKET"
	case LBRACE:
		return "LBRACE"
	case RPAREN:
		return "RPAREN"
	case RBRACKET:
		return "RBRACKET"
	case RBRACE:
		return "RBRACE"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case COMMA:
		return "COMMA"
	case PROGRAM:
		return "PROGRAM"
	case FUNC:
		return "FUNC"
	case MAIN:
		return "MAIN"
	case LET:
		return "LET"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case WHILE:
		return "WHILE"
	case RETURN:
		return "RETURN"
	case INPUT:
		return "INPUT"
	case OUTPUT:
		return "OUTPUT"
	case TRY:
		return "TRY"
	case CATCH:
		return "CATCH"
	case STRUCT:
		return "STRUCT"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

// IsComparison reports whether tk is one of the bool_expr operators.
func (tk TokenKind) IsComparison() bool {
	switch tk {
	case EQ, NEQ, LT, LEQ, GT, GEQ:
		return true
	}

	return false
}

type TokenMetadata struct {
	Line   int
	Column int
	Length int
}

type Token struct {
	Kind     TokenKind
	Value    string
	Metadata TokenMetadata
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case NUMBER, STRING, IDENT:
		return true
	}

	return false
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s() %d:%d", t.Kind, t.Metadata.Line, t.Metadata.Column)
	}

	return fmt.Sprintf("%s(%s) %d:%d", t.Kind, t.Value, t.Metadata.Line, t.Metadata.Column)
}
