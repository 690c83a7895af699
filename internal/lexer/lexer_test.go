package lexer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kievzenit/l25/internal/compiler_errors"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := NewLexer([]byte(src)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return tokens
}

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, 0, len(tokens))
	for _, token := range tokens {
		kinds = append(kinds, token.Kind)
	}
	return kinds
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{
			name:     "Empty",
			input:    "",
			expected: []TokenKind{EOF},
		},
		{
			name:  "Operators",
			input: "+ - * / = == != < <= > >= .",
			expected: []TokenKind{
				PLUS, MINUS, ASTERISK, SLASH, ASSIGN, EQ, NEQ, LT, LEQ, GT, GEQ, DOT, EOF,
			},
		},
		{
			name:  "Punctuation",
			input: "(){}[],;",
			expected: []TokenKind{
				LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, SEMICOLON, EOF,
			},
		},
		{
			name:  "Keywords",
			input: "program func main let if else while return input output try catch struct",
			expected: []TokenKind{
				PROGRAM, FUNC, MAIN, LET, IF, ELSE, WHILE, RETURN, INPUT, OUTPUT, TRY, CATCH, STRUCT, EOF,
			},
		},
		{
			name:     "Identifiers Versus Keywords",
			input:    "letter _main main2 If",
			expected: []TokenKind{IDENT, IDENT, IDENT, IDENT, EOF},
		},
		{
			name:     "Adjacent Tokens",
			input:    "x=a[1].y;",
			expected: []TokenKind{IDENT, ASSIGN, IDENT, LBRACKET, NUMBER, RBRACKET, DOT, IDENT, SEMICOLON, EOF},
		},
		{
			name:     "Number Then Identifier",
			input:    "12ab",
			expected: []TokenKind{NUMBER, IDENT, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kindsOf(tokenize(t, tt.input))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("want kinds %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTokenValues(t *testing.T) {
	tokens := tokenize(t, `let name = "a b;c" + 0042;`)

	want := []struct {
		kind  TokenKind
		value string
	}{
		{LET, "let"},
		{IDENT, "name"},
		{ASSIGN, "="},
		{STRING, "a b;c"},
		{PLUS, "+"},
		{NUMBER, "0042"},
		{SEMICOLON, ";"},
	}

	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Value != w.value {
			t.Fatalf("token %d: want %s(%s), got %s", i, w.kind, w.value, tokens[i].String())
		}
	}
}

func TestTokenPositions(t *testing.T) {
	src := "program p {\n  main { output(\"x\"); }\n}"
	tokens := tokenize(t, src)

	tests := []struct {
		index  int
		kind   TokenKind
		line   int
		column int
		length int
	}{
		{0, PROGRAM, 1, 1, 7},
		{1, IDENT, 1, 9, 1},
		{2, LBRACE, 1, 11, 1},
		{3, MAIN, 2, 3, 4},
		{6, LPAREN, 2, 16, 1},
		{7, STRING, 2, 17, 3},
		{11, RBRACE, 3, 1, 1},
		{12, EOF, 3, 2, 0},
	}

	for _, tt := range tests {
		token := tokens[tt.index]
		if token.Kind != tt.kind {
			t.Fatalf("token %d: want kind %s, got %s", tt.index, tt.kind, token.Kind)
		}
		if token.Metadata.Line != tt.line || token.Metadata.Column != tt.column {
			t.Fatalf("token %d: want %d:%d, got %d:%d",
				tt.index, tt.line, tt.column, token.Metadata.Line, token.Metadata.Column)
		}
		if token.Metadata.Length != tt.length {
			t.Fatalf("token %d: want length %d, got %d", tt.index, tt.length, token.Metadata.Length)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		message    string
		line       int
		column     int
		incomplete bool
	}{
		{
			name:    "Unknown Character",
			input:   "let x = 1 @ 2;",
			message: "unexpected character '@'",
			line:    1,
			column:  11,
		},
		{
			name:    "Lone Exclamation Mark",
			input:   "a ! b",
			message: "unexpected character '!'",
			line:    1,
			column:  3,
		},
		{
			name:       "Unterminated String",
			input:      "output(\n\"abc);",
			message:    "unterminated string literal",
			line:       2,
			column:     1,
			incomplete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer([]byte(tt.input)).Tokenize()
			if err == nil {
				t.Fatalf("expected an error")
			}

			var se *compiler_errors.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("want *SyntaxError, got %T", err)
			}
			if se.Message != tt.message {
				t.Fatalf("want message %q, got %q", tt.message, se.Message)
			}
			if se.GetLine() != tt.line || se.GetColumn() != tt.column {
				t.Fatalf("want position %d:%d, got %d:%d", tt.line, tt.column, se.GetLine(), se.GetColumn())
			}
			if compiler_errors.IsIncomplete(err) != tt.incomplete {
				t.Fatalf("want incomplete=%v", tt.incomplete)
			}
		})
	}
}

func TestTokenScannerStaysOnEOF(t *testing.T) {
	scanner := NewTokenScanner([]Token{{Kind: IDENT, Value: "x"}})

	if !scanner.HasTokens() {
		t.Fatalf("expected tokens before reading")
	}
	if got := scanner.Read(); got.Kind != IDENT {
		t.Fatalf("want IDENT, got %s", got.Kind)
	}
	for i := 0; i < 3; i++ {
		if got := scanner.Read(); got.Kind != EOF {
			t.Fatalf("want EOF, got %s", got.Kind)
		}
	}
	if scanner.HasTokens() {
		t.Fatalf("expected no tokens after EOF")
	}
}
