package lexer

import (
	"fmt"
	"unicode"

	"github.com/kievzenit/l25/internal/compiler_errors"
)

func newUnexpectedError(unexpected rune, line, col int) *compiler_errors.SyntaxError {
	return compiler_errors.NewSyntaxError(
		fmt.Sprintf("unexpected character '%s'", string(unexpected)),
		&compiler_errors.Position{Line: line, Column: col},
	)
}

func newUnterminatedStringError(line, col int) *compiler_errors.SyntaxError {
	err := compiler_errors.NewSyntaxError(
		"unterminated string literal",
		&compiler_errors.Position{Line: line, Column: col},
	)
	err.Incomplete = true
	return err
}

type Lexer struct {
	buf []rune
	pos int

	line, col int

	eh compiler_errors.ErrorHandler
}

func NewLexer(buf []byte) *Lexer {
	return &Lexer{
		buf: []rune(string(buf)),
		pos: 0,

		line: 1,
		col:  1,

		eh: compiler_errors.NewErrorHandler(),
	}
}

// Tokenize scans the whole input. The result always ends with an EOF token.
func (l *Lexer) Tokenize() (tokens []Token, err error) {
	defer compiler_errors.Recover(&err)

	tokens = make([]Token, 0)

	for l.hasChars() {
		switch {
		case l.isCurrSkippable():
			l.advance()

		case l.isCurrDigit():
			tokens = append(tokens, l.processNumber())

		case l.isCurrIdentifierStart():
			tokens = append(tokens, l.processIdentifier())

		case l.read() == '"':
			tokens = append(tokens, l.processStringLiteral())

		case l.isCurrPunctuation():
			tokens = append(tokens, l.processPunctuation())

		default:
			l.eh.AddError(newUnexpectedError(l.read(), l.line, l.col))
			l.eh.FailNow()
		}
	}

	tokens = append(tokens, Token{
		Kind:  EOF,
		Value: EOF.String(),
		Metadata: TokenMetadata{
			Line:   l.line,
			Column: l.col,
		},
	})

	return tokens, nil
}

func (l *Lexer) isCurrIdentifierStart() bool {
	return unicode.IsLetter(l.read()) || l.read() == '_'
}

func (l *Lexer) isCurrIdentifier() bool {
	return l.isCurrIdentifierStart() || unicode.IsDigit(l.read())
}

func (l *Lexer) isCurrDigit() bool {
	return l.read() >= '0' && l.read() <= '9'
}

func (l *Lexer) isCurrPunctuation() bool {
	switch l.read() {
	case '+', '-', '*', '/', '=', '!', '<', '>', '(', ')', '[', ']', '{', '}', ';', '.', ',':
		return true
	}
	return false
}

func (l *Lexer) isCurrSkippable() bool {
	return unicode.IsSpace(l.read())
}

func (l *Lexer) processIdentifier() Token {
	start := l.mark()

	identifierBuf := make([]rune, 0)
	for l.hasChars() && l.isCurrIdentifier() {
		identifierBuf = append(identifierBuf, l.read())
		l.advance()
	}
	identifier := string(identifierBuf)

	if kind, ok := keywords[identifier]; ok {
		return l.token(kind, identifier, start)
	}

	return l.token(IDENT, identifier, start)
}

func (l *Lexer) processNumber() Token {
	start := l.mark()

	numberBuf := make([]rune, 0)
	for l.hasChars() && l.isCurrDigit() {
		numberBuf = append(numberBuf, l.read())
		l.advance()
	}

	return l.token(NUMBER, string(numberBuf), start)
}

func (l *Lexer) processStringLiteral() Token {
	start := l.mark()
	l.advance()

	stringBuf := make([]rune, 0)
	var foundClosingQuote bool
	for l.hasChars() {
		if l.read() == '"' {
			foundClosingQuote = true
			l.advance()
			break
		}

		stringBuf = append(stringBuf, l.read())
		l.advance()
	}

	if !foundClosingQuote {
		l.eh.AddError(newUnterminatedStringError(start.line, start.col))
		l.eh.FailNow()
	}

	return l.token(STRING, string(stringBuf), start)
}

// processTwoChar emits double when the current character is followed by '=',
// and single otherwise.
func (l *Lexer) processTwoChar(single, double TokenKind) Token {
	start := l.mark()
	first := l.read()
	l.advance()

	if l.hasChars() && l.read() == '=' {
		l.advance()
		return l.token(double, string(first)+"=", start)
	}

	return l.token(single, string(first), start)
}

func (l *Lexer) processExclamationMark() Token {
	start := l.mark()
	if l.peek() != '=' {
		l.eh.AddError(newUnexpectedError('!', start.line, start.col))
		l.eh.FailNow()
	}

	l.advance()
	l.advance()
	return l.token(NEQ, "!=", start)
}

func (l *Lexer) processSingle(kind TokenKind) Token {
	start := l.mark()
	value := string(l.read())
	l.advance()

	return l.token(kind, value, start)
}

func (l *Lexer) processPunctuation() Token {
	switch l.read() {
	case '+':
		return l.processSingle(PLUS)
	case '-':
		return l.processSingle(MINUS)
	case '*':
		return l.processSingle(ASTERISK)
	case '/':
		return l.processSingle(SLASH)
	case '=':
		return l.processTwoChar(ASSIGN, EQ)
	case '<':
		return l.processTwoChar(LT, LEQ)
	case '>':
		return l.processTwoChar(GT, GEQ)
	case '!':
		return l.processExclamationMark()
	case '(':
		return l.processSingle(LPAREN)
	case '[':
		return l.processSingle(LBRACKET)
	case '{':
		return l.processSingle(LBRACE)
	case ')':
		return l.processSingle(RPAREN)
	case ']':
		return l.processSingle(RBRACKET)
	case '}':
		return l.processSingle(RBRACE)
	case ';':
		return l.processSingle(SEMICOLON)
	case '.':
		return l.processSingle(DOT)
	case ',':
		return l.processSingle(COMMA)
	}

	panic("unreachable")
}

type mark struct {
	pos, line, col int
}

func (l *Lexer) mark() mark {
	return mark{pos: l.pos, line: l.line, col: l.col}
}

func (l *Lexer) token(kind TokenKind, value string, start mark) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Metadata: TokenMetadata{
			Line:   start.line,
			Column: start.col,
			Length: l.pos - start.pos,
		},
	}
}

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) advance() {
	if l.buf[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.buf) {
		return 0
	}
	return l.buf[l.pos+1]
}

func (l *Lexer) read() rune { return l.buf[l.pos] }
