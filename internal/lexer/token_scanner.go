package lexer

type TokenScanner interface {
	Read() *Token
	HasTokens() bool
	Tokens() []Token
}

type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

// NewTokenScanner wraps tokens, which must end with an EOF token.
// Reading past the end keeps returning that EOF token.
func NewTokenScanner(tokens []Token) TokenScanner {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, Token{Kind: EOF, Value: EOF.String()})
	}

	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() *Token {
	token := &s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}

	return token
}

func (s *SimpleTokenScanner) HasTokens() bool {
	return s.tokens[s.pos].Kind != EOF
}

func (s *SimpleTokenScanner) Tokens() []Token {
	return s.tokens
}
