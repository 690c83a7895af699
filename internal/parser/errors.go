package parser

import (
	"fmt"
	"strings"

	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/lexer"
)

func positionOf(token *lexer.Token) *compiler_errors.Position {
	return &compiler_errors.Position{
		Line:   token.Metadata.Line,
		Column: token.Metadata.Column,
	}
}

func newSyntaxError(token *lexer.Token, message string) *compiler_errors.SyntaxError {
	err := compiler_errors.NewSyntaxError(message, positionOf(token))
	err.Incomplete = token.Kind == lexer.EOF
	return err
}

func newUnexpectedExpectedError(unexpected *lexer.Token, expected lexer.TokenKind) *compiler_errors.SyntaxError {
	return newSyntaxError(unexpected, fmt.Sprintf(
		"unexpected token: '%s', expected: '%s'",
		unexpected.Kind.String(),
		expected.String(),
	))
}

func newUnexpectedExpectedManyError(unexpected *lexer.Token, expected []lexer.TokenKind) *compiler_errors.SyntaxError {
	expectedKinds := make([]string, len(expected))
	for i, kind := range expected {
		expectedKinds[i] = kind.String()
	}

	return newSyntaxError(unexpected, fmt.Sprintf(
		"unexpected token: '%s', expected one of: '%s'",
		unexpected.Kind.String(),
		strings.Join(expectedKinds, "', '"),
	))
}

func newUnexpectedError(unexpected *lexer.Token, context string) *compiler_errors.SyntaxError {
	return newSyntaxError(unexpected, fmt.Sprintf(
		"unexpected token: '%s', %s",
		unexpected.Kind.String(),
		context,
	))
}
