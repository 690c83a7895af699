package compiler_errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestRendering(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Syntax With Position",
			err:      NewSyntaxError("unexpected token", &Position{Line: 2, Column: 7}),
			expected: "[Line 2:7] SyntaxError: unexpected token",
		},
		{
			name:     "Semantic With Position",
			err:      NewSemanticError(Index, "out of bounds", &Position{Line: 1, Column: 3}),
			expected: "[Line 1:3] SemanticError: out of bounds",
		},
		{
			name:     "Semantic Without Position",
			err:      NewSemanticError(Internal, "boom", nil),
			expected: "SemanticError: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Fatalf("want %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	div := NewSemanticError(DivisionByZero, "division by zero", nil)
	wrapped := fmt.Errorf("running: %w", div)

	if !IsDivisionByZero(wrapped) {
		t.Fatalf("wrapped division by zero not recognised")
	}
	if IsDivisionByZero(NewSemanticError(TypeMismatch, "x", nil)) {
		t.Fatalf("type mismatch classified as division by zero")
	}
	if IsDivisionByZero(nil) {
		t.Fatalf("nil classified as division by zero")
	}

	incomplete := NewSyntaxError("eof", nil)
	incomplete.Incomplete = true
	if !IsIncomplete(incomplete) || IsIncomplete(div) {
		t.Fatalf("unexpected incomplete classification")
	}
}

func failingPass(eh ErrorHandler) (err error) {
	defer Recover(&err)

	eh.AddError(NewSyntaxError("first", nil))
	eh.AddError(NewSyntaxError("second", nil))
	eh.FailNow()
	return errors.New("not reached")
}

func TestFailNowRecover(t *testing.T) {
	eh := NewErrorHandler()
	err := failingPass(eh)

	var se *SyntaxError
	if !errors.As(err, &se) || se.Message != "first" {
		t.Fatalf("want first error, got %v", err)
	}
	if len(eh.Errors()) != 2 {
		t.Fatalf("want 2 collected errors, got %d", len(eh.Errors()))
	}
}

func TestRecoverRepanicsForeignPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("want foreign panic to propagate, got %v", r)
		}
	}()

	func() (err error) {
		defer Recover(&err)
		panic("boom")
	}()
}
