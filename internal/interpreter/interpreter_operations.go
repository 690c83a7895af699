package interpreter

import (
	"math"
	"strings"

	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/lexer"
)

func binaryOp(op *lexer.Token, left, right Value, inTry bool) (Value, error) {
	switch op.Kind {
	case lexer.PLUS:
		return add(op, left, right)
	case lexer.ASTERISK:
		return multiply(op, left, right)
	case lexer.MINUS, lexer.SLASH:
		l, lok := left.(IntegerValue)
		r, rok := right.(IntegerValue)
		if !lok || !rok {
			return nil, unsupportedOperands(op, left, right)
		}

		if op.Kind == lexer.MINUS {
			n, ok := subInt(l.Val, r.Val)
			return checkedInt(op, n, ok)
		}
		if r.Val == 0 {
			return nil, divisionByZero(op, inTry)
		}
		if l.Val == math.MinInt64 && r.Val == -1 {
			return nil, integerOverflow(op)
		}
		return IntegerValue{Val: floorDiv(l.Val, r.Val)}, nil
	default:
		return nil, semanticErrorAtf(op, compiler_errors.Internal, "internal error: unknown operator %s", op.Kind)
	}
}

// add sums integers and concatenates when either side is a string.
func add(op *lexer.Token, left, right Value) (Value, error) {
	l, lok := left.(IntegerValue)
	r, rok := right.(IntegerValue)
	if lok && rok {
		n, ok := addInt(l.Val, r.Val)
		return checkedInt(op, n, ok)
	}

	if left.Kind() == KindString || right.Kind() == KindString {
		ls, rs := Stringify(left), Stringify(right)
		if len(ls) > maxStringBytes-len(rs) {
			return nil, stringTooLarge(op)
		}
		return StringValue{Val: ls + rs}, nil
	}

	return nil, unsupportedOperands(op, left, right)
}

func multiply(op *lexer.Token, left, right Value) (Value, error) {
	switch l := left.(type) {
	case IntegerValue:
		switch r := right.(type) {
		case IntegerValue:
			n, ok := mulInt(l.Val, r.Val)
			return checkedInt(op, n, ok)
		case StringValue:
			return repeat(op, r.Val, l.Val)
		}
	case StringValue:
		if r, ok := right.(IntegerValue); ok {
			return repeat(op, l.Val, r.Val)
		}
		if right.Kind() == KindString {
			return nil, semanticErrorAtf(op, compiler_errors.TypeMismatch,
				"string multiplication must be between a string and an integer")
		}
	}

	return nil, unsupportedOperands(op, left, right)
}

// maxStringBytes bounds every string built by '+' and '*'.
var maxStringBytes = math.MaxInt32

func stringTooLarge(op *lexer.Token) error {
	return semanticErrorAtf(op, compiler_errors.TypeMismatch,
		"string result of '%s' exceeds %d bytes", op.Value, maxStringBytes)
}

func checkedInt(op *lexer.Token, n int64, ok bool) (Value, error) {
	if !ok {
		return nil, integerOverflow(op)
	}
	return IntegerValue{Val: n}, nil
}

func integerOverflow(op *lexer.Token) error {
	return semanticErrorAtf(op, compiler_errors.TypeMismatch, "integer overflow in '%s'", op.Value)
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	s := a - b
	return s, (s < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || p/b != a {
		return 0, false
	}
	return p, true
}

// repeat yields the empty string for a non-positive count.
func repeat(op *lexer.Token, s string, count int64) (Value, error) {
	if count <= 0 || s == "" {
		return StringValue{}, nil
	}
	if count > int64(maxStringBytes/len(s)) {
		return nil, stringTooLarge(op)
	}

	return StringValue{Val: strings.Repeat(s, int(count))}, nil
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func divisionByZero(op *lexer.Token, inTry bool) error {
	message := "division by zero outside a try block"
	if inTry {
		message = "division by zero"
	}

	return semanticErrorAtf(op, compiler_errors.DivisionByZero, "%s", message)
}

func unsupportedOperands(op *lexer.Token, left, right Value) error {
	return semanticErrorAtf(op, compiler_errors.TypeMismatch,
		"unsupported operand types for '%s': %s and %s", op.Value, left.Kind(), right.Kind())
}

func compare(op *lexer.Token, left, right Value) (bool, error) {
	switch op.Kind {
	case lexer.EQ:
		return valuesEqual(left, right), nil
	case lexer.NEQ:
		return !valuesEqual(left, right), nil
	}

	var order int
	switch l := left.(type) {
	case IntegerValue:
		r, ok := right.(IntegerValue)
		if !ok {
			return false, unorderedOperands(op, left, right)
		}
		order = cmpInt(l.Val, r.Val)
	case StringValue:
		r, ok := right.(StringValue)
		if !ok {
			return false, unorderedOperands(op, left, right)
		}
		order = strings.Compare(l.Val, r.Val)
	default:
		return false, unorderedOperands(op, left, right)
	}

	switch op.Kind {
	case lexer.LT:
		return order < 0, nil
	case lexer.LEQ:
		return order <= 0, nil
	case lexer.GT:
		return order > 0, nil
	case lexer.GEQ:
		return order >= 0, nil
	default:
		return false, semanticErrorAtf(op, compiler_errors.Internal, "internal error: unknown comparison %s", op.Kind)
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func unorderedOperands(op *lexer.Token, left, right Value) error {
	return semanticErrorAtf(op, compiler_errors.TypeMismatch,
		"cannot compare %s and %s with '%s'", left.Kind(), right.Kind(), op.Value)
}

// valuesEqual compares scalars by value, arrays element-wise and every other
// reference value by identity. Values of different kinds are never equal.
func valuesEqual(left, right Value) bool {
	switch l := left.(type) {
	case IntegerValue:
		r, ok := right.(IntegerValue)
		return ok && l.Val == r.Val
	case StringValue:
		r, ok := right.(StringValue)
		return ok && l.Val == r.Val
	case *ArrayValue:
		r, ok := right.(*ArrayValue)
		if !ok {
			return false
		}
		if l == r {
			return true
		}
		if len(l.Elements) != len(r.Elements) {
			return false
		}
		for j := range l.Elements {
			if !valuesEqual(l.Elements[j], r.Elements[j]) {
				return false
			}
		}
		return true
	case *StructInstance:
		r, ok := right.(*StructInstance)
		return ok && l == r
	case *FunctionValue:
		r, ok := right.(*FunctionValue)
		return ok && l == r
	case *StructDefinition:
		r, ok := right.(*StructDefinition)
		return ok && l == r
	default:
		return false
	}
}
