package interpreter

import (
	"context"
	"fmt"
	"math"

	"github.com/kievzenit/l25/internal/ast"
	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/lexer"
)

func (i *Interpreter) evalExpr(ctx context.Context, f frame, expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.IntExpr:
		return IntegerValue{Val: expr.Value}, nil
	case *ast.StringExpr:
		return StringValue{Val: expr.Value}, nil
	case *ast.IdentExpr:
		return i.evalIdentExpr(f, expr)
	case *ast.ArrayExpr:
		return i.evalArrayExpr(ctx, f, expr)
	case *ast.ArraySubscriptExpr:
		array, index, err := i.evalElementRef(ctx, f, expr)
		if err != nil {
			return nil, err
		}
		return array.Elements[index], nil
	case *ast.MemberAccessExpr:
		return i.evalMemberAccessExpr(ctx, f, expr)
	case *ast.StructInitExpr:
		return i.evalStructInitExpr(ctx, f, expr)
	case *ast.CallExpr:
		return i.evalCallExpr(ctx, f, expr)
	case *ast.BinaryExpr:
		return i.evalBinaryExpr(ctx, f, expr)
	case *ast.UnaryExpr:
		return i.evalUnaryExpr(ctx, f, expr)
	case *ast.CompareExpr:
		return nil, semanticErrorf(expr, compiler_errors.TypeMismatch, "comparison is only allowed as a condition")
	default:
		return nil, newInternalError(expr, fmt.Sprintf("unknown expression %T", expr))
	}
}

func (i *Interpreter) evalIdentExpr(f frame, expr *ast.IdentExpr) (Value, error) {
	value, ok := f.scope.Lookup(expr.Value)
	if !ok {
		return nil, semanticErrorf(expr, compiler_errors.UndefinedName, "variable or struct '%s' is not defined", expr.Value)
	}
	if value.Kind() == KindUninitialized {
		return nil, semanticErrorf(expr, compiler_errors.UndefinedName, "variable '%s' is used before it is assigned", expr.Value)
	}

	return value, nil
}

func (i *Interpreter) evalArrayExpr(ctx context.Context, f frame, expr *ast.ArrayExpr) (Value, error) {
	elements, err := i.evalExprs(ctx, f, expr.Elements)
	if err != nil {
		return nil, err
	}

	return &ArrayValue{Elements: elements}, nil
}

func (i *Interpreter) evalExprs(ctx context.Context, f frame, exprs []ast.Expr) ([]Value, error) {
	values := make([]Value, len(exprs))
	for j, expr := range exprs {
		value, err := i.evalExpr(ctx, f, expr)
		if err != nil {
			return nil, err
		}
		values[j] = value
	}

	return values, nil
}

// evalElementRef resolves the array and the bounds-checked index named by expr.
func (i *Interpreter) evalElementRef(ctx context.Context, f frame, expr *ast.ArraySubscriptExpr) (*ArrayValue, int, error) {
	left, err := i.evalExpr(ctx, f, expr.Left)
	if err != nil {
		return nil, 0, err
	}
	array, ok := left.(*ArrayValue)
	if !ok {
		return nil, 0, semanticErrorf(expr.Left, compiler_errors.TypeMismatch, "cannot index a value of type %s", left.Kind())
	}

	indexValue, err := i.evalExpr(ctx, f, expr.Index)
	if err != nil {
		return nil, 0, err
	}
	index, ok := indexValue.(IntegerValue)
	if !ok {
		return nil, 0, semanticErrorf(expr.Index, compiler_errors.TypeMismatch, "array index must be an integer, got %s", indexValue.Kind())
	}

	if index.Val < 0 || index.Val >= int64(len(array.Elements)) {
		return nil, 0, semanticErrorf(expr.Index, compiler_errors.Index,
			"array index %d out of bounds for array of size %d", index.Val, len(array.Elements))
	}

	return array, int(index.Val), nil
}

func (i *Interpreter) evalStructOperand(ctx context.Context, f frame, expr *ast.MemberAccessExpr) (*StructInstance, error) {
	left, err := i.evalExpr(ctx, f, expr.Left)
	if err != nil {
		return nil, err
	}

	instance, ok := left.(*StructInstance)
	if !ok {
		return nil, semanticErrorf(expr.Member, compiler_errors.TypeMismatch,
			"cannot access member '%s' of a value of type %s", expr.Member.Value, left.Kind())
	}

	return instance, nil
}

func (i *Interpreter) evalMemberAccessExpr(ctx context.Context, f frame, expr *ast.MemberAccessExpr) (Value, error) {
	instance, err := i.evalStructOperand(ctx, f, expr)
	if err != nil {
		return nil, err
	}

	value, ok := instance.Get(expr.Member.Value)
	if !ok {
		return nil, semanticErrorf(expr.Member, compiler_errors.UndefinedName,
			"struct '%s' has no member '%s'", instance.Definition.Name, expr.Member.Value)
	}

	return value, nil
}

func (i *Interpreter) evalStructInitExpr(ctx context.Context, f frame, expr *ast.StructInitExpr) (Value, error) {
	name := expr.Name.Value

	bound, ok := f.scope.Lookup(name)
	def, isDef := bound.(*StructDefinition)
	if !ok || !isDef {
		return nil, semanticErrorf(expr.Name, compiler_errors.UndefinedName, "'%s' is not a defined struct type", name)
	}
	if len(expr.Args) != len(def.Fields) {
		return nil, semanticErrorf(expr.Name, compiler_errors.Arity,
			"struct '%s' expects %d fields but got %d", name, len(def.Fields), len(expr.Args))
	}

	args, err := i.evalExprs(ctx, f, expr.Args)
	if err != nil {
		return nil, err
	}

	instance := newStructInstance(def)
	for j, field := range def.Fields {
		instance.Set(field, args[j])
	}

	return instance, nil
}

func (i *Interpreter) evalCallExpr(ctx context.Context, f frame, expr *ast.CallExpr) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	callee, ok := expr.Callee.(*ast.IdentExpr)
	if !ok {
		return nil, semanticErrorf(expr.Callee, compiler_errors.TypeMismatch, "only named functions can be called")
	}

	bound, found := f.scope.Lookup(callee.Value)
	if !found {
		return nil, semanticErrorf(callee, compiler_errors.UndefinedName, "function '%s' is not defined", callee.Value)
	}
	fn, ok := bound.(*FunctionValue)
	if !ok {
		return nil, semanticErrorf(callee, compiler_errors.TypeMismatch, "'%s' is not a function", callee.Value)
	}

	params := fn.Def.Params
	if len(expr.Args) != len(params) {
		return nil, semanticErrorf(callee, compiler_errors.Arity,
			"function '%s' expects %d arguments but got %d", callee.Value, len(params), len(expr.Args))
	}
	if f.depth >= maxCallDepth {
		return nil, semanticErrorf(callee, compiler_errors.Internal, "maximum call depth of %d exceeded", maxCallDepth)
	}

	args, err := i.evalExprs(ctx, f, expr.Args)
	if err != nil {
		return nil, err
	}

	callFrame := frame{
		scope: NewScope(i.global),
		inTry: f.inTry,
		depth: f.depth + 1,
	}
	for j, param := range params {
		callFrame.scope.Declare(param.Value, args[j])
	}

	err = i.execStmtList(ctx, callFrame, fn.Def.Body)
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	return nil, newInternalError(fn.Def, fmt.Sprintf("function '%s' finished without a return", fn.Name()))
}

func (i *Interpreter) evalUnaryExpr(ctx context.Context, f frame, expr *ast.UnaryExpr) (Value, error) {
	value, err := i.evalExpr(ctx, f, expr.Right)
	if err != nil {
		return nil, err
	}

	if expr.Op.Kind == lexer.PLUS {
		return value, nil
	}

	n, ok := value.(IntegerValue)
	if !ok {
		return nil, semanticErrorAtf(expr.Op, compiler_errors.TypeMismatch,
			"unary '-' requires an integer, got %s", value.Kind())
	}

	if n.Val == math.MinInt64 {
		return nil, integerOverflow(expr.Op)
	}

	return IntegerValue{Val: -n.Val}, nil
}

func (i *Interpreter) evalBinaryExpr(ctx context.Context, f frame, expr *ast.BinaryExpr) (Value, error) {
	left, err := i.evalExpr(ctx, f, expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(ctx, f, expr.Right)
	if err != nil {
		return nil, err
	}

	return binaryOp(expr.Op, left, right, f.inTry)
}

func (i *Interpreter) evalCompareExpr(ctx context.Context, f frame, expr *ast.CompareExpr) (bool, error) {
	left, err := i.evalExpr(ctx, f, expr.Left)
	if err != nil {
		return false, err
	}
	right, err := i.evalExpr(ctx, f, expr.Right)
	if err != nil {
		return false, err
	}

	return compare(expr.Op, left, right)
}
