package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kievzenit/l25/internal/ast"
	"github.com/kievzenit/l25/internal/compiler_errors"
)

const divisionByZeroCaught = "Error: Division by zero detected. Jumping to catch block."

func (i *Interpreter) execStmtList(ctx context.Context, f frame, list *ast.StmtList) error {
	for _, stmt := range list.Stmts {
		if err := i.execStmt(ctx, f, stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) execStmt(ctx context.Context, f frame, stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.DeclareStmt:
		return i.execDeclareStmt(ctx, f, stmt)
	case *ast.AssignStmt:
		return i.execAssignStmt(ctx, f, stmt)
	case *ast.IfStmt:
		return i.execIfStmt(ctx, f, stmt)
	case *ast.WhileStmt:
		return i.execWhileStmt(ctx, f, stmt)
	case *ast.InputStmt:
		return i.execInputStmt(f, stmt)
	case *ast.OutputStmt:
		return i.execOutputStmt(ctx, f, stmt)
	case *ast.ReturnStmt:
		value, err := i.evalExpr(ctx, f, stmt.Expr)
		if err != nil {
			return err
		}
		return returnSignal{value: value}
	case *ast.TryCatchStmt:
		return i.execTryCatchStmt(ctx, f, stmt)
	case *ast.CallStmt:
		_, err := i.evalCallExpr(ctx, f, stmt.Call)
		return err
	default:
		return newInternalError(stmt, fmt.Sprintf("unknown statement %T", stmt))
	}
}

func (i *Interpreter) execDeclareStmt(ctx context.Context, f frame, stmt *ast.DeclareStmt) error {
	var value Value = UninitializedValue{}
	if stmt.Value != nil {
		var err error
		value, err = i.evalExpr(ctx, f, stmt.Value)
		if err != nil {
			return err
		}
	}

	f.scope.Declare(stmt.Name.Value, value)
	return nil
}

func (i *Interpreter) execAssignStmt(ctx context.Context, f frame, stmt *ast.AssignStmt) error {
	value, err := i.evalExpr(ctx, f, stmt.Value)
	if err != nil {
		return err
	}

	switch target := stmt.Target.(type) {
	case *ast.IdentExpr:
		if !f.scope.Assign(target.Value, value) {
			return semanticErrorf(target, compiler_errors.UndefinedName,
				"variable '%s' is not declared before assignment", target.Value)
		}
		return nil

	case *ast.MemberAccessExpr:
		instance, err := i.evalStructOperand(ctx, f, target)
		if err != nil {
			return err
		}
		instance.Set(target.Member.Value, value)
		return nil

	case *ast.ArraySubscriptExpr:
		array, index, err := i.evalElementRef(ctx, f, target)
		if err != nil {
			return err
		}
		array.Elements[index] = value
		return nil

	default:
		return semanticErrorf(stmt, compiler_errors.Internal, "invalid target for assignment")
	}
}

func (i *Interpreter) execIfStmt(ctx context.Context, f frame, stmt *ast.IfStmt) error {
	cond, err := i.evalCompareExpr(ctx, f, stmt.Cond)
	if err != nil {
		return err
	}

	if cond {
		return i.execStmtList(ctx, f, stmt.Body)
	}
	if stmt.Else != nil {
		return i.execStmtList(ctx, f, stmt.Else)
	}

	return nil
}

func (i *Interpreter) execWhileStmt(ctx context.Context, f frame, stmt *ast.WhileStmt) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cond, err := i.evalCompareExpr(ctx, f, stmt.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}

		if err := i.execStmtList(ctx, f, stmt.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) execInputStmt(f frame, stmt *ast.InputStmt) error {
	for _, target := range stmt.Targets {
		line, err := i.input.ReadLine()
		if errors.Is(err, io.EOF) {
			return semanticErrorf(target, compiler_errors.InputExhausted, "no input left for '%s'", target.Value)
		}
		if err != nil {
			return fmt.Errorf("reading input for '%s': %w", target.Value, err)
		}

		if !f.scope.Assign(target.Value, parseInputLine(line)) {
			return semanticErrorf(target, compiler_errors.UndefinedName,
				"variable '%s' is not declared before input", target.Value)
		}
	}

	return nil
}

// execOutputStmt evaluates every expression before writing, so a failing
// expression produces no partial line.
func (i *Interpreter) execOutputStmt(ctx context.Context, f frame, stmt *ast.OutputStmt) error {
	parts := make([]string, len(stmt.Exprs))
	for j, expr := range stmt.Exprs {
		value, err := i.evalExpr(ctx, f, expr)
		if err != nil {
			return err
		}
		parts[j] = Stringify(value)
	}

	return i.writeLine(strings.Join(parts, " "))
}

func (i *Interpreter) execTryCatchStmt(ctx context.Context, f frame, stmt *ast.TryCatchStmt) error {
	tryFrame := f
	tryFrame.inTry = true

	err := i.execStmtList(ctx, tryFrame, stmt.Try)
	if !compiler_errors.IsDivisionByZero(err) {
		return err
	}

	if err := i.writeLine(divisionByZeroCaught); err != nil {
		return err
	}

	return i.execStmtList(ctx, f, stmt.Catch)
}

func (i *Interpreter) writeLine(line string) error {
	if _, err := fmt.Fprintln(i.output, line); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
