package semantic_analyzer

import (
	"fmt"

	"github.com/kievzenit/l25/internal/ast"
	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/lexer"
)

// Issue is a warning about code that is likely to fail at run time.
type Issue struct {
	message string

	line   int
	column int
}

func (i *Issue) GetMessage() string { return i.message }
func (i *Issue) GetLine() int       { return i.line }
func (i *Issue) GetColumn() int     { return i.column }
func (i *Issue) HasPosition() bool  { return i.line > 0 }

func (i *Issue) Error() string {
	return fmt.Sprintf("[Line %d:%d] Warning: %s", i.line, i.column, i.message)
}

func newIssue(message string, token *lexer.Token) *Issue {
	return &Issue{
		message: message,

		line:   token.Metadata.Line,
		column: token.Metadata.Column,
	}
}

type varDefinition struct {
	Token *lexer.Token
}

type scope struct {
	parent    *scope
	variables map[string]varDefinition
}

func (s *scope) lookupVar(name string) (varDefinition, bool) {
	v, ok := s.variables[name]
	if ok {
		return v, true
	}

	if s.parent != nil {
		return s.parent.lookupVar(name)
	}

	return varDefinition{}, false
}

// defineVar keeps the first definition of name in this scope.
func (s *scope) defineVar(name string, v varDefinition) {
	if _, ok := s.variables[name]; ok {
		return
	}
	s.variables[name] = v
}

// SemanticAnalyzer looks for mistakes the evaluator would only report when
// it reaches them: unknown names, wrong argument counts, duplicate
// definitions and literal divisions by zero outside try blocks.
type SemanticAnalyzer struct {
	eh      compiler_errors.ErrorHandler
	program *ast.Program

	global *scope
	scope  *scope
	inTry  bool

	funcsMap   map[string]*ast.FuncDef
	structsMap map[string]*ast.StructDef
}

func NewSemanticAnalyzer(program *ast.Program) *SemanticAnalyzer {
	global := &scope{variables: make(map[string]varDefinition)}

	return &SemanticAnalyzer{
		eh:      compiler_errors.NewErrorHandler(),
		program: program,

		global: global,
		scope:  global,

		funcsMap:   make(map[string]*ast.FuncDef),
		structsMap: make(map[string]*ast.StructDef),
	}
}

func (sa *SemanticAnalyzer) enterScope() {
	sa.scope = &scope{parent: sa.scope, variables: make(map[string]varDefinition)}
}

func (sa *SemanticAnalyzer) exitScope() {
	sa.scope = sa.scope.parent
}

func (sa *SemanticAnalyzer) report(token *lexer.Token, format string, args ...any) {
	sa.eh.AddError(newIssue(fmt.Sprintf(format, args...), token))
}

// Analyze returns every issue found, in source traversal order.
func (sa *SemanticAnalyzer) Analyze() []*Issue {
	sa.scanProgramForDefinitions()
	sa.declareStmtList(sa.global, sa.program.Main)

	for _, funcDef := range sa.program.Funcs {
		sa.analyzeFuncDef(funcDef)
	}
	sa.analyzeStmtList(sa.program.Main)

	issues := make([]*Issue, 0, len(sa.eh.Errors()))
	for _, err := range sa.eh.Errors() {
		if issue, ok := err.(*Issue); ok {
			issues = append(issues, issue)
		}
	}

	return issues
}

func (sa *SemanticAnalyzer) scanProgramForDefinitions() {
	for _, structDef := range sa.program.Structs {
		name := structDef.Name.Value
		if _, ok := sa.structsMap[name]; ok {
			sa.report(structDef.Name.StartToken, "struct %s already defined", name)
			continue
		}

		seen := make(map[string]bool)
		for _, field := range structDef.Fields {
			if seen[field.Value] {
				sa.report(field.StartToken, "field %s repeated in struct %s", field.Value, name)
			}
			seen[field.Value] = true
		}

		sa.structsMap[name] = structDef
		sa.global.defineVar(name, varDefinition{Token: structDef.Name.StartToken})
	}

	for _, funcDef := range sa.program.Funcs {
		name := funcDef.Name.Value
		if _, ok := sa.funcsMap[name]; ok {
			sa.report(funcDef.Name.StartToken, "function %s already defined", name)
			continue
		}
		if _, ok := sa.structsMap[name]; ok {
			sa.report(funcDef.Name.StartToken, "function %s has the name of a struct", name)
			continue
		}

		sa.funcsMap[name] = funcDef
		sa.global.defineVar(name, varDefinition{Token: funcDef.Name.StartToken})
	}
}

// declareStmtList defines every `let` of list, nested blocks included, in s.
// Blocks share their enclosing scope, so a name is visible in the whole body.
func (sa *SemanticAnalyzer) declareStmtList(s *scope, list *ast.StmtList) {
	if list == nil {
		return
	}

	for _, stmt := range list.Stmts {
		switch stmt := stmt.(type) {
		case *ast.DeclareStmt:
			s.defineVar(stmt.Name.Value, varDefinition{Token: stmt.StartToken})
		case *ast.IfStmt:
			sa.declareStmtList(s, stmt.Body)
			sa.declareStmtList(s, stmt.Else)
		case *ast.WhileStmt:
			sa.declareStmtList(s, stmt.Body)
		case *ast.TryCatchStmt:
			sa.declareStmtList(s, stmt.Try)
			sa.declareStmtList(s, stmt.Catch)
		}
	}
}

func (sa *SemanticAnalyzer) analyzeFuncDef(funcDef *ast.FuncDef) {
	sa.enterScope()
	defer sa.exitScope()

	for _, param := range funcDef.Params {
		if _, ok := sa.scope.variables[param.Value]; ok {
			sa.report(param.StartToken, "parameter %s repeated in function %s", param.Value, funcDef.Name.Value)
			continue
		}
		sa.scope.defineVar(param.Value, varDefinition{Token: param.StartToken})
	}
	sa.declareStmtList(sa.scope, funcDef.Body)

	sa.analyzeStmtList(funcDef.Body)
}

func (sa *SemanticAnalyzer) analyzeStmtList(list *ast.StmtList) {
	for _, stmt := range list.Stmts {
		sa.analyzeStmt(stmt)
	}
}

func (sa *SemanticAnalyzer) analyzeStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.DeclareStmt:
		if stmt.Value != nil {
			sa.analyzeExpr(stmt.Value)
		}
	case *ast.AssignStmt:
		sa.analyzeExpr(stmt.Target)
		sa.analyzeExpr(stmt.Value)
	case *ast.IfStmt:
		sa.analyzeExpr(stmt.Cond)
		sa.analyzeStmtList(stmt.Body)
		if stmt.Else != nil {
			sa.analyzeStmtList(stmt.Else)
		}
	case *ast.WhileStmt:
		sa.analyzeExpr(stmt.Cond)
		sa.analyzeStmtList(stmt.Body)
	case *ast.InputStmt:
		for _, target := range stmt.Targets {
			sa.analyzeIdentExpr(target)
		}
	case *ast.OutputStmt:
		for _, expr := range stmt.Exprs {
			sa.analyzeExpr(expr)
		}
	case *ast.ReturnStmt:
		sa.analyzeExpr(stmt.Expr)
	case *ast.TryCatchStmt:
		inTry := sa.inTry
		sa.inTry = true
		sa.analyzeStmtList(stmt.Try)
		sa.inTry = inTry

		sa.analyzeStmtList(stmt.Catch)
	case *ast.CallStmt:
		sa.analyzeCallExpr(stmt.Call)
	default:
		panic(fmt.Sprintf("semantic analyzer: unknown statement %T", stmt))
	}
}

func (sa *SemanticAnalyzer) analyzeExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.CompareExpr:
		sa.analyzeExpr(expr.Left)
		sa.analyzeExpr(expr.Right)
	case *ast.BinaryExpr:
		sa.analyzeBinaryExpr(expr)
	case *ast.UnaryExpr:
		sa.analyzeExpr(expr.Right)
	case *ast.IdentExpr:
		sa.analyzeIdentExpr(expr)
	case *ast.IntExpr, *ast.StringExpr:
	case *ast.ArrayExpr:
		for _, element := range expr.Elements {
			sa.analyzeExpr(element)
		}
	case *ast.ArraySubscriptExpr:
		sa.analyzeExpr(expr.Left)
		sa.analyzeExpr(expr.Index)
	case *ast.StructInitExpr:
		sa.analyzeStructInitExpr(expr)
	case *ast.MemberAccessExpr:
		sa.analyzeExpr(expr.Left)
	case *ast.CallExpr:
		sa.analyzeCallExpr(expr)
	default:
		panic(fmt.Sprintf("semantic analyzer: unknown expression %T", expr))
	}
}

func (sa *SemanticAnalyzer) analyzeBinaryExpr(binaryExpr *ast.BinaryExpr) {
	sa.analyzeExpr(binaryExpr.Left)
	sa.analyzeExpr(binaryExpr.Right)

	if binaryExpr.Op.Kind != lexer.SLASH || sa.inTry {
		return
	}
	if divisor, ok := binaryExpr.Right.(*ast.IntExpr); ok && divisor.Value == 0 {
		sa.report(binaryExpr.Op, "division by zero outside a try block")
	}
}

func (sa *SemanticAnalyzer) analyzeIdentExpr(identExpr *ast.IdentExpr) {
	if _, defined := sa.scope.lookupVar(identExpr.Value); !defined {
		sa.report(identExpr.StartToken, "variable %s not defined", identExpr.Value)
	}
}

func (sa *SemanticAnalyzer) analyzeCallExpr(callExpr *ast.CallExpr) {
	for _, arg := range callExpr.Args {
		sa.analyzeExpr(arg)
	}

	callee, ok := callExpr.Callee.(*ast.IdentExpr)
	if !ok {
		sa.report(callExpr.StartToken, "only named functions can be called")
		return
	}

	funcDef, ok := sa.funcsMap[callee.Value]
	if !ok {
		// A variable may hold a function value at run time.
		if _, defined := sa.scope.lookupVar(callee.Value); !defined {
			sa.report(callee.StartToken, "function %s not defined", callee.Value)
		}
		return
	}

	if len(callExpr.Args) != len(funcDef.Params) {
		sa.report(callee.StartToken, "function %s expects %d arguments but got %d",
			callee.Value, len(funcDef.Params), len(callExpr.Args))
	}
}

func (sa *SemanticAnalyzer) analyzeStructInitExpr(structInitExpr *ast.StructInitExpr) {
	for _, arg := range structInitExpr.Args {
		sa.analyzeExpr(arg)
	}

	structDef, ok := sa.structsMap[structInitExpr.Name.Value]
	if !ok {
		return
	}

	if len(structInitExpr.Args) != len(structDef.Fields) {
		sa.report(structInitExpr.Name.StartToken, "struct %s expects %d fields but got %d",
			structInitExpr.Name.Value, len(structDef.Fields), len(structInitExpr.Args))
	}
}
