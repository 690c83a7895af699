package visualizer

import (
	"fmt"
	"strings"

	"github.com/kievzenit/l25/internal/ast"
)

// Visualizer renders a program tree as a Mermaid top-down graph. Nodes are
// numbered in visiting order, parents before their children.
type Visualizer struct {
	program *ast.Program

	lines   []string
	counter int
}

func NewVisualizer(program *ast.Program) *Visualizer {
	return &Visualizer{
		program: program,
	}
}

func (v *Visualizer) Generate() string {
	v.lines = []string{"graph TD"}
	v.counter = 0

	v.visitProgram(v.program)

	return strings.Join(v.lines, "\n")
}

func (v *Visualizer) addNode(label string) string {
	v.counter++
	id := fmt.Sprintf("node%d", v.counter)
	v.lines = append(v.lines, fmt.Sprintf(`%s["%s"]`, id, label))

	return id
}

func (v *Visualizer) addEdge(from, to, label string) {
	if label == "" {
		v.lines = append(v.lines, fmt.Sprintf("%s --> %s", from, to))
		return
	}

	v.lines = append(v.lines, fmt.Sprintf(`%s -- "%s" --> %s`, from, label, to))
}

// escape makes source text safe inside a quoted Mermaid label.
func escape(s string) string {
	return strings.NewReplacer(
		`&`, "&amp;",
		`"`, "&quot;",
		`<`, "&lt;",
		`>`, "&gt;",
	).Replace(s)
}

func (v *Visualizer) visitProgram(program *ast.Program) string {
	id := v.addNode("Program<br/>" + escape(program.Name.Value))

	for _, structDef := range program.Structs {
		v.addEdge(id, v.visitStructDef(structDef), "struct")
	}
	for _, funcDef := range program.Funcs {
		v.addEdge(id, v.visitFuncDef(funcDef), "func")
	}
	v.addEdge(id, v.visitStmtList(program.Main), "main")

	return id
}

func (v *Visualizer) visitStructDef(structDef *ast.StructDef) string {
	id := v.addNode("StructDef<br/>" + escape(structDef.Name.Value))
	for _, field := range structDef.Fields {
		v.addEdge(id, v.visitExpr(field), "field")
	}

	return id
}

func (v *Visualizer) visitFuncDef(funcDef *ast.FuncDef) string {
	id := v.addNode("FuncDef<br/>" + escape(funcDef.Name.Value))
	for _, param := range funcDef.Params {
		v.addEdge(id, v.visitExpr(param), "param")
	}
	v.addEdge(id, v.visitStmtList(funcDef.Body), "body")

	return id
}

func (v *Visualizer) visitStmtList(list *ast.StmtList) string {
	id := v.addNode("StmtList")
	for i, stmt := range list.Stmts {
		v.addEdge(id, v.visitStmt(stmt), fmt.Sprintf("stmt %d", i))
	}

	return id
}

func (v *Visualizer) visitStmt(stmt ast.Stmt) string {
	switch stmt := stmt.(type) {
	case *ast.DeclareStmt:
		id := v.addNode("let " + escape(stmt.Name.Value))
		if stmt.Value != nil {
			v.addEdge(id, v.visitExpr(stmt.Value), "=")
		}
		return id

	case *ast.AssignStmt:
		id := v.addNode("Assign")
		v.addEdge(id, v.visitExpr(stmt.Target), "target")
		v.addEdge(id, v.visitExpr(stmt.Value), "value")
		return id

	case *ast.IfStmt:
		id := v.addNode("IfStmt")
		v.addEdge(id, v.visitExpr(stmt.Cond), "condition")
		v.addEdge(id, v.visitStmtList(stmt.Body), "if_block")
		if stmt.Else != nil {
			v.addEdge(id, v.visitStmtList(stmt.Else), "else_block")
		}
		return id

	case *ast.WhileStmt:
		id := v.addNode("WhileStmt")
		v.addEdge(id, v.visitExpr(stmt.Cond), "condition")
		v.addEdge(id, v.visitStmtList(stmt.Body), "body")
		return id

	case *ast.TryCatchStmt:
		id := v.addNode("TryCatch")
		v.addEdge(id, v.visitStmtList(stmt.Try), "try")
		v.addEdge(id, v.visitStmtList(stmt.Catch), "catch")
		return id

	case *ast.InputStmt:
		id := v.addNode("InputStmt")
		for _, target := range stmt.Targets {
			v.addEdge(id, v.visitExpr(target), "into")
		}
		return id

	case *ast.OutputStmt:
		id := v.addNode("OutputStmt")
		for _, expr := range stmt.Exprs {
			v.addEdge(id, v.visitExpr(expr), "value")
		}
		return id

	case *ast.ReturnStmt:
		id := v.addNode("ReturnStmt")
		v.addEdge(id, v.visitExpr(stmt.Expr), "value")
		return id

	case *ast.CallStmt:
		return v.visitExpr(stmt.Call)

	default:
		panic(fmt.Sprintf("visualizer: unknown statement %T", stmt))
	}
}

func (v *Visualizer) visitExpr(expr ast.Expr) string {
	switch expr := expr.(type) {
	case *ast.CompareExpr:
		id := v.addNode("BoolExpr<br/>" + escape(expr.Op.Value))
		v.addEdge(id, v.visitExpr(expr.Left), "left")
		v.addEdge(id, v.visitExpr(expr.Right), "right")
		return id

	case *ast.BinaryExpr:
		id := v.addNode("Op: " + escape(expr.Op.Value))
		v.addEdge(id, v.visitExpr(expr.Left), "left")
		v.addEdge(id, v.visitExpr(expr.Right), "right")
		return id

	case *ast.UnaryExpr:
		id := v.addNode("UnaryOp: " + escape(expr.Op.Value))
		v.addEdge(id, v.visitExpr(expr.Right), "")
		return id

	case *ast.CallExpr:
		id := v.addNode("FuncCall")
		v.addEdge(id, v.visitExpr(expr.Callee), "callee")
		for i, arg := range expr.Args {
			v.addEdge(id, v.visitExpr(arg), fmt.Sprintf("arg %d", i))
		}
		return id

	case *ast.StructInitExpr:
		id := v.addNode("StructInit<br/>" + escape(expr.Name.Value))
		for i, arg := range expr.Args {
			v.addEdge(id, v.visitExpr(arg), fmt.Sprintf("arg %d", i))
		}
		return id

	case *ast.MemberAccessExpr:
		id := v.addNode(". (member)")
		v.addEdge(id, v.visitExpr(expr.Left), "object")
		v.addEdge(id, v.visitExpr(expr.Member), "member")
		return id

	case *ast.ArrayExpr:
		id := v.addNode("ArrayLiteral")
		for i, element := range expr.Elements {
			v.addEdge(id, v.visitExpr(element), fmt.Sprintf("[%d]", i))
		}
		return id

	case *ast.ArraySubscriptExpr:
		id := v.addNode("[] (access)")
		v.addEdge(id, v.visitExpr(expr.Left), "array")
		v.addEdge(id, v.visitExpr(expr.Index), "index")
		return id

	case *ast.IdentExpr:
		return v.addNode("Id: " + escape(expr.Value))

	case *ast.IntExpr:
		return v.addNode(fmt.Sprintf("Num: %d", expr.Value))

	case *ast.StringExpr:
		return v.addNode("Str: &quot;" + escape(expr.Value) + "&quot;")

	default:
		panic(fmt.Sprintf("visualizer: unknown expression %T", expr))
	}
}
