package ast

import "github.com/kievzenit/l25/internal/lexer"

type DeclareStmt struct {
	StartToken *lexer.Token

	Name  *IdentExpr
	Value Expr // nil when declared without an initializer
}

// AssignStmt targets an IdentExpr, MemberAccessExpr or ArraySubscriptExpr.
type AssignStmt struct {
	StartToken *lexer.Token

	Target Expr
	Value  Expr
}

type IfStmt struct {
	StartToken *lexer.Token

	Cond *CompareExpr
	Body *StmtList
	Else *StmtList
}

type WhileStmt struct {
	StartToken *lexer.Token

	Cond *CompareExpr
	Body *StmtList
}

type InputStmt struct {
	StartToken *lexer.Token

	Targets []*IdentExpr
}

type OutputStmt struct {
	StartToken *lexer.Token

	Exprs []Expr
}

type ReturnStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

type TryCatchStmt struct {
	StartToken *lexer.Token

	Try   *StmtList
	Catch *StmtList
}

// CallStmt is a call evaluated for its effects.
type CallStmt struct {
	Call *CallExpr
}

func (d *DeclareStmt) AstNode()  {}
func (a *AssignStmt) AstNode()   {}
func (i *IfStmt) AstNode()       {}
func (w *WhileStmt) AstNode()    {}
func (i *InputStmt) AstNode()    {}
func (o *OutputStmt) AstNode()   {}
func (r *ReturnStmt) AstNode()   {}
func (t *TryCatchStmt) AstNode() {}
func (c *CallStmt) AstNode()     {}

func (d *DeclareStmt) FirstToken() *lexer.Token  { return d.StartToken }
func (a *AssignStmt) FirstToken() *lexer.Token   { return a.StartToken }
func (i *IfStmt) FirstToken() *lexer.Token       { return i.StartToken }
func (w *WhileStmt) FirstToken() *lexer.Token    { return w.StartToken }
func (i *InputStmt) FirstToken() *lexer.Token    { return i.StartToken }
func (o *OutputStmt) FirstToken() *lexer.Token   { return o.StartToken }
func (r *ReturnStmt) FirstToken() *lexer.Token   { return r.StartToken }
func (t *TryCatchStmt) FirstToken() *lexer.Token { return t.StartToken }
func (c *CallStmt) FirstToken() *lexer.Token     { return c.Call.FirstToken() }

func (d *DeclareStmt) StmtNode()  {}
func (a *AssignStmt) StmtNode()   {}
func (i *IfStmt) StmtNode()       {}
func (w *WhileStmt) StmtNode()    {}
func (i *InputStmt) StmtNode()    {}
func (o *OutputStmt) StmtNode()   {}
func (r *ReturnStmt) StmtNode()   {}
func (t *TryCatchStmt) StmtNode() {}
func (c *CallStmt) StmtNode()     {}
