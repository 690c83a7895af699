package ast

import "github.com/kievzenit/l25/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}

// Program is the root of every parsed source file.
type Program struct {
	StartToken *lexer.Token

	Name    *IdentExpr
	Structs []*StructDef
	Funcs   []*FuncDef
	Main    *StmtList
}

type StructDef struct {
	StartToken *lexer.Token

	Name   *IdentExpr
	Fields []*IdentExpr
}

// FuncDef always ends its Body with the mandatory ReturnStmt.
type FuncDef struct {
	StartToken *lexer.Token

	Name   *IdentExpr
	Params []*IdentExpr
	Body   *StmtList
}

type StmtList struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

func (p *Program) AstNode()   {}
func (s *StructDef) AstNode() {}
func (f *FuncDef) AstNode()   {}
func (s *StmtList) AstNode()  {}

func (p *Program) FirstToken() *lexer.Token   { return p.StartToken }
func (s *StructDef) FirstToken() *lexer.Token { return s.StartToken }
func (f *FuncDef) FirstToken() *lexer.Token   { return f.StartToken }
func (s *StmtList) FirstToken() *lexer.Token  { return s.StartToken }
