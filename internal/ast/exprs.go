package ast

import "github.com/kievzenit/l25/internal/lexer"

// CompareExpr is the single comparison allowed in if/while conditions.
type CompareExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

type UnaryExpr struct {
	StartToken *lexer.Token

	Op    *lexer.Token
	Right Expr
}

type IdentExpr struct {
	StartToken *lexer.Token

	Value string
}

type IntExpr struct {
	StartToken *lexer.Token

	Value int64
}

type StringExpr struct {
	StartToken *lexer.Token

	Value string
}

type ArrayExpr struct {
	StartToken *lexer.Token

	Elements []Expr
}

type ArraySubscriptExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Index Expr
}

type StructInitExpr struct {
	StartToken *lexer.Token

	Name *IdentExpr
	Args []Expr
}

type MemberAccessExpr struct {
	StartToken *lexer.Token

	Left   Expr
	Member *IdentExpr
}

type CallExpr struct {
	StartToken *lexer.Token

	Callee Expr
	Args   []Expr
}

func (*CompareExpr) AstNode()        {}
func (*BinaryExpr) AstNode()         {}
func (*UnaryExpr) AstNode()          {}
func (*IdentExpr) AstNode()          {}
func (*IntExpr) AstNode()            {}
func (*StringExpr) AstNode()         {}
func (*ArrayExpr) AstNode()          {}
func (*ArraySubscriptExpr) AstNode() {}
func (*StructInitExpr) AstNode()     {}
func (*MemberAccessExpr) AstNode()   {}
func (*CallExpr) AstNode()           {}

func (e *CompareExpr) FirstToken() *lexer.Token        { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token         { return e.StartToken }
func (e *UnaryExpr) FirstToken() *lexer.Token          { return e.StartToken }
func (e *IdentExpr) FirstToken() *lexer.Token          { return e.StartToken }
func (e *IntExpr) FirstToken() *lexer.Token            { return e.StartToken }
func (e *StringExpr) FirstToken() *lexer.Token         { return e.StartToken }
func (e *ArrayExpr) FirstToken() *lexer.Token          { return e.StartToken }
func (e *ArraySubscriptExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *StructInitExpr) FirstToken() *lexer.Token     { return e.StartToken }
func (e *MemberAccessExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *CallExpr) FirstToken() *lexer.Token           { return e.StartToken }

func (*CompareExpr) ExprNode()        {}
func (*BinaryExpr) ExprNode()         {}
func (*UnaryExpr) ExprNode()          {}
func (*IdentExpr) ExprNode()          {}
func (*IntExpr) ExprNode()            {}
func (*StringExpr) ExprNode()         {}
func (*ArrayExpr) ExprNode()          {}
func (*ArraySubscriptExpr) ExprNode() {}
func (*StructInitExpr) ExprNode()     {}
func (*MemberAccessExpr) ExprNode()   {}
func (*CallExpr) ExprNode()           {}
