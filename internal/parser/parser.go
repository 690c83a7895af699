package parser

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/kievzenit/l25/internal/ast"
	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/lexer"
)

type Parser struct {
	scanner lexer.TokenScanner
	eh      compiler_errors.ErrorHandler

	curr *lexer.Token

	structNames map[string]bool
}

func NewParser(scanner lexer.TokenScanner) *Parser {
	return &Parser{
		scanner: scanner,
		eh:      compiler_errors.NewErrorHandler(),

		structNames: collectStructNames(scanner.Tokens()),
	}
}

// collectStructNames finds every `struct IDENT` pair so that a construction
// parses correctly even when it appears before the declaration.
func collectStructNames(tokens []lexer.Token) map[string]bool {
	names := make(map[string]bool)
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind == lexer.STRUCT && tokens[i+1].Kind == lexer.IDENT {
			names[tokens[i+1].Value] = true
		}
	}

	return names
}

// Parse builds the program tree or returns the first syntax error.
func (p *Parser) Parse() (program *ast.Program, err error) {
	defer compiler_errors.Recover(&err)

	p.read()
	return p.parseProgram(), nil
}

func (p *Parser) parseProgram() *ast.Program {
	startToken := p.eat(lexer.PROGRAM)
	name := p.parseIdentExpr()

	p.eat(lexer.LBRACE)

	program := &ast.Program{
		StartToken: startToken,

		Name:    name,
		Structs: make([]*ast.StructDef, 0),
		Funcs:   make([]*ast.FuncDef, 0),
	}

	for p.isCurrAny(lexer.STRUCT, lexer.FUNC) {
		switch p.curr.Kind {
		case lexer.STRUCT:
			program.Structs = append(program.Structs, p.parseStructDef())
		case lexer.FUNC:
			program.Funcs = append(program.Funcs, p.parseFuncDef())
		}
	}

	p.expectAny(lexer.STRUCT, lexer.FUNC, lexer.MAIN)
	p.read()

	p.eat(lexer.LBRACE)
	program.Main = p.parseStmtList(false)
	p.eat(lexer.RBRACE)

	p.eat(lexer.RBRACE)
	p.expect(lexer.EOF)

	return program
}

func (p *Parser) parseStructDef() *ast.StructDef {
	startToken := p.eat(lexer.STRUCT)
	name := p.parseIdentExpr()

	p.eat(lexer.LBRACE)
	fields := p.parseParams()
	p.eat(lexer.RBRACE)
	p.eat(lexer.SEMICOLON)

	return &ast.StructDef{
		StartToken: startToken,

		Name:   name,
		Fields: fields,
	}
}

func (p *Parser) parseFuncDef() *ast.FuncDef {
	startToken := p.eat(lexer.FUNC)
	name := p.parseIdentExpr()

	p.eat(lexer.LPAREN)
	params := make([]*ast.IdentExpr, 0)
	if p.curr.Kind == lexer.IDENT {
		params = p.parseParams()
	}
	p.eat(lexer.RPAREN)

	p.eat(lexer.LBRACE)
	body := p.parseStmtList(true)

	returnToken := p.eat(lexer.RETURN)
	returnExpr := p.parseExpr()
	p.eat(lexer.SEMICOLON)

	body.Stmts = append(body.Stmts, &ast.ReturnStmt{
		StartToken: returnToken,

		Expr: returnExpr,
	})
	p.eat(lexer.RBRACE)

	return &ast.FuncDef{
		StartToken: startToken,

		Name:   name,
		Params: params,
		Body:   body,
	}
}

func (p *Parser) parseParams() []*ast.IdentExpr {
	params := []*ast.IdentExpr{p.parseIdentExpr()}
	for p.curr.Kind == lexer.COMMA {
		p.read()
		params = append(params, p.parseIdentExpr())
	}

	return params
}

// parseStmtList parses `stmt ';' (stmt ';')*` up to a closing brace or the
// return of a function body. allowEmpty permits zero statements.
func (p *Parser) parseStmtList(allowEmpty bool) *ast.StmtList {
	list := &ast.StmtList{
		StartToken: p.curr,

		Stmts: make([]ast.Stmt, 0),
	}

	if allowEmpty && p.isCurrAny(lexer.RBRACE, lexer.RETURN) {
		return list
	}

	for {
		list.Stmts = append(list.Stmts, p.parseStmt())
		p.eat(lexer.SEMICOLON)

		if p.isCurrAny(lexer.RBRACE, lexer.RETURN, lexer.EOF) {
			break
		}
	}

	return list
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curr.Kind {
	case lexer.LET:
		return p.parseDeclareStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.INPUT:
		return p.parseInputStmt()
	case lexer.OUTPUT:
		return p.parseOutputStmt()
	case lexer.TRY:
		return p.parseTryCatchStmt()
	}

	startToken := p.curr
	left := p.parseCallAccess()

	if p.curr.Kind == lexer.ASSIGN {
		switch left.(type) {
		case *ast.IdentExpr, *ast.MemberAccessExpr, *ast.ArraySubscriptExpr:
		default:
			p.fail(newSyntaxError(startToken, "invalid target for assignment"))
		}
		p.read()

		value := p.parseExpr()

		return &ast.AssignStmt{
			StartToken: startToken,

			Target: left,
			Value:  value,
		}
	}

	if call, ok := left.(*ast.CallExpr); ok {
		return &ast.CallStmt{Call: call}
	}

	p.fail(newSyntaxError(startToken, "invalid statement, expected assignment or function call"))
	panic("unreachable")
}

func (p *Parser) parseDeclareStmt() *ast.DeclareStmt {
	startToken := p.eat(lexer.LET)
	name := p.parseIdentExpr()

	var value ast.Expr
	if p.curr.Kind == lexer.ASSIGN {
		p.read()
		value = p.parseExpr()
	}

	return &ast.DeclareStmt{
		StartToken: startToken,

		Name:  name,
		Value: value,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	startToken := p.eat(lexer.IF)

	p.eat(lexer.LPAREN)
	cond := p.parseCompareExpr()
	p.eat(lexer.RPAREN)

	body := p.parseBlock()

	var elseBody *ast.StmtList
	if p.curr.Kind == lexer.ELSE {
		p.read()
		elseBody = p.parseBlock()
	}

	return &ast.IfStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
		Else: elseBody,
	}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	startToken := p.eat(lexer.WHILE)

	p.eat(lexer.LPAREN)
	cond := p.parseCompareExpr()
	p.eat(lexer.RPAREN)

	body := p.parseBlock()

	return &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}
}

func (p *Parser) parseTryCatchStmt() *ast.TryCatchStmt {
	startToken := p.eat(lexer.TRY)
	tryBody := p.parseBlock()

	p.eat(lexer.CATCH)
	catchBody := p.parseBlock()

	return &ast.TryCatchStmt{
		StartToken: startToken,

		Try:   tryBody,
		Catch: catchBody,
	}
}

func (p *Parser) parseBlock() *ast.StmtList {
	p.eat(lexer.LBRACE)
	body := p.parseStmtList(false)
	p.eat(lexer.RBRACE)

	return body
}

func (p *Parser) parseInputStmt() *ast.InputStmt {
	startToken := p.eat(lexer.INPUT)

	p.eat(lexer.LPAREN)
	targets := p.parseParams()
	p.eat(lexer.RPAREN)

	return &ast.InputStmt{
		StartToken: startToken,

		Targets: targets,
	}
}

func (p *Parser) parseOutputStmt() *ast.OutputStmt {
	startToken := p.eat(lexer.OUTPUT)

	p.eat(lexer.LPAREN)
	exprs := p.parseArgs(lexer.RPAREN)
	p.eat(lexer.RPAREN)

	return &ast.OutputStmt{
		StartToken: startToken,

		Exprs: exprs,
	}
}

// parseArgs parses a possibly empty comma separated list ending before closing.
func (p *Parser) parseArgs(closing lexer.TokenKind) []ast.Expr {
	args := make([]ast.Expr, 0)
	if p.curr.Kind == closing {
		return args
	}

	args = append(args, p.parseExpr())
	for p.curr.Kind == lexer.COMMA {
		p.read()
		args = append(args, p.parseExpr())
	}

	return args
}

func (p *Parser) parseCompareExpr() *ast.CompareExpr {
	startToken := p.curr
	left := p.parseExpr()

	if !p.curr.Kind.IsComparison() {
		p.fail(newUnexpectedError(p.curr, "expected a comparison operator"))
	}
	op := p.curr
	p.read()

	right := p.parseExpr()

	return &ast.CompareExpr{
		StartToken: startToken,

		Left:  left,
		Op:    op,
		Right: right,
	}
}

func (p *Parser) parseExpr() ast.Expr {
	expr := p.parseTerm()
	for p.isCurrAny(lexer.PLUS, lexer.MINUS) {
		op := p.curr
		p.read()

		right := p.parseTerm()
		expr = &ast.BinaryExpr{
			StartToken: expr.FirstToken(),

			Left:  expr,
			Op:    op,
			Right: right,
		}
	}

	return expr
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.isCurrAny(lexer.ASTERISK, lexer.SLASH) {
		op := p.curr
		p.read()

		right := p.parseFactor()
		expr = &ast.BinaryExpr{
			StartToken: expr.FirstToken(),

			Left:  expr,
			Op:    op,
			Right: right,
		}
	}

	return expr
}

func (p *Parser) parseFactor() ast.Expr {
	if !p.isCurrAny(lexer.PLUS, lexer.MINUS) {
		return p.parseCallAccess()
	}

	op := p.curr
	p.read()

	return &ast.UnaryExpr{
		StartToken: op,

		Op:    op,
		Right: p.parseFactor(),
	}
}

// parseCallAccess parses a primary followed by any chain of calls, indexing
// and member accesses, applied left to right.
func (p *Parser) parseCallAccess() ast.Expr {
	expr := p.parsePrimaryExpr()

	for p.isCurrAny(lexer.LPAREN, lexer.LBRACKET, lexer.DOT) {
		switch p.curr.Kind {
		case lexer.LPAREN:
			p.read()

			args := p.parseArgs(lexer.RPAREN)
			p.eat(lexer.RPAREN)

			if ident, ok := expr.(*ast.IdentExpr); ok && p.structNames[ident.Value] {
				expr = &ast.StructInitExpr{
					StartToken: ident.StartToken,

					Name: ident,
					Args: args,
				}
				continue
			}

			expr = &ast.CallExpr{
				StartToken: expr.FirstToken(),

				Callee: expr,
				Args:   args,
			}
		case lexer.LBRACKET:
			p.read()

			indexExpr := p.parseExpr()
			p.eat(lexer.RBRACKET)

			expr = &ast.ArraySubscriptExpr{
				StartToken: expr.FirstToken(),

				Left:  expr,
				Index: indexExpr,
			}
		case lexer.DOT:
			p.read()

			member := p.parseIdentExpr()

			expr = &ast.MemberAccessExpr{
				StartToken: expr.FirstToken(),

				Left:   expr,
				Member: member,
			}
		}
	}

	return expr
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.curr.Kind {
	case lexer.NUMBER:
		return p.parseIntegerExpr()
	case lexer.STRING:
		return p.parseStringExpr()
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.IDENT:
		return p.parseIdentExpr()
	case lexer.LBRACKET:
		return p.parseArrayExpression()
	}

	p.fail(newUnexpectedError(p.curr, "expected an expression"))
	panic("unreachable")
}

func (p *Parser) parseParenExpr() ast.Expr {
	p.eat(lexer.LPAREN)
	expr := p.parseExpr()
	p.eat(lexer.RPAREN)

	return expr
}

func (p *Parser) parseArrayExpression() ast.Expr {
	startToken := p.eat(lexer.LBRACKET)
	elements := p.parseArgs(lexer.RBRACKET)
	p.eat(lexer.RBRACKET)

	return &ast.ArrayExpr{
		StartToken: startToken,

		Elements: elements,
	}
}

func (p *Parser) parseIdentExpr() *ast.IdentExpr {
	startToken := p.eat(lexer.IDENT)

	return &ast.IdentExpr{
		StartToken: startToken,

		Value: startToken.Value,
	}
}

func (p *Parser) parseIntegerExpr() *ast.IntExpr {
	p.expect(lexer.NUMBER)
	startToken := p.curr

	value, err := strconv.ParseInt(p.curr.Value, 10, 64)
	if err != nil {
		p.fail(newSyntaxError(startToken, fmt.Sprintf("integer literal %s is out of range", p.curr.Value)))
	}
	p.read()

	return &ast.IntExpr{
		StartToken: startToken,

		Value: value,
	}
}

func (p *Parser) parseStringExpr() *ast.StringExpr {
	startToken := p.eat(lexer.STRING)

	return &ast.StringExpr{
		StartToken: startToken,

		Value: startToken.Value,
	}
}

func (p *Parser) read() *lexer.Token {
	p.curr = p.scanner.Read()
	return p.curr
}

// eat checks the current token kind, consumes it and returns it.
func (p *Parser) eat(kind lexer.TokenKind) *lexer.Token {
	p.expect(kind)
	token := p.curr
	p.read()

	return token
}

func (p *Parser) expect(kind lexer.TokenKind) {
	if p.curr.Kind != kind {
		p.fail(newUnexpectedExpectedError(p.curr, kind))
	}
}

func (p *Parser) expectAny(kinds ...lexer.TokenKind) {
	if p.isCurrAny(kinds...) {
		return
	}

	p.fail(newUnexpectedExpectedManyError(p.curr, kinds))
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr.Kind)
}

func (p *Parser) fail(err compiler_errors.CompilerError) {
	p.eh.AddError(err)
	p.eh.FailNow()
}
