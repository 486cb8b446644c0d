package parser

import (
	"slices"

	"github.com/vyPal/minipas/lib/ast"
	paslex "github.com/vyPal/minipas/lib/lexer"
	"github.com/vyPal/minipas/lib/token"
)

// TokenSource yields tokens one at a time. *paslex.Lexer implements it.
type TokenSource interface {
	Next() (token.Token, error)
}

// Parser is a recursive-descent parser holding one token of lookahead.
// It stops at the first error and never returns a partial tree.
//
//	program      : PROGRAM ID SEMI block DOT
//	block        : declarations compound
//	declarations : (VAR (varDecl SEMI)+)? procDecl*
//	varDecl      : ID (COMMA ID)* COLON type
//	type         : INTEGER | REAL
//	procDecl     : PROCEDURE ID (LPAREN params (SEMI params)* RPAREN)? SEMI block SEMI
//	params       : ID (COMMA ID)* COLON type
//	compound     : BEGIN statement (SEMI statement)* END
//	statement    : compound | ID ASSIGN expr | empty
//	expr         : term ((PLUS | MINUS) term)*
//	term         : factor ((MUL | INTEGER_DIV | FLOAT_DIV) factor)*
//	factor       : (PLUS | MINUS) factor | INTEGER_CONST | REAL_CONST
//	             | LPAREN expr RPAREN | ID
type Parser struct {
	src TokenSource
	cur token.Token
}

func New(src TokenSource) *Parser {
	return &Parser{src: src}
}

// ParseString lexes and parses a whole program.
func ParseString(src string, opts ...paslex.Option) (*ast.Program, error) {
	return New(paslex.New(src, opts...)).ParseProgram()
}

// ParseExpressionString lexes and parses a standalone expression.
func ParseExpressionString(src string, opts ...paslex.Option) (ast.Node, error) {
	return New(paslex.New(src, opts...)).ParseExpression()
}

// ParseProgram parses a complete program; nothing may follow its final DOT.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog, err := p.program()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpression parses a single expression spanning the whole input.
func (p *Parser) ParseExpression() (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) advance() error {
	tok, err := p.src.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// eat consumes the current token if its kind is one of kinds.
func (p *Parser) eat(kinds ...token.Kind) (token.Token, error) {
	tok := p.cur
	if !slices.Contains(kinds, tok.Kind) {
		return tok, &ParseError{Got: tok, Expected: kinds}
	}
	if err := p.advance(); err != nil {
		return tok, err
	}
	return tok, nil
}

func (p *Parser) expectEnd() error {
	if p.cur.Kind != token.EOF {
		return &ParseError{Got: p.cur, Expected: []token.Kind{token.EOF}, Reason: "trailing input"}
	}
	return nil
}

func (p *Parser) program() (*ast.Program, error) {
	tok, err := p.eat(token.Program)
	if err != nil {
		return nil, err
	}
	name, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Semi); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Dot); err != nil {
		return nil, err
	}
	return &ast.Program{Name: name.Text, Block: block, Token: tok}, nil
}

func (p *Parser) block() (*ast.Block, error) {
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	body, err := p.compound()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Declarations: decls, Compound: body}, nil
}

func (p *Parser) declarations() ([]ast.Node, error) {
	var decls []ast.Node

	if p.cur.Kind == token.Var {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			vars, err := p.varDecl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, vars...)
			if _, err := p.eat(token.Semi); err != nil {
				return nil, err
			}
			if p.cur.Kind != token.ID {
				break
			}
		}
	}

	for p.cur.Kind == token.Procedure {
		proc, err := p.procDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, proc)
	}
	return decls, nil
}

// idList parses `ID (COMMA ID)* COLON type`.
func (p *Parser) idList() ([]*ast.Variable, *ast.TypeRef, error) {
	first, err := p.eat(token.ID)
	if err != nil {
		return nil, nil, err
	}
	vars := []*ast.Variable{{Token: first}}
	for p.cur.Kind == token.Comma {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		id, err := p.eat(token.ID)
		if err != nil {
			return nil, nil, err
		}
		vars = append(vars, &ast.Variable{Token: id})
	}
	if _, err := p.eat(token.Colon); err != nil {
		return nil, nil, err
	}
	typ, err := p.eat(token.Integer, token.Real)
	if err != nil {
		return nil, nil, err
	}
	return vars, &ast.TypeRef{Token: typ}, nil
}

func (p *Parser) varDecl() ([]ast.Node, error) {
	vars, typ, err := p.idList()
	if err != nil {
		return nil, err
	}
	decls := make([]ast.Node, len(vars))
	for i, v := range vars {
		// Each declaration owns its own TypeRef.
		decls[i] = &ast.VarDecl{Var: v, Type: &ast.TypeRef{Token: typ.Token}}
	}
	return decls, nil
}

func (p *Parser) procDecl() (*ast.Procedure, error) {
	tok, err := p.eat(token.Procedure)
	if err != nil {
		return nil, err
	}
	name, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}

	var params []*ast.Param
	if p.cur.Kind == token.LParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			vars, typ, err := p.idList()
			if err != nil {
				return nil, err
			}
			for _, v := range vars {
				params = append(params, &ast.Param{Var: v, Type: &ast.TypeRef{Token: typ.Token}})
			}
			if p.cur.Kind != token.Semi {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if _, err := p.eat(token.RParen); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(token.Semi); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Procedure{Name: name.Text, Params: params, Block: block, Token: tok}, nil
}

func (p *Parser) compound() (*ast.Compound, error) {
	tok, err := p.eat(token.Begin)
	if err != nil {
		return nil, err
	}
	children, err := p.statementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.End); err != nil {
		return nil, err
	}
	return &ast.Compound{Children: children, Token: tok}, nil
}

func (p *Parser) statementList() ([]ast.Node, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmts := []ast.Node{stmt}
	for p.cur.Kind == token.Semi {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if p.cur.Kind == token.ID {
		return nil, &ParseError{Got: p.cur, Expected: []token.Kind{token.Semi, token.End}, Reason: "missing ';' between statements"}
	}
	return stmts, nil
}

func (p *Parser) statement() (ast.Node, error) {
	switch p.cur.Kind {
	case token.Begin:
		return p.compound()
	case token.ID:
		return p.assignment()
	default:
		return &ast.NoOp{At: p.cur.Pos}, nil
	}
}

func (p *Parser) assignment() (*ast.Assign, error) {
	id, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}
	tok, err := p.eat(token.Assign)
	if err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Left: &ast.Variable{Token: id}, Right: value, Token: tok}, nil
}

// binary folds `operand (op operand)*` into a left-associative chain.
func (p *Parser) binary(operand func() (ast.Node, error), ops ...token.Kind) (ast.Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for slices.Contains(ops, p.cur.Kind) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) expr() (ast.Node, error) {
	return p.binary(p.term, token.Plus, token.Minus)
}

func (p *Parser) term() (ast.Node, error) {
	return p.binary(p.factor, token.Mul, token.IntegerDiv, token.FloatDiv)
}

func (p *Parser) factor() (ast.Node, error) {
	tok := p.cur
	switch tok.Kind {
	case token.Plus, token.Minus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: tok, Operand: operand}, nil
	case token.IntegerConst, token.RealConst:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Num{Token: tok}, nil
	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.ID:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Variable{Token: tok}, nil
	}
	return nil, &ParseError{
		Got:      tok,
		Expected: []token.Kind{token.Plus, token.Minus, token.IntegerConst, token.RealConst, token.LParen, token.ID},
	}
}
