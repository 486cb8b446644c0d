// Package ast defines the syntax tree produced by the parser. Nodes form a
// strict tree and are never mutated after construction.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/minipas/lib/token"
)

// Node is implemented only by the variants declared in this package.
type Node interface {
	Pos() lexer.Position
	node()
}

type Program struct {
	Name  string
	Block *Block
	Token token.Token
}

type Block struct {
	Declarations []Node // *VarDecl and *Procedure, in source order
	Compound     *Compound
}

// VarDecl declares a single variable; `a, b : INTEGER` yields two of them.
type VarDecl struct {
	Var  *Variable
	Type *TypeRef
}

// TypeRef names a built-in type. Token is INTEGER or REAL.
type TypeRef struct {
	Token token.Token
}

func (t *TypeRef) Name() string {
	return t.Token.Kind.String()
}

type Procedure struct {
	Name   string
	Params []*Param
	Block  *Block
	Token  token.Token
}

type Param struct {
	Var  *Variable
	Type *TypeRef
}

type Compound struct {
	Children []Node
	Token    token.Token
}

type Assign struct {
	Left  *Variable
	Right Node
	Token token.Token
}

// BinOp's Op token is one of PLUS, MINUS, MUL, INTEGER_DIV, FLOAT_DIV.
type BinOp struct {
	Left  Node
	Op    token.Token
	Right Node
}

// UnaryOp's Op token is PLUS or MINUS.
type UnaryOp struct {
	Op      token.Token
	Operand Node
}

// Num keeps its literal token so the integer/real distinction survives.
type Num struct {
	Token token.Token
}

func (n *Num) IsReal() bool {
	return n.Token.Kind == token.RealConst
}

type Variable struct {
	Token token.Token
}

func (v *Variable) Name() string {
	return v.Token.Text
}

// NoOp stands for an empty statement.
type NoOp struct {
	At lexer.Position
}

func (n *Program) Pos() lexer.Position   { return n.Token.Pos }
func (n *Block) Pos() lexer.Position     { return n.Compound.Pos() }
func (n *VarDecl) Pos() lexer.Position   { return n.Var.Pos() }
func (n *TypeRef) Pos() lexer.Position   { return n.Token.Pos }
func (n *Procedure) Pos() lexer.Position { return n.Token.Pos }
func (n *Param) Pos() lexer.Position     { return n.Var.Pos() }
func (n *Compound) Pos() lexer.Position  { return n.Token.Pos }
func (n *Assign) Pos() lexer.Position    { return n.Token.Pos }
func (n *BinOp) Pos() lexer.Position     { return n.Op.Pos }
func (n *UnaryOp) Pos() lexer.Position   { return n.Op.Pos }
func (n *Num) Pos() lexer.Position       { return n.Token.Pos }
func (n *Variable) Pos() lexer.Position  { return n.Token.Pos }
func (n *NoOp) Pos() lexer.Position      { return n.At }

func (*Program) node()   {}
func (*Block) node()     {}
func (*VarDecl) node()   {}
func (*TypeRef) node()   {}
func (*Procedure) node() {}
func (*Param) node()     {}
func (*Compound) node()  {}
func (*Assign) node()    {}
func (*BinOp) node()     {}
func (*UnaryOp) node()   {}
func (*Num) node()       {}
func (*Variable) node()  {}
func (*NoOp) node()      {}
