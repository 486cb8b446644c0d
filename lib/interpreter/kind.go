package interpreter

import (
	"fmt"

	"github.com/vyPal/minipas/lib/ast"
	"github.com/vyPal/minipas/lib/token"
)

// KindOf reports the static kind of an expression: the kind a literal was
// written with, the kind a variable currently holds, INTEGER for DIV, REAL
// for `/`, and for + - * REAL when either side is REAL.
func (in *Interpreter) KindOf(expr ast.Node) (Kind, error) {
	return ast.Walk[Kind](kinder{in.memory}, expr)
}

type kinder struct {
	memory Memory
}

func (k kinder) notExpr(n ast.Node) (Kind, error) {
	return Integer, fmt.Errorf("%s: %T is not an expression", n.Pos(), n)
}

func (k kinder) VisitProgram(n *ast.Program) (Kind, error)     { return k.notExpr(n) }
func (k kinder) VisitBlock(n *ast.Block) (Kind, error)         { return k.notExpr(n) }
func (k kinder) VisitVarDecl(n *ast.VarDecl) (Kind, error)     { return k.notExpr(n) }
func (k kinder) VisitTypeRef(n *ast.TypeRef) (Kind, error)     { return k.notExpr(n) }
func (k kinder) VisitProcedure(n *ast.Procedure) (Kind, error) { return k.notExpr(n) }
func (k kinder) VisitParam(n *ast.Param) (Kind, error)         { return k.notExpr(n) }
func (k kinder) VisitCompound(n *ast.Compound) (Kind, error)   { return k.notExpr(n) }
func (k kinder) VisitAssign(n *ast.Assign) (Kind, error)       { return k.notExpr(n) }
func (k kinder) VisitNoOp(n *ast.NoOp) (Kind, error)           { return k.notExpr(n) }

func (k kinder) VisitNum(n *ast.Num) (Kind, error) {
	if n.IsReal() {
		return Real, nil
	}
	return Integer, nil
}

func (k kinder) VisitVariable(n *ast.Variable) (Kind, error) {
	v, ok := k.memory[n.Name()]
	if !ok {
		return Integer, &UndefinedError{Pos: n.Pos(), Name: n.Name()}
	}
	return v.Kind(), nil
}

func (k kinder) VisitUnaryOp(n *ast.UnaryOp) (Kind, error) {
	return ast.Walk[Kind](k, n.Operand)
}

func (k kinder) VisitBinOp(n *ast.BinOp) (Kind, error) {
	switch n.Op.Kind {
	case token.IntegerDiv:
		return Integer, nil
	case token.FloatDiv:
		return Real, nil
	}
	left, err := ast.Walk[Kind](k, n.Left)
	if err != nil {
		return Integer, err
	}
	right, err := ast.Walk[Kind](k, n.Right)
	if err != nil {
		return Integer, err
	}
	if left == Real || right == Real {
		return Real, nil
	}
	return Integer, nil
}
