package compiler

import (
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/minipas/lib/ast"
)

func (ctx *Context) compileAll(nodes ...ast.Node) error {
	for _, n := range nodes {
		if _, err := ctx.compile(n); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) VisitProgram(n *ast.Program) (value.Value, error) {
	return nil, ctx.compileAll(n.Block)
}

// VisitBlock emits only the statement part. Procedures are never called, so
// their bodies produce no code.
func (ctx *Context) VisitBlock(n *ast.Block) (value.Value, error) {
	return nil, ctx.compileAll(n.Compound)
}

func (ctx *Context) VisitCompound(n *ast.Compound) (value.Value, error) {
	return nil, ctx.compileAll(n.Children...)
}

func (ctx *Context) VisitAssign(n *ast.Assign) (value.Value, error) {
	v, err := ctx.compile(n.Right)
	if err != nil {
		return nil, err
	}
	kind := kindOf(v)
	ctx.NewStore(v, ctx.slot(n.Left.Name(), kind))
	ctx.kinds[n.Left.Name()] = kind
	return nil, nil
}

func (ctx *Context) VisitVarDecl(*ast.VarDecl) (value.Value, error)     { return nil, nil }
func (ctx *Context) VisitTypeRef(*ast.TypeRef) (value.Value, error)     { return nil, nil }
func (ctx *Context) VisitProcedure(*ast.Procedure) (value.Value, error) { return nil, nil }
func (ctx *Context) VisitParam(*ast.Param) (value.Value, error)         { return nil, nil }
func (ctx *Context) VisitNoOp(*ast.NoOp) (value.Value, error)           { return nil, nil }
