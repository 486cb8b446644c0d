package ast

import "fmt"

// Visitor has one method per node variant. Every pass over the tree
// implements it, so a new variant fails to compile until each pass
// handles it.
type Visitor[T any] interface {
	VisitProgram(*Program) (T, error)
	VisitBlock(*Block) (T, error)
	VisitVarDecl(*VarDecl) (T, error)
	VisitTypeRef(*TypeRef) (T, error)
	VisitProcedure(*Procedure) (T, error)
	VisitParam(*Param) (T, error)
	VisitCompound(*Compound) (T, error)
	VisitAssign(*Assign) (T, error)
	VisitBinOp(*BinOp) (T, error)
	VisitUnaryOp(*UnaryOp) (T, error)
	VisitNum(*Num) (T, error)
	VisitVariable(*Variable) (T, error)
	VisitNoOp(*NoOp) (T, error)
}

// Walk dispatches n to the matching Visitor method.
func Walk[T any](v Visitor[T], n Node) (T, error) {
	switch n := n.(type) {
	case *Program:
		return v.VisitProgram(n)
	case *Block:
		return v.VisitBlock(n)
	case *VarDecl:
		return v.VisitVarDecl(n)
	case *TypeRef:
		return v.VisitTypeRef(n)
	case *Procedure:
		return v.VisitProcedure(n)
	case *Param:
		return v.VisitParam(n)
	case *Compound:
		return v.VisitCompound(n)
	case *Assign:
		return v.VisitAssign(n)
	case *BinOp:
		return v.VisitBinOp(n)
	case *UnaryOp:
		return v.VisitUnaryOp(n)
	case *Num:
		return v.VisitNum(n)
	case *Variable:
		return v.VisitVariable(n)
	case *NoOp:
		return v.VisitNoOp(n)
	}
	// Only reachable with a nil Node.
	var zero T
	return zero, fmt.Errorf("ast: cannot walk %T", n)
}
