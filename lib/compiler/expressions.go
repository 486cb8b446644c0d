package compiler

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/minipas/lib/ast"
	"github.com/vyPal/minipas/lib/interpreter"
	"github.com/vyPal/minipas/lib/token"
)

func (ctx *Context) VisitNum(n *ast.Num) (value.Value, error) {
	if n.IsReal() {
		return constant.NewFloat(types.Double, n.Token.Real), nil
	}
	return constant.NewInt(types.I64, n.Token.Int), nil
}

func (ctx *Context) VisitVariable(n *ast.Variable) (value.Value, error) {
	kind, ok := ctx.kinds[n.Name()]
	if !ok {
		return nil, &interpreter.UndefinedError{Pos: n.Pos(), Name: n.Name()}
	}
	return ctx.NewLoad(llType(kind), ctx.slot(n.Name(), kind)), nil
}

func (ctx *Context) VisitUnaryOp(n *ast.UnaryOp) (value.Value, error) {
	v, err := ctx.compile(n.Operand)
	if err != nil {
		return nil, err
	}
	if n.Op.Kind == token.Plus {
		return v, nil
	}
	if kindOf(v) == interpreter.Real {
		return ctx.NewFNeg(v), nil
	}
	return ctx.NewSub(constant.NewInt(types.I64, 0), v), nil
}

func (ctx *Context) VisitBinOp(n *ast.BinOp) (value.Value, error) {
	left, err := ctx.compile(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := ctx.compile(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.Plus, token.Minus, token.Mul:
		if kindOf(left) == interpreter.Integer && kindOf(right) == interpreter.Integer {
			switch n.Op.Kind {
			case token.Plus:
				return ctx.NewAdd(left, right), nil
			case token.Minus:
				return ctx.NewSub(left, right), nil
			default:
				return ctx.NewMul(left, right), nil
			}
		}
		l, r := ctx.toReal(left), ctx.toReal(right)
		switch n.Op.Kind {
		case token.Plus:
			return ctx.NewFAdd(l, r), nil
		case token.Minus:
			return ctx.NewFSub(l, r), nil
		default:
			return ctx.NewFMul(l, r), nil
		}

	case token.IntegerDiv:
		l := ctx.toInt(left, n.Left.Pos())
		r := ctx.toInt(right, n.Right.Pos())
		return ctx.intDiv(l, r, n.Op.Pos), nil

	case token.FloatDiv:
		l, r := ctx.toReal(left), ctx.toReal(right)
		if ctx.opts.RealDivision != interpreter.DivisionIEEE {
			nonZero := ctx.NewFCmp(enum.FPredUNE, r, constant.NewFloat(types.Double, 0))
			ctx.guard(nonZero, n.Op.Pos, "division by zero")
		}
		return ctx.NewFDiv(l, r), nil
	}
	return nil, fmt.Errorf("%s: unsupported operator %s", n.Op.Pos, n.Op.Kind)
}

// intDiv emits a truncating division. MinInt64 DIV -1 wraps to MinInt64
// instead of reaching sdiv, where it is undefined.
func (ctx *Context) intDiv(l, r value.Value, pos lexer.Position) value.Value {
	zero := constant.NewInt(types.I64, 0)
	minusOne := constant.NewInt(types.I64, -1)

	ctx.guard(ctx.NewICmp(enum.IPredNE, r, zero), pos, "integer division by zero")

	isMinusOne := ctx.NewICmp(enum.IPredEQ, r, minusOne)
	divisor := ctx.NewSelect(isMinusOne, constant.NewInt(types.I64, 1), r)
	quotient := ctx.NewSDiv(l, divisor)
	return ctx.NewSelect(isMinusOne, ctx.NewSub(zero, l), quotient)
}

func (ctx *Context) toReal(v value.Value) value.Value {
	if kindOf(v) == interpreter.Real {
		return v
	}
	return ctx.NewSIToFP(v, types.Double)
}

// toInt truncates a REAL toward zero, trapping when the value is NaN or
// outside the INTEGER range.
func (ctx *Context) toInt(v value.Value, pos lexer.Position) value.Value {
	if kindOf(v) == interpreter.Integer {
		return v
	}
	lower := ctx.NewFCmp(enum.FPredOGE, v, constant.NewFloat(types.Double, math.MinInt64))
	upper := ctx.NewFCmp(enum.FPredOLT, v, constant.NewFloat(types.Double, -math.MinInt64))
	ctx.guard(ctx.NewAnd(lower, upper), pos, "REAL value cannot be converted to INTEGER")
	return ctx.NewFPToSI(v, types.I64)
}
