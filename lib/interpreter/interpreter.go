package interpreter

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/minipas/lib/ast"
	"github.com/vyPal/minipas/lib/token"
)

// ArithmeticError reports a division by zero or a REAL that cannot be
// truncated to an INTEGER.
type ArithmeticError struct {
	Pos lexer.Position
	Msg string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *ArithmeticError) Message() string          { return e.Msg }
func (e *ArithmeticError) Position() lexer.Position { return e.Pos }

// UndefinedError reports a read of a variable that holds no value.
type UndefinedError struct {
	Pos  lexer.Position
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *UndefinedError) Message() string {
	return fmt.Sprintf("variable %q has no value", e.Name)
}

func (e *UndefinedError) Position() lexer.Position { return e.Pos }

// DivisionPolicy decides what `/` does with a zero divisor. DIV by zero is
// always an ArithmeticError.
type DivisionPolicy string

const (
	DivisionError DivisionPolicy = "error"
	DivisionIEEE  DivisionPolicy = "ieee"
)

func ParseDivisionPolicy(s string) (DivisionPolicy, error) {
	switch p := DivisionPolicy(s); p {
	case DivisionError, DivisionIEEE:
		return p, nil
	case "":
		return DivisionError, nil
	default:
		return "", fmt.Errorf("unknown real division policy %q (want %q or %q)", s, DivisionError, DivisionIEEE)
	}
}

type Option func(*Interpreter)

func WithRealDivision(p DivisionPolicy) Option {
	return func(in *Interpreter) { in.realDiv = p }
}

// Interpreter executes a resolved tree against a flat Memory. Nested
// procedure scopes exist only for name resolution; at run time every
// assignment lands in the same Memory.
type Interpreter struct {
	memory  Memory
	realDiv DivisionPolicy
}

func New(opts ...Option) *Interpreter {
	in := &Interpreter{memory: Memory{}, realDiv: DivisionError}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes prog in a fresh Memory and returns it.
func (in *Interpreter) Run(prog *ast.Program) (Memory, error) {
	in.memory = Memory{}
	if _, err := in.VisitProgram(prog); err != nil {
		return nil, err
	}
	return in.memory, nil
}

// Eval computes a standalone expression against the current Memory.
func (in *Interpreter) Eval(expr ast.Node) (Value, error) {
	return in.eval(expr)
}

func (in *Interpreter) Memory() Memory {
	return in.memory
}

func (in *Interpreter) eval(n ast.Node) (Value, error) {
	return ast.Walk[Value](in, n)
}

func (in *Interpreter) exec(nodes ...ast.Node) error {
	for _, n := range nodes {
		if _, err := in.eval(n); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) VisitProgram(n *ast.Program) (Value, error) {
	return Value{}, in.exec(n.Block)
}

func (in *Interpreter) VisitBlock(n *ast.Block) (Value, error) {
	if err := in.exec(n.Declarations...); err != nil {
		return Value{}, err
	}
	return Value{}, in.exec(n.Compound)
}

func (in *Interpreter) VisitVarDecl(*ast.VarDecl) (Value, error)     { return Value{}, nil }
func (in *Interpreter) VisitTypeRef(*ast.TypeRef) (Value, error)     { return Value{}, nil }
func (in *Interpreter) VisitProcedure(*ast.Procedure) (Value, error) { return Value{}, nil }
func (in *Interpreter) VisitParam(*ast.Param) (Value, error)         { return Value{}, nil }
func (in *Interpreter) VisitNoOp(*ast.NoOp) (Value, error)           { return Value{}, nil }

func (in *Interpreter) VisitCompound(n *ast.Compound) (Value, error) {
	return Value{}, in.exec(n.Children...)
}

func (in *Interpreter) VisitAssign(n *ast.Assign) (Value, error) {
	v, err := in.eval(n.Right)
	if err != nil {
		return Value{}, err
	}
	in.memory[n.Left.Name()] = v
	return Value{}, nil
}

func (in *Interpreter) VisitNum(n *ast.Num) (Value, error) {
	if n.IsReal() {
		return RealValue(n.Token.Real), nil
	}
	return IntValue(n.Token.Int), nil
}

func (in *Interpreter) VisitVariable(n *ast.Variable) (Value, error) {
	v, ok := in.memory[n.Name()]
	if !ok {
		return Value{}, &UndefinedError{Pos: n.Pos(), Name: n.Name()}
	}
	return v, nil
}

func (in *Interpreter) VisitUnaryOp(n *ast.UnaryOp) (Value, error) {
	v, err := in.eval(n.Operand)
	if err != nil {
		return Value{}, err
	}
	if n.Op.Kind == token.Plus {
		return v, nil
	}
	if v.kind == Integer {
		return IntValue(-v.i), nil
	}
	return RealValue(-v.Float()), nil
}

// VisitBinOp picks INTEGER or REAL arithmetic from the kinds of the operand
// values, then coerces each operand to that kind. A value's kind always
// equals KindOf of the expression that produced it.
func (in *Interpreter) VisitBinOp(n *ast.BinOp) (Value, error) {
	l, err := in.eval(n.Left)
	if err != nil {
		return Value{}, err
	}
	r, err := in.eval(n.Right)
	if err != nil {
		return Value{}, err
	}

	switch n.Op.Kind {
	case token.Plus, token.Minus, token.Mul:
		if l.kind == Integer && r.kind == Integer {
			return IntValue(intArith(n.Op.Kind, l.i, r.i)), nil
		}
		return RealValue(realArith(n.Op.Kind, l.Float(), r.Float())), nil

	case token.IntegerDiv:
		a, err := truncate(l, n.Left.Pos())
		if err != nil {
			return Value{}, err
		}
		b, err := truncate(r, n.Right.Pos())
		if err != nil {
			return Value{}, err
		}
		if b == 0 {
			return Value{}, &ArithmeticError{Pos: n.Op.Pos, Msg: "integer division by zero"}
		}
		return IntValue(a / b), nil

	case token.FloatDiv:
		a, b := l.Float(), r.Float()
		if b == 0 && in.realDiv != DivisionIEEE {
			return Value{}, &ArithmeticError{Pos: n.Op.Pos, Msg: "division by zero"}
		}
		return RealValue(a / b), nil
	}
	return Value{}, fmt.Errorf("%s: unsupported operator %s", n.Op.Pos, n.Op.Kind)
}

func intArith(op token.Kind, a, b int64) int64 {
	switch op {
	case token.Plus:
		return a + b
	case token.Minus:
		return a - b
	default:
		return a * b
	}
}

func realArith(op token.Kind, a, b float64) float64 {
	switch op {
	case token.Plus:
		return a + b
	case token.Minus:
		return a - b
	default:
		return a * b
	}
}

// truncate converts v to an INTEGER, dropping any fraction toward zero.
func truncate(v Value, pos lexer.Position) (int64, error) {
	if v.kind == Integer {
		return v.i, nil
	}
	f := math.Trunc(v.f)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, &ArithmeticError{Pos: pos, Msg: fmt.Sprintf("%s cannot be converted to INTEGER", v)}
	}
	return int64(f), nil
}
