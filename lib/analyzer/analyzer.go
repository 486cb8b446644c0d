package analyzer

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/minipas/lib/ast"
)

// NameError reports an undeclared identifier, a redeclaration within one
// scope or an unknown type name.
type NameError struct {
	Pos    lexer.Position
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *NameError) Message() string {
	return fmt.Sprintf("%s %q", e.Reason, e.Name)
}

func (e *NameError) Position() lexer.Position { return e.Pos }

const (
	ReasonUndeclared  = "undeclared identifier"
	ReasonDuplicate   = "duplicate identifier"
	ReasonUnknownType = "unknown type"
)

const GlobalScope = "global"

// Report lists every scope in the order it was closed, innermost first.
type Report struct {
	Scopes []ScopeSummary `json:"scopes" yaml:"scopes"`
}

// Analyze checks every name in prog against a chain of lexical scopes. It
// stops at the first NameError.
func Analyze(prog *ast.Program) (*Report, error) {
	a := &analyzer{scopes: NewScopes(), report: &Report{}}
	if _, err := a.VisitProgram(prog); err != nil {
		return nil, err
	}
	return a.report, nil
}

type none = struct{}

type analyzer struct {
	scopes *Scopes
	report *Report
}

func (a *analyzer) walk(n ast.Node) error {
	_, err := ast.Walk[none](a, n)
	return err
}

func (a *analyzer) close() {
	a.report.Scopes = append(a.report.Scopes, a.scopes.Pop())
}

func (a *analyzer) VisitProgram(n *ast.Program) (none, error) {
	global := a.scopes.Push(GlobalScope)
	a.scopes.Insert(global, NewBuiltinType("INTEGER"))
	a.scopes.Insert(global, NewBuiltinType("REAL"))
	defer a.close()

	return none{}, a.walk(n.Block)
}

func (a *analyzer) VisitBlock(n *ast.Block) (none, error) {
	for _, decl := range n.Declarations {
		if err := a.walk(decl); err != nil {
			return none{}, err
		}
	}
	return none{}, a.walk(n.Compound)
}

// resolveType finds the type symbol named by ref anywhere in the chain.
func (a *analyzer) resolveType(ref *ast.TypeRef) (*BuiltinType, error) {
	sym, ok := a.scopes.Lookup(ref.Name())
	if typ, isType := sym.(*BuiltinType); ok && isType {
		return typ, nil
	}
	return nil, &NameError{Pos: ref.Pos(), Name: ref.Name(), Reason: ReasonUnknownType}
}

// declare inserts a variable into the current scope.
func (a *analyzer) declare(v *ast.Variable, ref *ast.TypeRef) (*VarSymbol, error) {
	typ, err := a.resolveType(ref)
	if err != nil {
		return nil, err
	}
	sym := NewVarSymbol(v.Name(), typ)
	if !a.scopes.Insert(a.scopes.Current(), sym) {
		return nil, &NameError{Pos: v.Pos(), Name: v.Name(), Reason: ReasonDuplicate}
	}
	return sym, nil
}

func (a *analyzer) VisitVarDecl(n *ast.VarDecl) (none, error) {
	_, err := a.declare(n.Var, n.Type)
	return none{}, err
}

func (a *analyzer) VisitTypeRef(n *ast.TypeRef) (none, error) {
	_, err := a.resolveType(n)
	return none{}, err
}

func (a *analyzer) VisitParam(n *ast.Param) (none, error) {
	_, err := a.declare(n.Var, n.Type)
	return none{}, err
}

func (a *analyzer) VisitProcedure(n *ast.Procedure) (none, error) {
	enclosing := a.scopes.Current()
	if _, exists := a.scopes.LookupLocal(n.Name); exists {
		return none{}, &NameError{Pos: n.Pos(), Name: n.Name, Reason: ReasonDuplicate}
	}

	a.scopes.Push(n.Name)
	defer a.close()

	params := make([]*VarSymbol, 0, len(n.Params))
	for _, p := range n.Params {
		sym, err := a.declare(p.Var, p.Type)
		if err != nil {
			return none{}, err
		}
		params = append(params, sym)
	}

	// Registered before the body so the procedure can see itself.
	a.scopes.Insert(enclosing, NewProcSymbol(n.Name, params))

	return none{}, a.walk(n.Block)
}

func (a *analyzer) VisitCompound(n *ast.Compound) (none, error) {
	for _, child := range n.Children {
		if err := a.walk(child); err != nil {
			return none{}, err
		}
	}
	return none{}, nil
}

func (a *analyzer) VisitAssign(n *ast.Assign) (none, error) {
	if _, err := a.VisitVariable(n.Left); err != nil {
		return none{}, err
	}
	return none{}, a.walk(n.Right)
}

func (a *analyzer) VisitBinOp(n *ast.BinOp) (none, error) {
	if err := a.walk(n.Left); err != nil {
		return none{}, err
	}
	return none{}, a.walk(n.Right)
}

func (a *analyzer) VisitUnaryOp(n *ast.UnaryOp) (none, error) {
	return none{}, a.walk(n.Operand)
}

func (a *analyzer) VisitNum(*ast.Num) (none, error) {
	return none{}, nil
}

// VisitVariable only checks that the name exists. Any symbol kind satisfies
// it, including a procedure.
func (a *analyzer) VisitVariable(n *ast.Variable) (none, error) {
	if _, ok := a.scopes.Lookup(n.Name()); !ok {
		return none{}, &NameError{Pos: n.Pos(), Name: n.Name(), Reason: ReasonUndeclared}
	}
	return none{}, nil
}

func (a *analyzer) VisitNoOp(*ast.NoOp) (none, error) {
	return none{}, nil
}
