package analyzer

import (
	"fmt"
	"strings"
)

// Symbol is a named entity recorded in a scope. Symbols are not modified
// after insertion.
type Symbol interface {
	Name() string
	String() string
}

// BuiltinType is INTEGER or REAL.
type BuiltinType struct {
	name string
}

func NewBuiltinType(name string) *BuiltinType {
	return &BuiltinType{name: name}
}

func (t *BuiltinType) Name() string   { return t.name }
func (t *BuiltinType) String() string { return t.name }

type VarSymbol struct {
	name string
	Type *BuiltinType
}

func NewVarSymbol(name string, typ *BuiltinType) *VarSymbol {
	return &VarSymbol{name: name, Type: typ}
}

func (v *VarSymbol) Name() string { return v.name }

func (v *VarSymbol) String() string {
	return fmt.Sprintf("%s : %s", v.name, v.Type.Name())
}

// ProcSymbol keeps its parameters in declaration order.
type ProcSymbol struct {
	name   string
	Params []*VarSymbol
}

func NewProcSymbol(name string, params []*VarSymbol) *ProcSymbol {
	return &ProcSymbol{name: name, Params: params}
}

func (p *ProcSymbol) Name() string { return p.name }

func (p *ProcSymbol) String() string {
	params := make([]string, len(p.Params))
	for i, param := range p.Params {
		params[i] = param.String()
	}
	return fmt.Sprintf("PROCEDURE %s(%s)", p.name, strings.Join(params, "; "))
}

func symbolKind(sym Symbol) string {
	switch sym.(type) {
	case *BuiltinType:
		return "type"
	case *VarSymbol:
		return "variable"
	case *ProcSymbol:
		return "procedure"
	default:
		return "unknown"
	}
}
