package ast

// Dump converts a tree into nested maps and slices, tagging every node with
// its variant under "node". The result encodes cleanly as JSON or YAML.
func Dump(n Node) (map[string]any, error) {
	out, err := Walk[map[string]any](dumper{}, n)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type dumper struct{}

func (d dumper) all(nodes []Node) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		m, err := Walk[map[string]any](d, n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (d dumper) VisitProgram(n *Program) (map[string]any, error) {
	block, err := d.VisitBlock(n.Block)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "Program", "name": n.Name, "block": block}, nil
}

func (d dumper) VisitBlock(n *Block) (map[string]any, error) {
	decls, err := d.all(n.Declarations)
	if err != nil {
		return nil, err
	}
	body, err := d.VisitCompound(n.Compound)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "Block", "declarations": decls, "compound": body}, nil
}

func (d dumper) VisitVarDecl(n *VarDecl) (map[string]any, error) {
	return map[string]any{"node": "VarDecl", "name": n.Var.Name(), "type": n.Type.Name()}, nil
}

func (d dumper) VisitTypeRef(n *TypeRef) (map[string]any, error) {
	return map[string]any{"node": "TypeRef", "name": n.Name()}, nil
}

func (d dumper) VisitProcedure(n *Procedure) (map[string]any, error) {
	params := make([]map[string]any, 0, len(n.Params))
	for _, p := range n.Params {
		m, err := d.VisitParam(p)
		if err != nil {
			return nil, err
		}
		params = append(params, m)
	}
	block, err := d.VisitBlock(n.Block)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "Procedure", "name": n.Name, "params": params, "block": block}, nil
}

func (d dumper) VisitParam(n *Param) (map[string]any, error) {
	return map[string]any{"node": "Param", "name": n.Var.Name(), "type": n.Type.Name()}, nil
}

func (d dumper) VisitCompound(n *Compound) (map[string]any, error) {
	children, err := d.all(n.Children)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "Compound", "children": children}, nil
}

func (d dumper) VisitAssign(n *Assign) (map[string]any, error) {
	right, err := Walk[map[string]any](d, n.Right)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "Assign", "name": n.Left.Name(), "value": right}, nil
}

func (d dumper) VisitBinOp(n *BinOp) (map[string]any, error) {
	left, err := Walk[map[string]any](d, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := Walk[map[string]any](d, n.Right)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "BinOp", "op": n.Op.Kind.String(), "left": left, "right": right}, nil
}

func (d dumper) VisitUnaryOp(n *UnaryOp) (map[string]any, error) {
	operand, err := Walk[map[string]any](d, n.Operand)
	if err != nil {
		return nil, err
	}
	return map[string]any{"node": "UnaryOp", "op": n.Op.Kind.String(), "operand": operand}, nil
}

func (d dumper) VisitNum(n *Num) (map[string]any, error) {
	if n.IsReal() {
		return map[string]any{"node": "Num", "real": n.Token.Real}, nil
	}
	return map[string]any{"node": "Num", "integer": n.Token.Int}, nil
}

func (d dumper) VisitVariable(n *Variable) (map[string]any, error) {
	return map[string]any{"node": "Variable", "name": n.Name()}, nil
}

func (d dumper) VisitNoOp(n *NoOp) (map[string]any, error) {
	return map[string]any{"node": "NoOp"}, nil
}
