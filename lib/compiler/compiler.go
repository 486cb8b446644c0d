package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/minipas/lib/ast"
	"github.com/vyPal/minipas/lib/interpreter"
)

type Options struct {
	RealDivision interpreter.DivisionPolicy
}

// Context is the insertion point for the next instruction. Guards split the
// current block, so Block moves forward as code is emitted.
type Context struct {
	*ir.Block
	*Compiler
}

func NewContext(b *ir.Block, comp *Compiler) *Context {
	return &Context{
		Block:    b,
		Compiler: comp,
	}
}

type Compiler struct {
	Module *ir.Module
	Main   *ir.Func
	opts   Options

	// Each variable gets one global per kind it is ever assigned.
	slots map[string]*ir.Global
	kinds map[string]interpreter.Kind

	printf  *ir.Func
	strings map[string]*ir.Global
	blocks  int
}

func NewCompiler(opts Options) *Compiler {
	return &Compiler{
		Module:  ir.NewModule(),
		opts:    opts,
		slots:   make(map[string]*ir.Global),
		kinds:   make(map[string]interpreter.Kind),
		strings: make(map[string]*ir.Global),
	}
}

// Compile lowers a resolved program to a module whose main runs the program
// body, prints every assigned variable and returns 0. A failed division or
// conversion prints its position and returns 1.
func Compile(prog *ast.Program, opts Options) (*ir.Module, error) {
	c := NewCompiler(opts)
	if err := c.Compile(prog); err != nil {
		return nil, err
	}
	return c.Module, nil
}

func (c *Compiler) Compile(prog *ast.Program) error {
	c.Module.SourceFilename = prog.Name
	c.printf = c.Module.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	c.printf.Sig.Variadic = true

	c.Main = c.Module.NewFunc("main", types.I32)
	ctx := NewContext(c.Main.NewBlock("entry"), c)
	if _, err := ctx.VisitProgram(prog); err != nil {
		return err
	}
	ctx.printMemory()
	ctx.NewRet(constant.NewInt(types.I32, 0))
	return nil
}

func (ctx *Context) compile(n ast.Node) (value.Value, error) {
	return ast.Walk[value.Value](ctx, n)
}

// Kinds returns the kind each variable holds when main returns.
func (c *Compiler) Kinds() map[string]interpreter.Kind {
	return c.kinds
}

func llType(kind interpreter.Kind) types.Type {
	if kind == interpreter.Real {
		return types.Double
	}
	return types.I64
}

func kindOf(v value.Value) interpreter.Kind {
	if v.Type().Equal(types.Double) {
		return interpreter.Real
	}
	return interpreter.Integer
}

// slot returns the global holding name's value of the given kind, creating it
// on first use.
func (c *Compiler) slot(name string, kind interpreter.Kind) *ir.Global {
	key := name + ".i"
	var init constant.Constant = constant.NewInt(types.I64, 0)
	if kind == interpreter.Real {
		key = name + ".f"
		init = constant.NewFloat(types.Double, 0)
	}
	if g, ok := c.slots[key]; ok {
		return g
	}
	g := c.Module.NewGlobalDef(key, init)
	c.slots[key] = g
	return g
}

func (c *Compiler) newBlock(prefix string) *ir.Block {
	c.blocks++
	return c.Main.NewBlock(fmt.Sprintf("%s.%d", prefix, c.blocks))
}
