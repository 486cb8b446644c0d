package compiler

import (
	"fmt"
	"slices"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/minipas/lib/interpreter"
)

// stringPtr returns an i8* to a private NUL-terminated copy of s. Equal
// strings share one global.
func (c *Compiler) stringPtr(s string) constant.Constant {
	g, ok := c.strings[s]
	if !ok {
		g = c.Module.NewGlobalDef(fmt.Sprintf("str.%d", len(c.strings)), constant.NewCharArrayFromString(s+"\x00"))
		g.Immutable = true
		c.strings[s] = g
	}
	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}

func (ctx *Context) print(format string, args ...value.Value) {
	ctx.NewCall(ctx.printf, append([]value.Value{ctx.stringPtr(format)}, args...)...)
}

// guard continues in a fresh block when ok holds and otherwise branches to a
// block that reports msg at pos and returns 1 from main.
func (ctx *Context) guard(ok value.Value, pos lexer.Position, msg string) {
	trap := NewContext(ctx.newBlock("trap"), ctx.Compiler)
	trap.print("%s\n", ctx.stringPtr(fmt.Sprintf("%s: %s", pos, msg)))
	trap.NewRet(constant.NewInt(types.I32, 1))

	cont := ctx.newBlock("ok")
	ctx.NewCondBr(ok, cont, trap.Block)
	ctx.Block = cont
}

// printMemory prints every assigned variable as "name = value", sorted by
// name, using the kind the variable holds at the end of the program.
func (ctx *Context) printMemory() {
	names := make([]string, 0, len(ctx.kinds))
	for name := range ctx.kinds {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		kind := ctx.kinds[name]
		format := name + " = %lld\n"
		if kind == interpreter.Real {
			format = name + " = %g\n"
		}
		ctx.print(format, ctx.NewLoad(llType(kind), ctx.slot(name, kind)))
	}
}

// Globals lists the variable slots of m in definition order.
func Globals(m *ir.Module) []string {
	var names []string
	for _, g := range m.Globals {
		if !g.Immutable {
			names = append(names, g.Name())
		}
	}
	return names
}
