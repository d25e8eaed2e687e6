package calc

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

func defineBuiltins(b *LLVMIRBuilder) {
	defineBuiltinFunc(b, "ipow", builtinPow)
}

type funcDefinition = func(mod *ir.Module) *ir.Func

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b.mod)
	f.SetName(name)
	b.values.Set(builtinPrefix+name, f)
}

// builtinPow defines i64 ipow(i64 base, i64 exp) by repeated multiplication.
// Exponents below one yield 1.
func builtinPow(mod *ir.Module) *ir.Func {
	base := ir.NewParam("base", types.I64)
	exp := ir.NewParam("exp", types.I64)
	f := mod.NewFunc("", types.I64, base, exp)

	entry := f.NewBlock("entry")
	loop := f.NewBlock("loop")
	body := f.NewBlock("body")
	done := f.NewBlock("done")

	zero := constant.NewInt(types.I64, 0)
	one := constant.NewInt(types.I64, 1)

	entry.NewBr(loop)

	acc := loop.NewPhi(ir.NewIncoming(one, entry))
	n := loop.NewPhi(ir.NewIncoming(exp, entry))
	cond := loop.NewICmp(enum.IPredSGT, n, zero)
	loop.NewCondBr(cond, body, done)

	nextAcc := body.NewMul(acc, base)
	nextN := body.NewSub(n, one)
	body.NewBr(loop)

	acc.Incs = append(acc.Incs, ir.NewIncoming(nextAcc, body))
	n.Incs = append(n.Incs, ir.NewIncoming(nextN, body))

	done.NewRet(acc)

	return f
}
