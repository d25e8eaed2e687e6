package calc

import (
	"fmt"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// builtinPrefix keeps builtin names apart from variable names, which are letters
// only.
const builtinPrefix = "."

// PolyFuncName is the name of the function a polynomial is lowered to.
const PolyFuncName = "poly"

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Inherit(t2 *ValueLookup) {
	for k, v := range t2.vals {
		l.Set(k, v)
	}
}

// Get returns the value bound to id, or nil.
func (l *ValueLookup) Get(id string) value.Value {
	return l.vals[id]
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IR interface {
	fmt.Stringer
}

type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

// polynomial emits "i64 @poly(i64 %a, i64 %b, ...)" with one parameter per
// variable, in name order, returning the value of p.
func (b *LLVMIRBuilder) polynomial(p *Polynomial) *ir.Func {
	names := p.Variables()

	params := make([]*ir.Param, len(names))
	for i, name := range names {
		params[i] = ir.NewParam(name, types.I64)
	}

	f := b.mod.NewFunc(PolyFuncName, types.I64, params...)
	b.values.Set(PolyFuncName, f)

	prevBlock := b.block
	b.block = f.NewBlock("entry")

	prevVals := b.values
	b.values = NewValueLookup()
	b.values.Inherit(prevVals)

	defer func() {
		b.block = prevBlock
		b.values = prevVals
	}()

	for i, name := range names {
		b.values.Set(name, params[i])
	}

	c := p.Constant
	var acc value.Value
	for _, t := range p.Terms {
		if t.Exponent == 0 {
			c += t.Coefficient
			continue
		}

		if t.Coefficient == 0 {
			continue
		}

		v := b.term(t)
		if acc == nil {
			acc = v
		} else {
			acc = b.block.NewAdd(acc, v)
		}
	}

	switch {
	case acc == nil:
		acc = constant.NewInt(types.I64, c)
	case c != 0:
		acc = b.block.NewAdd(acc, constant.NewInt(types.I64, c))
	}

	b.block.NewRet(acc)
	return f
}

// term emits coef * x^exp, or coef / x^-exp for negative exponents.
func (b *LLVMIRBuilder) term(t Term) value.Value {
	exp := t.Exponent
	if exp < 0 {
		exp = -exp
	}

	pow := b.values.Get(t.Name)
	if exp != 1 {
		pow = b.block.NewCall(b.values.Get(builtinPrefix+"ipow"), pow, constant.NewInt(types.I64, exp))
	}

	coef := constant.NewInt(types.I64, t.Coefficient)
	switch {
	case t.Exponent < 0:
		return b.block.NewSDiv(coef, pow)
	case t.Coefficient == 1:
		return pow
	default:
		return b.block.NewMul(coef, pow)
	}
}

type LLVMGenerator struct {
	poly *Polynomial
}

func NewLLVMGenerator(poly *Polynomial) *LLVMGenerator {
	return &LLVMGenerator{
		poly: poly,
	}
}

func (g LLVMGenerator) Do() IR {
	builder := NewLLVMIRBuilder()
	builder.polynomial(g.poly)

	return builder.mod
}
