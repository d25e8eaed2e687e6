package calc

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestValueLookup(t *testing.T) {
	vals := NewValueLookup()

	val1 := constant.NewInt(types.I64, 1)
	val2 := constant.NewInt(types.I64, 2)

	vals.Set("x", val1)
	vals.Set("y", val2)

	assert.Equal(t, val1, vals.Get("x"))
	assert.Equal(t, val2, vals.Get("y"))
	assert.Nil(t, vals.Get("z"))
}

func TestValueLookupInherit(t *testing.T) {
	vals1 := NewValueLookup()

	val1 := constant.NewInt(types.I64, 1)
	val2 := constant.NewInt(types.I64, 2)

	vals1.Set("x", val1)
	vals1.Set("y", val2)

	vals2 := NewValueLookup()

	val3 := constant.NewInt(types.I64, 3)
	val4 := constant.NewInt(types.I64, 4)

	vals2.Set("x", val3)
	vals2.Set("w", val4)

	vals1.Inherit(vals2)

	assert.Equal(t, val3, vals1.Get("x"))
	assert.Equal(t, val2, vals1.Get("y"))
	assert.Equal(t, val4, vals1.Get("w"))
}

func TestBuiltinsAreRegistered(t *testing.T) {
	b := NewLLVMIRBuilder()

	pow := b.values.Get(builtinPrefix + "ipow")
	require.NotNil(t, pow)
	assert.Equal(t, "@ipow", pow.Ident())

	// A variable named like the builtin does not shadow it.
	assert.Nil(t, b.values.Get("ipow"))
}

func TestLLVMGenerator(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
	}{
		{
			"7",
			[]string{"define i64 @poly() {", "ret i64 7"},
		},
		{
			"x",
			[]string{"define i64 @poly(i64 %x) {", "ret i64 %x"},
		},
		{
			"2*(x + 3)",
			[]string{"define i64 @poly(i64 %x) {", "mul i64 2, %x", "add i64", ", 6"},
		},
		{
			"y*y + x",
			[]string{"define i64 @poly(i64 %x, i64 %y) {", "call i64 @ipow(i64 %y, i64 2)"},
		},
		{
			"3/x",
			[]string{"sdiv i64 3, %x"},
		},
		{
			"x - x + 4",
			[]string{"define i64 @poly() {", "ret i64 4"},
		},
	}

	e := NewEngine(DefaultConfig())
	for _, c := range cases {
		mod, err := e.EmitIR(c.data)
		require.NoError(t, err, c.data)

		out := mod.String()
		assert.Contains(t, out, "define i64 @ipow(i64 %base, i64 %exp) {", c.data)
		for _, want := range c.expect {
			assert.Contains(t, out, want, c.data)
		}
	}
}

func TestLLVMGeneratorPropagatesErrors(t *testing.T) {
	_, err := NewEngine(DefaultConfig()).EmitIR("1/0")
	assert.ErrorIs(t, err, ErrDivisionByZero)
}
