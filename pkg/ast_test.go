package calc

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestStrings(t *testing.T) {
	x := NewVariable("x")

	cases := []struct {
		data   Expr
		expect string
	}{
		{bin(num(2), BinaryMultiplication, num(3)), "2*3"},
		{bin(bin(num(2), BinaryMultiplication, num(3)), BinaryAddition, bin(num(3), BinaryDivision, num(2))), "2*3 + 3/2"},
		{bin(bin(num(2), BinarySubtraction, num(3)), BinaryDivision, bin(num(3), BinaryMultiplication, num(2))), "(2 - 3)/(3*2)"},
		{bin(num(1), BinarySubtraction, bin(num(2), BinarySubtraction, num(3))), "1 - (2 - 3)"},
		{bin(bin(num(1), BinarySubtraction, num(2)), BinarySubtraction, num(3)), "1 - 2 - 3"},
		{bin(num(2), BinaryPower, bin(num(3), BinaryPower, num(2))), "2^3^2"},
		{bin(bin(num(2), BinaryPower, num(3)), BinaryPower, num(2)), "(2^3)^2"},
		{neg(bin(num(2), BinaryPower, num(2))), "-2^2"},
		{bin(neg(num(2)), BinaryPower, num(2)), "(-2)^2"},
		{neg(bin(x, BinaryAddition, num(1))), "-(x + 1)"},
		{bin(x, BinaryPower, num(-1)), "x^(-1)"},
		{variable("x", 3, 2), "3*x^2"},
		{variable("x", -1, 1), "-x"},
		{bin(variable("x", 1, 2), BinaryPower, num(2)), "(x^2)^2"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.data.String())
	}
}

// Printed trees read back as the same tree.
func TestStringsRoundTrip(t *testing.T) {
	for _, line := range []string{
		"1 - (2 - 3)", "2^3^2", "(2^3)^2", "-2^2", "(-2)^2", "-(x + 1)*3", "x/(y*z)", "+(x - 1)",
	} {
		first, err := parse(t, line)
		require.NoError(t, err, line)

		second, err := parse(t, first.String())
		require.NoError(t, err, first.String())

		assert.True(t, Equal(first, second), "%s printed as %s", line, first)
	}
}

func TestEqual(t *testing.T) {
	a := bin(neg(NewVariable("x")), BinaryMultiplication, num(2))

	assert.True(t, Equal(a, Clone(a)))
	assert.False(t, Equal(a, bin(neg(NewVariable("x")), BinaryDivision, num(2))))
	assert.False(t, Equal(a, bin(neg(NewVariable("y")), BinaryMultiplication, num(2))))
	assert.False(t, Equal(num(1), NewVariable("x")))
	assert.False(t, Equal(variable("x", 1, 2), variable("x", 1, 3)))
}

func TestClone(t *testing.T) {
	a := bin(NewVariable("x"), BinaryAddition, num(2))
	b := Clone(a).(*BinaryExpr)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
	assert.NotSame(t, a.Op1, b.Op1)
	assert.NotSame(t, a.Op2, b.Op2)
}
