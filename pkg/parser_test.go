package calc

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Next() (Token, error) {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}, nil
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok, nil
}

func num(v int64) *Number {
	return &Number{Value: v}
}

func bin(l Expr, op BinaryOp, r Expr) *BinaryExpr {
	return &BinaryExpr{Operation: op, Op1: l, Op2: r}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect Expr
	}{
		{
			[]Token{
				{TokenNumber, "1", 0},
				{TokenPlus, "+", 0},
				{TokenNumber, "2", 0},
				{TokenMulti, "*", 0},
				{TokenNumber, "3", 0},
			},
			false,
			bin(num(1), BinaryAddition, bin(num(2), BinaryMultiplication, num(3))),
		},
		{
			[]Token{
				{TokenOpenParentheses, "(", 0},
				{TokenNumber, "1", 0},
				{TokenPlus, "+", 0},
				{TokenNumber, "3", 0},
				{TokenCloseParentheses, ")", 0},
				{TokenMulti, "*", 0},
				{TokenNumber, "2", 0},
			},
			false,
			bin(bin(num(1), BinaryAddition, num(3)), BinaryMultiplication, num(2)),
		},
		{
			[]Token{
				{TokenNumber, "1", 0},
				{TokenMinus, "-", 0},
				{TokenNumber, "3", 0},
				{TokenPlus, "+", 0},
				{TokenNumber, "1", 0},
			},
			false,
			bin(bin(num(1), BinarySubtraction, num(3)), BinaryAddition, num(1)),
		},
		{
			[]Token{
				{TokenNumber, "8", 0},
				{TokenDiv, "/", 0},
				{TokenNumber, "4", 0},
				{TokenDiv, "/", 0},
				{TokenNumber, "2", 0},
			},
			false,
			bin(bin(num(8), BinaryDivision, num(4)), BinaryDivision, num(2)),
		},
		{
			[]Token{
				{TokenNumber, "2", 0},
				{TokenPow, "^", 0},
				{TokenNumber, "3", 0},
				{TokenPow, "^", 0},
				{TokenNumber, "2", 0},
			},
			false,
			bin(num(2), BinaryPower, bin(num(3), BinaryPower, num(2))),
		},
		{
			[]Token{
				{TokenMinus, "-", 0},
				{TokenNumber, "2", 0},
				{TokenPow, "^", 0},
				{TokenNumber, "2", 0},
			},
			false,
			&UnaryExpr{
				Operation: UnaryNegative,
				Operand:   bin(num(2), BinaryPower, num(2)),
			},
		},
		{
			[]Token{
				{TokenMinus, "-", 0},
				{TokenIdentifier, "x", 0},
				{TokenMulti, "*", 0},
				{TokenNumber, "3", 0},
			},
			false,
			bin(&UnaryExpr{Operation: UnaryNegative, Operand: NewVariable("x")}, BinaryMultiplication, num(3)),
		},
		{
			[]Token{
				{TokenPlus, "+", 0},
				{TokenMinus, "-", 0},
				{TokenIdentifier, "x", 0},
			},
			false,
			&UnaryExpr{
				Operation: UnaryPositive,
				Operand:   &UnaryExpr{Operation: UnaryNegative, Operand: NewVariable("x")},
			},
		},
		{
			[]Token{
				{TokenNumber, "2", 0},
				{TokenIdentifier, "x", 0},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenNumber, "1", 0},
				{TokenPlus, "+", 0},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenOpenParentheses, "(", 0},
				{TokenNumber, "1", 0},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenCloseParentheses, ")", 0},
			},
			true,
			nil,
		},
		{
			nil,
			true,
			nil,
		},
	}

	for _, c := range cases {
		p := NewParser(NewBufferedTokenizerMocker(c.data))

		got, err := p.Parse()
		if c.fail {
			var syntaxErr *InvalidSyntaxError
			assert.ErrorAs(t, err, &syntaxErr, "%v", c.data)
			continue
		}

		require.NoError(t, err, "%v", c.data)
		assert.Equal(t, c.expect, got, "%v", c.data)
	}
}

func parse(t *testing.T, line string) (Expr, error) {
	t.Helper()
	return NewParser(NewLexerFromString(line)).Parse()
}

func TestParserAdjacency(t *testing.T) {
	rejected := []string{
		"2 3", "x y", "2x", "x2", "2(3)", "x(3)", "(2)3", "(2)x",
		"1 + 2 3", "(x + 1)(x)y",
	}

	for _, line := range rejected {
		_, err := parse(t, line)

		var syntaxErr *InvalidSyntaxError
		assert.ErrorAs(t, err, &syntaxErr, line)
	}

	accepted := []string{
		"2 * 3", "x*y", "2*x", "-x", "+-+x", "(2)*(3)", "((x))", "x^2^3", "2^-1",
	}

	for _, line := range accepted {
		_, err := parse(t, line)
		assert.NoError(t, err, line)
	}
}

func TestParserRejectsTrailingTokens(t *testing.T) {
	for _, line := range []string{"(2)(3)", "2)", "x + 1)", "(x)(y)"} {
		_, err := parse(t, line)

		var syntaxErr *InvalidSyntaxError
		assert.ErrorAs(t, err, &syntaxErr, line)
	}
}

func TestParserPropagatesInvalidCharacter(t *testing.T) {
	_, err := parse(t, "2 + $")

	var charErr *InvalidCharacterError
	assert.ErrorAs(t, err, &charErr)
}

func TestParserDepthLimit(t *testing.T) {
	line := strings.Repeat("(", 50) + "x" + strings.Repeat(")", 50)

	p := NewParser(NewLexerFromString(line))
	p.SetMaxDepth(10)
	_, err := p.Parse()

	var syntaxErr *InvalidSyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, syntaxErr.Reason, "too deeply")

	p = NewParser(NewLexerFromString(line))
	got, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, NewVariable("x"), got)
}
