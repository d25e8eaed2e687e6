package calc

import (
	"fmt"
	"strconv"
)

// DefaultMaxDepth bounds how deeply factors may nest, e.g. "((((x))))" or "--x".
const DefaultMaxDepth = 1000

// rejectedPairs lists the token pairs that may not follow each other. There is no
// implicit multiplication: "2x", "2 3", "x(1)" and "(1)x" all need an operator.
var rejectedPairs = map[[2]TokenType]bool{
	{TokenNumber, TokenNumber}:               true,
	{TokenIdentifier, TokenIdentifier}:       true,
	{TokenNumber, TokenIdentifier}:           true,
	{TokenIdentifier, TokenNumber}:           true,
	{TokenNumber, TokenOpenParentheses}:      true,
	{TokenIdentifier, TokenOpenParentheses}:  true,
	{TokenCloseParentheses, TokenNumber}:     true,
	{TokenCloseParentheses, TokenIdentifier}: true,
}

var binaryOps = map[TokenType]BinaryOp{
	TokenPlus:  BinaryAddition,
	TokenMinus: BinarySubtraction,
	TokenMulti: BinaryMultiplication,
	TokenDiv:   BinaryDivision,
	TokenPow:   BinaryPower,
}

var unaryOps = map[TokenType]UnaryOp{
	TokenPlus:  UnaryPositive,
	TokenMinus: UnaryNegative,
}

// Parser builds an expression tree by recursive descent:
//
//	expression := term (('+'|'-') term)*
//	term       := factor (('*'|'/') factor)*
//	factor     := atom ('^' factor)?
//	atom       := ('+'|'-') factor | INTEGER | IDENTIFIER | '(' expression ')'
type Parser struct {
	tokenizer Tokenizer
	tok       Token

	maxDepth int
	depth    int
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		maxDepth:  DefaultMaxDepth,
	}
}

// SetMaxDepth changes the nesting limit. Zero or less disables it.
func (p *Parser) SetMaxDepth(depth int) {
	p.maxDepth = depth
}

// Parse reads a whole expression. Tokens left over after it are a syntax error, so
// "(2)(3)" is rejected rather than silently read as "(2)".
func (p *Parser) Parse() (Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenEOF) {
		return nil, p.errorf(p.tok.Pos, "unexpected %s after expression", p.tok.Typ)
	}

	return expr, nil
}

func (p *Parser) advance() error {
	tok, err := p.tokenizer.Next()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

func (p *Parser) check(typ TokenType) bool {
	return p.tok.Typ == typ
}

// consume moves past the current token, which must be of type typ, and enforces the
// adjacency rule on the token that replaces it.
func (p *Parser) consume(typ TokenType) error {
	if p.tok.Typ != typ {
		return p.errorf(p.tok.Pos, "expected %s, found %s", typ, p.tok.Typ)
	}

	prev := p.tok
	if err := p.advance(); err != nil {
		return err
	}

	if rejectedPairs[[2]TokenType{prev.Typ, p.tok.Typ}] {
		return p.errorf(p.tok.Pos, "missing operator between %s and %s", prev.Typ, p.tok.Typ)
	}

	return nil
}

func (p *Parser) errorf(pos int, format string, args ...interface{}) error {
	return &InvalidSyntaxError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *Parser) expression() (Expr, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := binaryOps[p.tok.Typ]
		if err := p.consume(p.tok.Typ); err != nil {
			return nil, err
		}

		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) term() (Expr, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.check(TokenMulti) || p.check(TokenDiv) {
		op := binaryOps[p.tok.Typ]
		if err := p.consume(p.tok.Typ); err != nil {
			return nil, err
		}

		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) factor() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, p.errorf(p.tok.Pos, "expression nested too deeply")
	}

	base, err := p.atom()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenPow) {
		return base, nil
	}

	if err := p.consume(TokenPow); err != nil {
		return nil, err
	}

	// Right recursion makes ^ group to the right: 2^3^2 is 2^(3^2).
	exp, err := p.factor()
	if err != nil {
		return nil, err
	}

	return &BinaryExpr{
		Operation: BinaryPower,
		Op1:       base,
		Op2:       exp,
	}, nil
}

func (p *Parser) atom() (Expr, error) {
	switch tok := p.tok; tok.Typ {
	case TokenPlus, TokenMinus:
		if err := p.consume(tok.Typ); err != nil {
			return nil, err
		}

		// The sign applies to a whole factor, so -2^2 is -(2^2).
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operation: unaryOps[tok.Typ],
			Operand:   operand,
		}, nil
	case TokenNumber:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf(tok.Pos, "bad integer literal %q", tok.Value)
		}

		if err := p.consume(TokenNumber); err != nil {
			return nil, err
		}

		return &Number{Value: v}, nil
	case TokenIdentifier:
		if err := p.consume(TokenIdentifier); err != nil {
			return nil, err
		}

		return NewVariable(tok.Value), nil
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	default:
		return nil, p.errorf(tok.Pos, "unexpected %s", tok.Typ)
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	if err := p.consume(TokenOpenParentheses); err != nil {
		return nil, err
	}

	exp, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.consume(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return exp, nil
}
