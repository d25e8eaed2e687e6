package calc

import "strconv"

type Precedence int

const (
	AddPrecedence Precedence = iota
	MultPrecedence
	NegPrecedence
	ExpPrecedence
	AtomicPrecedence
)

// An Expr is a node of an expression tree. The set of node types is closed:
// *Number, *Variable, *UnaryExpr and *BinaryExpr.
//
// Nodes are never modified once built. Rewrites construct new nodes instead, so a
// tree handed to the simplifier is still intact afterwards.
type Expr interface {
	// Precedence describes the strength of the glue that holds the expression
	// together: "3+2*3" gives AddPrecedence, "(3+2)*3" gives MultPrecedence.
	Precedence() Precedence

	// String renders the expression with the fewest parentheses that keep it
	// re-parseable to the same tree.
	String() string

	expr()
}

type Number struct {
	Value int64
}

// Variable is the term Coefficient * Name^Exponent.
type Variable struct {
	Name        string
	Coefficient int64
	Exponent    int64
}

func NewVariable(name string) *Variable {
	return &Variable{Name: name, Coefficient: 1, Exponent: 1}
}

type UnaryOp string

const (
	UnaryPositive UnaryOp = "+"
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Expr
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryPower          BinaryOp = "^"
)

// IsAdditive reports whether op is + or -.
func (op BinaryOp) IsAdditive() bool {
	return op == BinaryAddition || op == BinarySubtraction
}

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

func (*Number) expr()     {}
func (*Variable) expr()   {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}

func (n *Number) Precedence() Precedence {
	if n.Value < 0 {
		return NegPrecedence
	}

	return AtomicPrecedence
}

func (n *Number) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func (v *Variable) Precedence() Precedence {
	switch v.Coefficient {
	case 1:
		if v.Exponent != 1 {
			return ExpPrecedence
		}
		return AtomicPrecedence
	case -1:
		return NegPrecedence
	default:
		return MultPrecedence
	}
}

func (v *Variable) String() string {
	term := v.Name
	if v.Exponent != 1 {
		term += "^" + strconv.FormatInt(v.Exponent, 10)
	}

	switch v.Coefficient {
	case 1:
		return term
	case -1:
		return "-" + term
	default:
		return strconv.FormatInt(v.Coefficient, 10) + "*" + term
	}
}

func (u *UnaryExpr) Precedence() Precedence {
	return NegPrecedence
}

func (u *UnaryExpr) String() string {
	if u.Operand.Precedence() <= NegPrecedence {
		return string(u.Operation) + "(" + u.Operand.String() + ")"
	}

	return string(u.Operation) + u.Operand.String()
}

func (b *BinaryExpr) Precedence() Precedence {
	switch b.Operation {
	case BinaryMultiplication, BinaryDivision:
		return MultPrecedence
	case BinaryAddition, BinarySubtraction:
		return AddPrecedence
	case BinaryPower:
		return ExpPrecedence
	}
	panic("unknown operator: " + string(b.Operation))
}

func (b *BinaryExpr) String() string {
	left := b.Op1.String()
	right := b.Op2.String()

	// ^ groups to the right, every other operator to the left.
	if b.Operation == BinaryPower {
		if b.Op1.Precedence() <= b.Precedence() {
			left = "(" + left + ")"
		}
		if b.Op2.Precedence() < b.Precedence() {
			right = "(" + right + ")"
		}
	} else {
		if b.Op1.Precedence() < b.Precedence() {
			left = "(" + left + ")"
		}
		if b.Op2.Precedence() <= b.Precedence() {
			right = "(" + right + ")"
		}
	}

	if b.Operation.IsAdditive() {
		return left + " " + string(b.Operation) + " " + right
	}

	return left + string(b.Operation) + right
}

// Equal reports whether a and b are the same variant with the same fields,
// recursively.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && *x == *y
	case *UnaryExpr:
		y, ok := b.(*UnaryExpr)
		return ok && x.Operation == y.Operation && Equal(x.Operand, y.Operand)
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Operation == y.Operation && Equal(x.Op1, y.Op1) && Equal(x.Op2, y.Op2)
	}

	return false
}

// Clone returns a deep copy of e.
func Clone(e Expr) Expr {
	switch x := e.(type) {
	case *Number:
		return &Number{Value: x.Value}
	case *Variable:
		c := *x
		return &c
	case *UnaryExpr:
		return &UnaryExpr{Operation: x.Operation, Operand: Clone(x.Operand)}
	case *BinaryExpr:
		return &BinaryExpr{Operation: x.Operation, Op1: Clone(x.Op1), Op2: Clone(x.Op2)}
	}

	return e
}
