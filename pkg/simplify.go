package calc

import "github.com/pkg/errors"

const (
	// DefaultMaxSteps caps the number of rewrites spent on a single expression.
	DefaultMaxSteps = 1 << 24

	// DefaultMaxRecursion caps the rewrite recursion depth. A power of a sum,
	// (a+b)^n, recurses about twice per unit of n.
	DefaultMaxRecursion = 1 << 16
)

// Simplifier rewrites an expression tree into a sum of terms. It is not safe for
// concurrent use; each Simplify call resets its budget.
type Simplifier struct {
	maxSteps     int
	maxRecursion int

	steps int
	depth int
}

func NewSimplifier() *Simplifier {
	return &Simplifier{
		maxSteps:     DefaultMaxSteps,
		maxRecursion: DefaultMaxRecursion,
	}
}

// SetLimits changes the step budget and the recursion limit. Zero or less disables
// the corresponding limit.
func (s *Simplifier) SetLimits(maxSteps, maxRecursion int) {
	s.maxSteps = maxSteps
	s.maxRecursion = maxRecursion
}

// Simplify returns the normal form of e. ErrNothingToSimplify means no rewrite rule
// covers some part of e; the caller decides whether that is a failure.
func (s *Simplifier) Simplify(e Expr) (Expr, error) {
	s.steps, s.depth = 0, 0
	return s.simplify(e)
}

func (s *Simplifier) simplify(e Expr) (Expr, error) {
	s.steps++
	s.depth++
	defer func() { s.depth-- }()

	if s.maxSteps > 0 && s.steps > s.maxSteps {
		return nil, errors.Wrapf(ErrNothingToSimplify, "gave up after %d steps", s.maxSteps)
	}

	if s.maxRecursion > 0 && s.depth > s.maxRecursion {
		return nil, errors.Wrapf(ErrNothingToSimplify, "recursion deeper than %d", s.maxRecursion)
	}

	switch e := e.(type) {
	case *Number, *Variable:
		return e, nil
	case *UnaryExpr:
		return s.unary(e)
	case *BinaryExpr:
		switch e.Operation {
		case BinaryAddition, BinarySubtraction:
			return s.sum(e)
		case BinaryPower:
			return s.power(e)
		case BinaryMultiplication, BinaryDivision:
			return s.product(e)
		}
	}

	return nil, ErrNothingToSimplify
}

func (s *Simplifier) unary(e *UnaryExpr) (Expr, error) {
	simp, err := s.simplify(e.Operand)
	if err != nil {
		return nil, err
	}

	if e.Operation == UnaryPositive {
		if settled(simp) {
			return simp, nil
		}

		return &UnaryExpr{Operation: UnaryPositive, Operand: simp}, nil
	}

	switch x := simp.(type) {
	case *Number:
		v, ok := negInt(x.Value)
		if !ok {
			return nil, overflow("-%s", x)
		}
		return &Number{Value: v}, nil
	case *Variable:
		c, ok := negInt(x.Coefficient)
		if !ok {
			return nil, overflow("-(%s)", x)
		}
		return &Variable{Name: x.Name, Coefficient: c, Exponent: x.Exponent}, nil
	case *BinaryExpr:
		if x.Operation.IsAdditive() {
			return s.distribute(x.Operation,
				&UnaryExpr{Operation: UnaryNegative, Operand: x.Op1},
				&UnaryExpr{Operation: UnaryNegative, Operand: x.Op2})
		}
	}

	return &UnaryExpr{Operation: UnaryNegative, Operand: simp}, nil
}

func (s *Simplifier) sum(e *BinaryExpr) (Expr, error) {
	l, err := s.simplify(e.Op1)
	if err != nil {
		return nil, err
	}

	r, err := s.simplify(e.Op2)
	if err != nil {
		return nil, err
	}

	switch a := l.(type) {
	case *Number:
		if b, ok := r.(*Number); ok {
			v, ok := addOrSub(e.Operation, a.Value, b.Value)
			return checked(&Number{Value: v}, ok, l, e.Operation, r)
		}
	case *Variable:
		if b, ok := r.(*Variable); ok && a.Name == b.Name && a.Exponent == b.Exponent {
			c, ok := addOrSub(e.Operation, a.Coefficient, b.Coefficient)
			return checked(&Variable{Name: a.Name, Coefficient: c, Exponent: a.Exponent}, ok, l, e.Operation, r)
		}
	}

	// Unlike terms stay as they are; they are collected when rendering.
	return &BinaryExpr{Operation: e.Operation, Op1: l, Op2: r}, nil
}

func (s *Simplifier) power(e *BinaryExpr) (Expr, error) {
	exp, err := s.simplify(e.Op2)
	if err != nil {
		return nil, err
	}

	n, ok := exp.(*Number)
	if !ok {
		return nil, errors.Wrap(ErrNothingToSimplify, "exponent is not a constant")
	}

	switch {
	case n.Value == 0:
		base, err := s.simplify(e.Op1)
		if errors.Is(err, ErrNothingToSimplify) {
			return &Number{Value: 1}, nil
		}
		if err != nil {
			return nil, err
		}

		if isZero(base) {
			return nil, ErrZeroRaisedToZero
		}

		return &Number{Value: 1}, nil
	case n.Value == 1:
		return s.simplify(e.Op1)
	case n.Value > 1:
		base, err := s.simplify(e.Op1)
		if err != nil {
			return nil, err
		}

		if isTerm(base) {
			return raiseTerm(base, n.Value)
		}

		// b^n = b * b^(n-1), with b^(n-1) reduced once before b is distributed
		// over it.
		rest, err := s.simplify(&BinaryExpr{
			Operation: BinaryPower,
			Op1:       Clone(base),
			Op2:       &Number{Value: n.Value - 1},
		})
		if err != nil {
			return nil, err
		}

		return s.simplify(&BinaryExpr{Operation: BinaryMultiplication, Op1: base, Op2: rest})
	}

	return nil, errors.Wrap(ErrNothingToSimplify, "negative exponent")
}

// product handles both * and /. They share the distribution and re-association
// rules and differ in how two single terms combine.
func (s *Simplifier) product(e *BinaryExpr) (Expr, error) {
	op := e.Operation
	l, r := e.Op1, e.Op2

	if isUnary(l) || isUnary(r) {
		return s.resimplify(op, l, r)
	}

	if lb, ok := l.(*BinaryExpr); ok {
		if !lb.Operation.IsAdditive() {
			return s.resimplify(op, l, r)
		}

		// (a+b)*c = a*c + b*c, and likewise for (a+b)/c.
		return s.distribute(lb.Operation,
			&BinaryExpr{Operation: op, Op1: lb.Op1, Op2: r},
			&BinaryExpr{Operation: op, Op1: lb.Op2, Op2: Clone(r)})
	}

	if rb, ok := r.(*BinaryExpr); ok {
		if !rb.Operation.IsAdditive() {
			return s.resimplify(op, l, r)
		}

		if op == BinaryMultiplication {
			return s.distribute(rb.Operation,
				&BinaryExpr{Operation: op, Op1: l, Op2: rb.Op1},
				&BinaryExpr{Operation: op, Op1: Clone(l), Op2: rb.Op2})
		}

		// a/(b+c) does not split. It only goes ahead if the divisor collapses
		// into a single term.
		divisor, err := s.simplify(rb)
		if err != nil {
			return nil, err
		}

		if !isTerm(divisor) {
			return nil, errors.Wrap(ErrNothingToSimplify, "divisor is a sum")
		}

		return s.simplify(&BinaryExpr{Operation: op, Op1: l, Op2: divisor})
	}

	if op == BinaryMultiplication {
		return multiplyTerms(l, r)
	}

	return divideTerms(l, r)
}

// distribute simplifies a and b, joins them with op and merges like terms. Without
// the merge (x+1)^n would carry 2^n terms instead of n+1.
func (s *Simplifier) distribute(op BinaryOp, a, b Expr) (Expr, error) {
	l, err := s.simplify(a)
	if err != nil {
		return nil, err
	}

	r, err := s.simplify(b)
	if err != nil {
		return nil, err
	}

	joined := &BinaryExpr{Operation: op, Op1: l, Op2: r}
	if !isSumOfTerms(joined) {
		return joined, nil
	}

	p, err := Collect(joined)
	if err != nil {
		return nil, err
	}

	return p.Expr(), nil
}

// resimplify simplifies both operands first and then the operation built from them.
// An operand that did not settle into a term or a sum would bring the rewrite
// straight back here, so that ends the attempt.
func (s *Simplifier) resimplify(op BinaryOp, l, r Expr) (Expr, error) {
	sl, err := s.simplify(l)
	if err != nil {
		return nil, err
	}

	sr, err := s.simplify(r)
	if err != nil {
		return nil, err
	}

	if !settled(sl) || !settled(sr) {
		return nil, errors.Wrapf(ErrNothingToSimplify, "cannot reduce operands of %s", op)
	}

	return s.simplify(&BinaryExpr{Operation: op, Op1: sl, Op2: sr})
}

func multiplyTerms(l, r Expr) (Expr, error) {
	switch a := l.(type) {
	case *Number:
		switch b := r.(type) {
		case *Number:
			v, ok := mulInt(a.Value, b.Value)
			return checked(&Number{Value: v}, ok, l, BinaryMultiplication, r)
		case *Variable:
			c, ok := mulInt(a.Value, b.Coefficient)
			return checked(&Variable{Name: b.Name, Coefficient: c, Exponent: b.Exponent}, ok, l, BinaryMultiplication, r)
		}
	case *Variable:
		switch b := r.(type) {
		case *Number:
			c, ok := mulInt(a.Coefficient, b.Value)
			return checked(&Variable{Name: a.Name, Coefficient: c, Exponent: a.Exponent}, ok, l, BinaryMultiplication, r)
		case *Variable:
			if a.Name == b.Name {
				c, okc := mulInt(a.Coefficient, b.Coefficient)
				x, okx := addInt(a.Exponent, b.Exponent)
				return checked(&Variable{Name: a.Name, Coefficient: c, Exponent: x}, okc && okx, l, BinaryMultiplication, r)
			}
		}
	}

	return nil, errors.Wrapf(ErrNothingToSimplify, "no rule for %s * %s", l, r)
}

// divideTerms divides single terms with truncating integer division.
func divideTerms(l, r Expr) (Expr, error) {
	switch a := l.(type) {
	case *Number:
		switch b := r.(type) {
		case *Number:
			if b.Value == 0 {
				return nil, ErrDivisionByZero
			}
			v, ok := divInt(a.Value, b.Value)
			return checked(&Number{Value: v}, ok, l, BinaryDivision, r)
		case *Variable:
			if b.Coefficient == 0 {
				return nil, ErrDivisionByZero
			}
			c, okc := divInt(a.Value, b.Coefficient)
			x, okx := negInt(b.Exponent)
			return checked(&Variable{Name: b.Name, Coefficient: c, Exponent: x}, okc && okx, l, BinaryDivision, r)
		}
	case *Variable:
		switch b := r.(type) {
		case *Number:
			if b.Value == 0 {
				return nil, ErrDivisionByZero
			}
			c, ok := divInt(a.Coefficient, b.Value)
			return checked(&Variable{Name: a.Name, Coefficient: c, Exponent: a.Exponent}, ok, l, BinaryDivision, r)
		case *Variable:
			if a.Name == b.Name {
				if b.Coefficient == 0 {
					return nil, ErrDivisionByZero
				}
				c, okc := divInt(a.Coefficient, b.Coefficient)
				x, okx := subInt(a.Exponent, b.Exponent)
				return checked(&Variable{Name: a.Name, Coefficient: c, Exponent: x}, okc && okx, l, BinaryDivision, r)
			}
		}
	}

	if Equal(l, r) {
		return &Number{Value: 1}, nil
	}

	return nil, errors.Wrapf(ErrNothingToSimplify, "no rule for %s / %s", l, r)
}

// raiseTerm computes t^n for a single term and n > 1, the closed form of
// multiplying t by itself n times.
func raiseTerm(t Expr, n int64) (Expr, error) {
	switch x := t.(type) {
	case *Number:
		v, ok := powInt(x.Value, n)
		return checked(&Number{Value: v}, ok, t, BinaryPower, &Number{Value: n})
	case *Variable:
		c, okc := powInt(x.Coefficient, n)
		e, oke := mulInt(x.Exponent, n)
		return checked(&Variable{Name: x.Name, Coefficient: c, Exponent: e}, okc && oke, t, BinaryPower, &Number{Value: n})
	}

	return nil, errors.Wrapf(ErrNothingToSimplify, "%s is not a term", t)
}

// checked returns result, or an overflow error for "l op r" when ok is false.
func checked(result Expr, ok bool, l Expr, op BinaryOp, r Expr) (Expr, error) {
	if !ok {
		return nil, overflow("%s %s %s", l, op, r)
	}

	return result, nil
}

func addOrSub(op BinaryOp, a, b int64) (int64, bool) {
	if op == BinarySubtraction {
		return subInt(a, b)
	}

	return addInt(a, b)
}

func isUnary(e Expr) bool {
	_, ok := e.(*UnaryExpr)
	return ok
}

func isTerm(e Expr) bool {
	switch e.(type) {
	case *Number, *Variable:
		return true
	}

	return false
}

func isZero(e Expr) bool {
	switch x := e.(type) {
	case *Number:
		return x.Value == 0
	case *Variable:
		return x.Coefficient == 0
	}

	return false
}

// settled reports whether e is a term or a sum, the shapes that need no further
// top-level rewriting.
func settled(e Expr) bool {
	if b, ok := e.(*BinaryExpr); ok {
		return b.Operation.IsAdditive()
	}

	return isTerm(e)
}

// isSumOfTerms reports whether e is built only from terms joined by + and -.
func isSumOfTerms(e Expr) bool {
	if b, ok := e.(*BinaryExpr); ok {
		return b.Operation.IsAdditive() && isSumOfTerms(b.Op1) && isSumOfTerms(b.Op2)
	}

	return isTerm(e)
}
