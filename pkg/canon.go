package calc

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Term is one entry of a Polynomial: Coefficient * Name^Exponent.
type Term struct {
	Name        string
	Exponent    int64
	Coefficient int64
}

// Polynomial is a simplified expression collected into like terms. Terms hold one
// entry per (Name, Exponent), sorted by name ascending and then exponent
// descending. Entries are kept even when their coefficient or exponent is zero;
// String and the IR generator decide what to do with those.
type Polynomial struct {
	Constant int64
	Terms    []Term
}

type termKey struct {
	name string
	exp  int64
}

// Collect flattens a sum of terms into a Polynomial. Nodes other than numbers,
// variables, + and - cannot appear in simplified output and are ignored. Sums that
// leave the int64 range fail with ErrNothingToSimplify.
func Collect(e Expr) (*Polynomial, error) {
	terms, err := flatten(e, false)
	if err != nil {
		return nil, err
	}

	p := &Polynomial{}
	index := make(map[termKey]int)

	var ok bool
	for _, t := range terms {
		switch x := t.(type) {
		case *Number:
			if p.Constant, ok = addInt(p.Constant, x.Value); !ok {
				return nil, overflow("%s", e)
			}
		case *Variable:
			key := termKey{x.Name, x.Exponent}
			if i, found := index[key]; found {
				if p.Terms[i].Coefficient, ok = addInt(p.Terms[i].Coefficient, x.Coefficient); !ok {
					return nil, overflow("%s", e)
				}
				continue
			}

			index[key] = len(p.Terms)
			p.Terms = append(p.Terms, Term{Name: x.Name, Exponent: x.Exponent, Coefficient: x.Coefficient})
		}
	}

	// Zero-exponent terms are folded into the constant when rendering.
	folded := p.Constant
	for _, t := range p.Terms {
		if t.Exponent != 0 {
			continue
		}

		if folded, ok = addInt(folded, t.Coefficient); !ok {
			return nil, overflow("%s", e)
		}
	}

	sort.Slice(p.Terms, func(i, j int) bool {
		a, b := p.Terms[i], p.Terms[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}

		return a.Exponent > b.Exponent
	})

	return p, nil
}

// flatten lists the additive terms of e, with their signs flipped when negate is set.
func flatten(e Expr, negate bool) ([]Expr, error) {
	switch x := e.(type) {
	case *Number:
		if !negate {
			return []Expr{x}, nil
		}

		v, ok := negInt(x.Value)
		if !ok {
			return nil, overflow("-%s", x)
		}
		return []Expr{&Number{Value: v}}, nil
	case *Variable:
		if !negate {
			return []Expr{x}, nil
		}

		c, ok := negInt(x.Coefficient)
		if !ok {
			return nil, overflow("-(%s)", x)
		}
		return []Expr{&Variable{Name: x.Name, Coefficient: c, Exponent: x.Exponent}}, nil
	case *BinaryExpr:
		if !x.Operation.IsAdditive() {
			return nil, nil
		}

		l, err := flatten(x.Op1, negate)
		if err != nil {
			return nil, err
		}

		r, err := flatten(x.Op2, negate != (x.Operation == BinarySubtraction))
		if err != nil {
			return nil, err
		}

		return append(l, r...), nil
	}

	return nil, nil
}

// Render returns the canonical text of a simplified expression.
func Render(e Expr) (string, error) {
	p, err := Collect(e)
	if err != nil {
		return "", err
	}

	return p.String(), nil
}

// Expr rebuilds p as a left-nested sum in term order with the constant last.
// Zero-coefficient and zero-exponent terms are kept.
func (p *Polynomial) Expr() Expr {
	var acc Expr

	add := func(v int64, build func(int64) Expr) {
		switch {
		case acc == nil:
			acc = build(v)
		case v < 0 && v != math.MinInt64:
			acc = &BinaryExpr{Operation: BinarySubtraction, Op1: acc, Op2: build(-v)}
		default:
			acc = &BinaryExpr{Operation: BinaryAddition, Op1: acc, Op2: build(v)}
		}
	}

	for _, t := range p.Terms {
		name, exp := t.Name, t.Exponent
		add(t.Coefficient, func(c int64) Expr {
			return &Variable{Name: name, Coefficient: c, Exponent: exp}
		})
	}

	if acc == nil || p.Constant != 0 {
		add(p.Constant, func(v int64) Expr {
			return &Number{Value: v}
		})
	}

	return acc
}

// String renders the polynomial: variable terms in order, then the constant.
// Zero-exponent terms are folded into the constant and zero-coefficient terms are
// dropped. A zero constant is only printed when nothing else is.
func (p *Polynomial) String() string {
	constant := p.Constant

	var parts []string
	for _, t := range p.Terms {
		if t.Exponent == 0 {
			constant += t.Coefficient
			continue
		}

		if t.Coefficient == 0 {
			continue
		}

		parts = append(parts, formatTerm(t, len(parts) == 0))
	}

	if len(parts) == 0 {
		return strconv.FormatInt(constant, 10)
	}

	switch {
	case constant > 0:
		parts = append(parts, "+ "+strconv.FormatInt(constant, 10))
	case constant < 0:
		parts = append(parts, "- "+magnitude(constant))
	}

	return strings.Join(parts, " ")
}

func formatTerm(t Term, leading bool) string {
	body := t.Name
	if t.Exponent != 1 {
		body += "^" + strconv.FormatInt(t.Exponent, 10)
	}

	c := t.Coefficient
	switch {
	case c == 1 && leading:
		return body
	case c == 1:
		return "+ " + body
	case c == -1 && leading:
		return "-" + body
	case c == -1:
		return "- " + body
	case leading:
		return strconv.FormatInt(c, 10) + "*" + body
	case c > 0:
		return "+ " + strconv.FormatInt(c, 10) + "*" + body
	default:
		return "- " + magnitude(c) + "*" + body
	}
}

// magnitude formats |v|, including for math.MinInt64.
func magnitude(v int64) string {
	return strings.TrimPrefix(strconv.FormatInt(v, 10), "-")
}

// Variables returns the names of the variables that survive rendering, sorted.
func (p *Polynomial) Variables() []string {
	var names []string
	for _, t := range p.Terms {
		if t.Exponent == 0 || t.Coefficient == 0 {
			continue
		}

		if len(names) == 0 || names[len(names)-1] != t.Name {
			names = append(names, t.Name)
		}
	}

	return names
}
