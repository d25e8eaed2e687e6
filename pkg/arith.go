package calc

import (
	"github.com/pkg/errors"
	"math"
)

// Checked int64 arithmetic. The second result is false when the exact result does
// not fit in an int64.

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (a^c)&(b^c) >= 0
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (a^b)&(a^c) >= 0
}

func negInt(a int64) (int64, bool) {
	return -a, a != math.MinInt64
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return math.MinInt64, false
	}

	c := a * b
	return c, c/b == a
}

// divInt truncates toward zero. b must not be zero.
func divInt(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return math.MinInt64, false
	}

	return a / b, true
}

// powInt computes b^n for n >= 0 by repeated squaring.
func powInt(b, n int64) (int64, bool) {
	r := int64(1)

	var ok bool
	for {
		if n&1 == 1 {
			if r, ok = mulInt(r, b); !ok {
				return 0, false
			}
		}

		n >>= 1
		if n == 0 {
			return r, true
		}

		if b, ok = mulInt(b, b); !ok {
			return 0, false
		}
	}
}

// overflow reports a result that left the int64 range. Such expressions are treated
// as having nothing to simplify.
func overflow(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNothingToSimplify, "int64 overflow in "+format, args...)
}
