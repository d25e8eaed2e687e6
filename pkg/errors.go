package calc

import (
	"fmt"
	"github.com/pkg/errors"
)

var (
	ErrDivisionByZero    = errors.New("division by zero not defined")
	ErrZeroRaisedToZero  = errors.New("zero raised to zero not defined")
	ErrNothingToSimplify = errors.New("nothing to simplify")
)

// InvalidCharacterError is returned by the lexer for a rune that starts no token.
type InvalidCharacterError struct {
	Pos  int
	Char rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%d: invalid character %q", e.Pos, e.Char)
}

// InvalidSyntaxError is returned for grammar violations, including two operand-like
// tokens written next to each other.
type InvalidSyntaxError struct {
	Pos    int
	Reason string
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("%d: invalid syntax: %s", e.Pos, e.Reason)
}

// Message returns the text shown to a user for err.
func Message(err error) string {
	var charErr *InvalidCharacterError
	var syntaxErr *InvalidSyntaxError

	switch {
	case errors.As(err, &charErr):
		return "Invalid Character"
	case errors.As(err, &syntaxErr):
		return "Invalid Syntax"
	case errors.Is(err, ErrDivisionByZero):
		return "Division by Zero Not Defined"
	case errors.Is(err, ErrZeroRaisedToZero):
		return "Zero Raised to Zero Not Defined"
	case errors.Is(err, ErrNothingToSimplify):
		return "Nothing to Simplify"
	default:
		return err.Error()
	}
}
