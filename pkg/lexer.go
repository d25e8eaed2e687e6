package calc

import (
	"bufio"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

// EOF is returned by the rune reader once the input is exhausted.
const EOF rune = -1

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdentifier

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenPow
	TokenOpenParentheses
	TokenCloseParentheses
)

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMulti,
	'/': TokenDiv,
	'^': TokenPow,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
}

type Token struct {
	Typ   TokenType
	Value string
	Pos   int
}

func (t Token) String() string {
	if t.Typ == TokenEOF {
		return "EOF"
	}

	return fmt.Sprintf("%s(%q)@%d", t.Typ, t.Value, t.Pos)
}

// Tokenizer hands out tokens one at a time. The parser only depends on this, so a
// Lexer and a prepared slice of tokens are interchangeable.
type Tokenizer interface {
	Next() (Token, error)
}

// Lexer is a pull-based scanner. Every call to Next runs the state machine until
// exactly one token (or an error) has been produced.
type Lexer struct {
	reader *bufio.Reader
	pos    int

	tok Token
	err error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
	}
}

func NewLexerFromString(text string) *Lexer {
	return NewLexer(strings.NewReader(text))
}

// Next returns the following token. Once the input is exhausted it keeps returning
// TokenEOF; once it failed it keeps returning the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	for state := defaultState; state != nil && l.err == nil; {
		state = state(l)
	}

	if l.err != nil {
		return Token{}, l.err
	}

	return l.tok, nil
}

// Tokens drains the lexer, returning every token before EOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}

		if t.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return l.emitValue(TokenEOF, "", l.pos)
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	start := l.pos

	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return l.fail(&InvalidSyntaxError{
			Pos:    start,
			Reason: fmt.Sprintf("integer literal %s out of range", num.String()),
		})
	}

	return l.emitValue(TokenNumber, num.String(), start)
}

func identifierState(l *Lexer) stateFunc {
	start := l.pos

	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	return l.emitValue(TokenIdentifier, id.String(), start)
}

func operatorState(l *Lexer) stateFunc {
	start := l.pos
	r := l.next()

	if tok, ok := operatorTable[r]; ok {
		return l.emitValue(tok, string(r), start)
	}

	return l.fail(&InvalidCharacterError{Pos: start, Char: r})
}

func (l *Lexer) fail(err error) stateFunc {
	l.err = err
	return nil
}

func (l *Lexer) emitValue(t TokenType, val string, pos int) stateFunc {
	l.tok = Token{
		Typ:   t,
		Value: val,
		Pos:   pos,
	}

	return nil
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != EOF {
		_ = l.reader.UnreadRune()
		l.pos--
	}

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = errors.Wrap(err, "read input")
		}

		return EOF
	}

	l.pos++
	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
