package calc

import (
	"github.com/pkg/errors"
	"io"
	"log/slog"
	"strings"
)

type Engine struct {
	cfg    Config
	logger *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg.withDefaults(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate simplifies line and returns its canonical form.
func (e *Engine) Evaluate(line string) (string, error) {
	poly, err := e.collect(line)
	if err != nil {
		return "", err
	}

	out := poly.String()
	e.logger.Debug("evaluated", "input", line, "output", out)

	return out, nil
}

// EmitIR simplifies line and lowers the result to an LLVM module.
func (e *Engine) EmitIR(line string) (IR, error) {
	poly, err := e.collect(line)
	if err != nil {
		return nil, err
	}

	return NewLLVMGenerator(poly).Do(), nil
}

// Parse reads line into an expression tree.
func (e *Engine) Parse(line string) (Expr, error) {
	p := NewParser(NewLexer(strings.NewReader(line)))
	p.SetMaxDepth(e.cfg.MaxDepth)

	expr, err := p.Parse()
	if err != nil {
		e.logger.Debug("parse failed", "input", line, "err", err)
		return nil, err
	}

	e.logger.Debug("parsed", "input", line, "tree", expr)
	return expr, nil
}

// Simplify rewrites expr into a sum of terms.
func (e *Engine) Simplify(expr Expr) (Expr, error) {
	s := NewSimplifier()
	s.SetLimits(e.cfg.MaxSteps, e.cfg.MaxRecursion)

	simplified, err := s.Simplify(expr)
	if err != nil {
		e.logger.Debug("simplify failed", "tree", expr, "err", err)
		return nil, err
	}

	if !isSumOfTerms(simplified) {
		e.logger.Debug("simplified form is not a sum of terms", "tree", simplified)
		return nil, errors.Wrapf(ErrNothingToSimplify, "%s does not reduce to terms", simplified)
	}

	e.logger.Debug("simplified", "tree", expr, "result", simplified)
	return simplified, nil
}

func (e *Engine) collect(line string) (*Polynomial, error) {
	expr, err := e.Parse(line)
	if err != nil {
		return nil, err
	}

	simplified, err := e.Simplify(expr)
	if err != nil {
		return nil, err
	}

	return Collect(simplified)
}
