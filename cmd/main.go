package main

import (
	"bufio"
	"flag"
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.calc.dev/pkg"
	"io"
	"log/slog"
	"os"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	emitTokens = flag.Bool("emit-tokens", false, "Print the token stream of each line")
	emitAST    = flag.Bool("emit-ast", false, "Dump the parsed tree of each line")
	emitLL     = flag.Bool("emit-ll", false, "Print LLVM IR for each simplified line")
	verbose    = flag.Bool("v", false, "Log every stage to stderr")
)

type options struct {
	emitTokens bool
	emitAST    bool
	emitLL     bool
}

func main() {
	flag.Parse()

	cfg := calc.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = calc.LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	engine := calc.NewEngine(cfg, calc.WithLogger(logger))
	opts := options{
		emitTokens: *emitTokens,
		emitAST:    *emitAST,
		emitLL:     *emitLL,
	}

	if err := repl(engine, os.Stdin, os.Stdout, opts); err != nil {
		logger.Error("reading input", "err", err)
		os.Exit(1)
	}
}

// repl evaluates in line by line until it runs out of input.
func repl(engine *calc.Engine, in io.Reader, out io.Writer, opts options) error {
	scanner := bufio.NewScanner(in)
	prompt := engine.Config().Prompt

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		if opts.emitTokens {
			printTokens(out, line)
		}

		if opts.emitAST {
			if expr, err := engine.Parse(line); err == nil {
				spew.Fdump(out, expr)
			}
		}

		result, err := engine.Evaluate(line)
		fmt.Fprintln(out, formatResult(line, result, err))

		if opts.emitLL && err == nil {
			if mod, err := engine.EmitIR(line); err == nil {
				fmt.Fprintln(out, mod)
			}
		}
	}
}

func printTokens(out io.Writer, line string) {
	toks, err := calc.NewLexerFromString(line).Tokens()
	for _, t := range toks {
		fmt.Fprintln(out, t)
	}

	if err != nil {
		fmt.Fprintln(out, err)
	}
}

// formatResult is what a user sees for one line. Lines nothing can be done about are
// echoed back unchanged.
func formatResult(line, result string, err error) string {
	switch {
	case err == nil:
		return result
	case errors.Is(err, calc.ErrNothingToSimplify):
		return line
	default:
		return "Exception: " + calc.Message(err)
	}
}
