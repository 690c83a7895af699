package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kievzenit/l25/internal/ast"
	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/interpreter"
	"github.com/kievzenit/l25/internal/lexer"
	"github.com/kievzenit/l25/internal/parser"
	"github.com/kievzenit/l25/internal/semantic_analyzer"
	"github.com/kievzenit/l25/internal/visualizer"
)

type Options struct {
	// Input feeds `input` statements. A nil Input behaves as empty input.
	Input interpreter.LineReader
	// Output, when set, also receives every output line as it is written.
	Output io.Writer
}

// Result mirrors the {output, error} pair returned by the compile endpoint.
type Result struct {
	Output string
	Error  string

	Err error
}

func (r Result) ExitCode() int {
	if r.Err != nil {
		return 1
	}
	return 0
}

func Tokenize(source []byte) ([]lexer.Token, error) {
	return lexer.NewLexer(source).Tokenize()
}

func Parse(source []byte) (*ast.Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	return parser.NewParser(lexer.NewTokenScanner(tokens)).Parse()
}

func Visualize(source []byte) (string, error) {
	program, err := Parse(source)
	if err != nil {
		return "", err
	}

	return visualizer.NewVisualizer(program).Generate(), nil
}

func Check(source []byte) ([]*semantic_analyzer.Issue, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return semantic_analyzer.NewSemanticAnalyzer(program).Analyze(), nil
}

// Run lexes, parses and executes source. Output written before a failure
// is kept in the result.
func Run(ctx context.Context, source []byte, opts *Options) Result {
	var options Options
	if opts != nil {
		options = *opts
	}
	if options.Input == nil {
		options.Input = interpreter.NewSliceInput(nil)
	}

	var captured bytes.Buffer
	var out io.Writer = &captured
	if options.Output != nil {
		out = io.MultiWriter(&captured, options.Output)
	}

	tokens, err := Tokenize(source)
	if err == nil {
		err = interpreter.NewInterpreter(
			parser.NewParser(lexer.NewTokenScanner(tokens)),
			&interpreter.Options{Input: options.Input, Output: out},
		).InterpretContext(ctx)
	}

	return Result{
		Output: captured.String(),
		Error:  RenderError(err),

		Err: err,
	}
}

// RenderError formats err the way the CLI and the HTTP API show it.
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	var ce compiler_errors.CompilerError
	switch {
	case errors.As(err, &ce):
		return ce.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "execution timed out"
	case errors.Is(err, context.Canceled):
		return "execution cancelled"
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", err)
	}
}
