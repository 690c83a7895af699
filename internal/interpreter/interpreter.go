package interpreter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kievzenit/l25/internal/ast"
	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/lexer"
)

// maxCallDepth bounds recursion so that runaway programs fail with an error
// instead of exhausting the goroutine stack.
const maxCallDepth = 10000

// ProgramSource is anything able to produce a program tree, usually a
// *parser.Parser.
type ProgramSource interface {
	Parse() (*ast.Program, error)
}

type Options struct {
	// Input supplies lines to `input`. Defaults to standard input.
	Input LineReader
	// Output receives one line per `output`. Defaults to standard output.
	Output io.Writer
}

func (o *Options) normalize() Options {
	var normalized Options
	if o != nil {
		normalized = *o
	}
	if normalized.Input == nil {
		normalized.Input = NewReaderInput(os.Stdin)
	}
	if normalized.Output == nil {
		normalized.Output = os.Stdout
	}

	return normalized
}

type Interpreter struct {
	src ProgramSource

	input  LineReader
	output io.Writer

	global *Scope
}

func NewInterpreter(src ProgramSource, opt *Options) *Interpreter {
	options := opt.normalize()

	return &Interpreter{
		src: src,

		input:  options.Input,
		output: options.Output,
	}
}

// frame is the per-call evaluation state.
type frame struct {
	scope *Scope
	// inTry is set while a try block is running, including inside functions
	// called from it.
	inTry bool
	depth int
}

func (i *Interpreter) Interpret() error {
	return i.InterpretContext(context.Background())
}

// InterpretContext parses and runs the program. ctx is checked before each
// loop iteration and each function call.
func (i *Interpreter) InterpretContext(ctx context.Context) error {
	program, err := i.src.Parse()
	if err != nil {
		return err
	}

	return i.run(ctx, program)
}

func (i *Interpreter) run(ctx context.Context, program *ast.Program) error {
	i.global = NewScope(nil)

	for _, structDef := range program.Structs {
		fields := make([]string, len(structDef.Fields))
		for j, field := range structDef.Fields {
			fields[j] = field.Value
		}

		i.global.Declare(structDef.Name.Value, &StructDefinition{
			Name:   structDef.Name.Value,
			Fields: fields,
		})
	}

	for _, funcDef := range program.Funcs {
		i.global.Declare(funcDef.Name.Value, &FunctionValue{Def: funcDef})
	}

	err := i.execStmtList(ctx, frame{scope: i.global}, program.Main)
	if _, ok := err.(returnSignal); ok {
		return newInternalError(program.Main, "return outside of a function")
	}

	return err
}

func positionOf(token *lexer.Token) *compiler_errors.Position {
	if token == nil {
		return nil
	}

	return &compiler_errors.Position{
		Line:   token.Metadata.Line,
		Column: token.Metadata.Column,
	}
}

func semanticErrorf(node ast.AstNode, kind compiler_errors.SemanticKind, format string, args ...any) *compiler_errors.SemanticError {
	return compiler_errors.NewSemanticError(kind, fmt.Sprintf(format, args...), positionOf(node.FirstToken()))
}

func semanticErrorAtf(token *lexer.Token, kind compiler_errors.SemanticKind, format string, args ...any) *compiler_errors.SemanticError {
	return compiler_errors.NewSemanticError(kind, fmt.Sprintf(format, args...), positionOf(token))
}

func newInternalError(node ast.AstNode, message string) *compiler_errors.SemanticError {
	return semanticErrorf(node, compiler_errors.Internal, "internal error: %s", message)
}
