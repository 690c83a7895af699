package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/sanity-io/litter"

	"github.com/kievzenit/l25/internal/compiler_errors"
	"github.com/kievzenit/l25/internal/config"
	"github.com/kievzenit/l25/internal/interpreter"
	"github.com/kievzenit/l25/internal/lexer"
	"github.com/kievzenit/l25/internal/parser"
	"github.com/kievzenit/l25/internal/pipeline"
	"github.com/kievzenit/l25/internal/server"
	"github.com/kievzenit/l25/internal/visualizer"
)

const (
	appName    = "l25"
	version    = "0.1.0"
	promptMain = "l25> "
	promptCont = "...  "
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %[1]s run <file> [--visualize] [--config file]
  %[1]s tokens <file>
  %[1]s ast <file>
  %[1]s visualize <file>
  %[1]s check <file>
  %[1]s repl [--config file]
  %[1]s serve [--addr addr] [--config file]
  %[1]s version
`, appName)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(args))
	case "tokens":
		os.Exit(cmdTokens(args))
	case "ast":
		os.Exit(cmdAst(args))
	case "visualize":
		os.Exit(cmdVisualize(args))
	case "check":
		os.Exit(cmdCheck(args))
	case "repl":
		os.Exit(cmdRepl(args))
	case "serve":
		os.Exit(cmdServe(args))
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

// parseFileArgs parses fs and expects exactly one source file, which may
// appear before or after the flags.
func parseFileArgs(fs *flag.FlagSet, args []string) (string, bool) {
	var file string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		file, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if file == "" && fs.NArg() == 1 {
		file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		file = ""
	}
	if file == "" {
		fmt.Fprintf(os.Stderr, "%s: expected exactly one source file\n", fs.Name())
		return "", false
	}

	return file, true
}

func readSource(file string) ([]byte, bool) {
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read '%s': %v\n", file, err)
		return nil, false
	}

	return data, true
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, pipeline.RenderError(err))
	return 1
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	visualize := fs.Bool("visualize", false, "print the Mermaid diagram of the program instead of running it")
	configPath := fs.String("config", "", "path to a YAML config file")
	file, ok := parseFileArgs(fs, args)
	if !ok {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	source, ok := readSource(file)
	if !ok {
		return 1
	}

	if *visualize {
		diagram, err := pipeline.Visualize(source)
		if err != nil {
			return fail(err)
		}
		fmt.Println(diagram)
		return 0
	}

	tokens, err := pipeline.Tokenize(source)
	if err != nil {
		return fail(err)
	}

	input, closeInput := newInput(cfg)
	defer closeInput()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = interpreter.NewInterpreter(
		parser.NewParser(lexer.NewTokenScanner(tokens)),
		&interpreter.Options{Input: input, Output: os.Stdout},
	).InterpretContext(ctx)
	if err != nil {
		return fail(err)
	}

	return 0
}

// linerInput reads `input` lines with line editing when stdin is a terminal.
type linerInput struct {
	state  *liner.State
	prompt string
}

func (in *linerInput) ReadLine() (string, error) {
	line, err := in.state.Prompt(in.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}

	return line, err
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func newInput(cfg *config.Config) (interpreter.LineReader, func()) {
	if !stdinIsTerminal() {
		return interpreter.NewReaderInput(os.Stdin), func() {}
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerInput{state: state, prompt: cfg.Run.Prompt}, func() { state.Close() }
}

// -----------------------------------------------------------------------------
// tokens / ast / visualize / check
// -----------------------------------------------------------------------------

func cmdTokens(args []string) int {
	file, ok := parseFileArgs(flag.NewFlagSet("tokens", flag.ContinueOnError), args)
	if !ok {
		return 2
	}
	source, ok := readSource(file)
	if !ok {
		return 1
	}

	tokens, err := pipeline.Tokenize(source)
	if err != nil {
		return fail(err)
	}
	for _, token := range tokens {
		fmt.Println(token.String())
	}

	return 0
}

func cmdAst(args []string) int {
	file, ok := parseFileArgs(flag.NewFlagSet("ast", flag.ContinueOnError), args)
	if !ok {
		return 2
	}
	source, ok := readSource(file)
	if !ok {
		return 1
	}

	program, err := pipeline.Parse(source)
	if err != nil {
		return fail(err)
	}
	litter.Dump(program)

	return 0
}

func cmdVisualize(args []string) int {
	file, ok := parseFileArgs(flag.NewFlagSet("visualize", flag.ContinueOnError), args)
	if !ok {
		return 2
	}
	source, ok := readSource(file)
	if !ok {
		return 1
	}

	program, err := pipeline.Parse(source)
	if err != nil {
		return fail(err)
	}
	fmt.Println(visualizer.NewVisualizer(program).Generate())

	return 0
}

func cmdCheck(args []string) int {
	file, ok := parseFileArgs(flag.NewFlagSet("check", flag.ContinueOnError), args)
	if !ok {
		return 2
	}
	source, ok := readSource(file)
	if !ok {
		return 1
	}

	issues, err := pipeline.Check(source)
	if err != nil {
		return fail(err)
	}
	for _, issue := range issues {
		fmt.Println(issue.Error())
	}
	if len(issues) > 0 {
		return 1
	}

	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("L25 %s REPL\nEnter a whole program; it runs once it parses. Ctrl+D exits.\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.Run.HistoryFile
	if home, err := os.UserHomeDir(); err == nil && !filepath.IsAbs(histPath) {
		histPath = filepath.Join(home, histPath)
	}
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	input := &linerInput{state: ln, prompt: cfg.Run.Prompt}
	for {
		code, ok := readByParseProbe(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		res := pipeline.Run(context.Background(), []byte(code), &pipeline.Options{
			Input:  input,
			Output: os.Stdout,
		})
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, res.Error)
		}
	}
}

// readByParseProbe keeps prompting until the buffered text parses or fails
// for a reason other than reaching the end of input.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, err := pipeline.Parse([]byte(src)); compiler_errors.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// -----------------------------------------------------------------------------
// serve
// -----------------------------------------------------------------------------

func cmdServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address, overrides server.addr")
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New(os.Stderr, appName+": ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Print(err)
		return 1
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Print(err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Print(err)
		return 1
	}

	return 0
}
