package semantic_analyzer

import (
	"strings"
	"testing"

	"github.com/kievzenit/l25/internal/lexer"
	"github.com/kievzenit/l25/internal/parser"
)

func analyze(t *testing.T, src string) []*Issue {
	t.Helper()
	tokens, err := lexer.NewLexer([]byte(src)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	program, err := parser.NewParser(lexer.NewTokenScanner(tokens)).Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	return NewSemanticAnalyzer(program).Analyze()
}

func TestAnalyzeCleanProgram(t *testing.T) {
	src := `program ok {
	struct Point { x, y };
	func norm(p) {
		let s = p.x * p.x + p.y * p.y;
		if (s > total) { total = s; };
		return s;
	}
	main {
		let total = 0;
		let p = Point(3, 4);
		let n;
		input(n);
		output(norm(p), n);
		try { output(1 / 0); } catch { output("caught"); };
	}
}`
	if issues := analyze(t, src); len(issues) != 0 {
		t.Fatalf("want no issues, got %v", issues)
	}
}

func TestAnalyzeIssues(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		line    int
		column  int
	}{
		{
			name:    "Undefined Variable",
			src:     "program p { main { output(y); } }",
			message: "variable y not defined",
			line:    1,
			column:  27,
		},
		{
			name:    "Undefined Function",
			src:     "program p { main { go(); } }",
			message: "function go not defined",
			line:    1,
			column:  20,
		},
		{
			name:    "Function Arity",
			src:     "program p { func f(a, b) { return a; } main { f(1); } }",
			message: "function f expects 2 arguments but got 1",
			line:    1,
			column:  47,
		},
		{
			name:    "Struct Arity",
			src:     "program p { struct S { a }; main { let s = S(1, 2); } }",
			message: "struct S expects 1 fields but got 2",
			line:    1,
			column:  44,
		},
		{
			name:    "Duplicate Function",
			src:     "program p { func f() { return 1; } func f() { return 2; } main { f(); } }",
			message: "function f already defined",
			line:    1,
			column:  41,
		},
		{
			name:    "Duplicate Struct",
			src:     "program p { struct S { a }; struct S { b }; main { output(1); } }",
			message: "struct S already defined",
			line:    1,
			column:  36,
		},
		{
			name:    "Repeated Field",
			src:     "program p { struct S { a, a }; main { output(1); } }",
			message: "field a repeated in struct S",
			line:    1,
			column:  27,
		},
		{
			name:    "Repeated Parameter",
			src:     "program p { func f(a, a) { return a; } main { f(1, 2); } }",
			message: "parameter a repeated in function f",
			line:    1,
			column:  23,
		},
		{
			name:    "Literal Division By Zero",
			src:     "program p { main { output(4 / 0); } }",
			message: "division by zero outside a try block",
			line:    1,
			column:  29,
		},
		{
			name:    "Caller Local Is Not Visible",
			src:     "program p { func f() { return hidden; } func g() { let hidden = 1; return f(); } main { output(g()); } }",
			message: "variable hidden not defined",
			line:    1,
			column:  31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := analyze(t, tt.src)
			if len(issues) != 1 {
				t.Fatalf("want 1 issue, got %d: %v", len(issues), issues)
			}

			issue := issues[0]
			if issue.GetMessage() != tt.message {
				t.Fatalf("want message %q, got %q", tt.message, issue.GetMessage())
			}
			if issue.GetLine() != tt.line || issue.GetColumn() != tt.column {
				t.Fatalf("want position %d:%d, got %d:%d", tt.line, tt.column, issue.GetLine(), issue.GetColumn())
			}
		})
	}
}

func TestIssueRendering(t *testing.T) {
	issues := analyze(t, "program p {\n main {\n  output(z);\n }\n}")
	if len(issues) != 1 {
		t.Fatalf("want 1 issue, got %v", issues)
	}

	got := issues[0].Error()
	if !strings.HasPrefix(got, "[Line 3:10] Warning: ") {
		t.Fatalf("unexpected rendering %q", got)
	}
}
