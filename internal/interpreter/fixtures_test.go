package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kievzenit/l25/internal/lexer"
	"github.com/kievzenit/l25/internal/parser"
	"gopkg.in/yaml.v3"
)

// programFixture is one golden program under testdata/programs.
type programFixture struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Input  []string `yaml:"input"`
	Output string   `yaml:"output"`
	Error  string   `yaml:"error"`
}

func loadFixtures(t *testing.T) map[string]programFixture {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "programs", "*.yaml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}

	fixtures := make(map[string]programFixture, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}

		var fixture programFixture
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fixture); err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		fixtures[strings.TrimSuffix(filepath.Base(path), ".yaml")] = fixture
	}

	return fixtures
}

func TestProgramFixtures(t *testing.T) {
	for name, fixture := range loadFixtures(t) {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := runFixture(t, fixture.Source, fixture.Input, &out)

			if fixture.Error == "" && err != nil {
				t.Fatalf("%s: unexpected error: %v\noutput:\n%s", fixture.Name, err, out.String())
			}
			if fixture.Error != "" {
				if err == nil {
					t.Fatalf("%s: want error %q, got none", fixture.Name, fixture.Error)
				}
				if !strings.Contains(err.Error(), fixture.Error) {
					t.Fatalf("%s: want error containing %q, got %q", fixture.Name, fixture.Error, err.Error())
				}
			}

			if out.String() != fixture.Output {
				t.Fatalf("%s: want output\n%q\ngot\n%q", fixture.Name, fixture.Output, out.String())
			}
		})
	}
}

// runFixture runs src and reports lexer errors like any other failure.
func runFixture(t *testing.T, src string, input []string, out *bytes.Buffer) error {
	t.Helper()
	tokens, err := lexer.NewLexer([]byte(src)).Tokenize()
	if err != nil {
		return err
	}

	return NewInterpreter(parser.NewParser(lexer.NewTokenScanner(tokens)), &Options{
		Input:  NewSliceInput(input),
		Output: out,
	}).Interpret()
}
