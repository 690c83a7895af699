package interpreter

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// LineReader supplies the lines consumed by `input`. ReadLine returns
// io.EOF once no lines are left.
type LineReader interface {
	ReadLine() (string, error)
}

type readerInput struct {
	reader *bufio.Reader
}

// NewReaderInput reads newline-terminated lines of any length from r.
func NewReaderInput(r io.Reader) LineReader {
	return &readerInput{reader: bufio.NewReader(r)}
}

func (in *readerInput) ReadLine() (string, error) {
	line, err := in.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

type sliceInput struct {
	lines []string
	pos   int
}

func NewSliceInput(lines []string) LineReader {
	return &sliceInput{lines: lines}
}

func (in *sliceInput) ReadLine() (string, error) {
	if in.pos >= len(in.lines) {
		return "", io.EOF
	}

	line := in.lines[in.pos]
	in.pos++
	return line, nil
}

// parseInputLine turns a trimmed line into an integer when it is one and
// into a string otherwise.
func parseInputLine(line string) Value {
	line = strings.TrimSpace(line)
	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		return IntegerValue{Val: n}
	}

	return StringValue{Val: line}
}
