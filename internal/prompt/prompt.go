package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter presents a question to the operator and returns the raw line
// typed in response. Implementations must not interpret the answer; all
// decision logic lives with the callers so it stays unit-testable.
type Prompter interface {
	Ask(question string) (string, error)
}

// StdinPrompter reads answers line by line from an input stream.
type StdinPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewStdinPrompter creates a Prompter bound to os.Stdin / os.Stdout.
func NewStdinPrompter() *StdinPrompter {
	return NewStdinPrompterWithIO(os.Stdin, os.Stdout)
}

// NewStdinPrompterWithIO creates a Prompter with custom streams (for testing)
func NewStdinPrompterWithIO(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Ask prints the question and returns the operator's trimmed answer.
// io.EOF is returned when the input stream is exhausted, so callers can
// distinguish "empty answer" from "nobody is listening".
func (p *StdinPrompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
