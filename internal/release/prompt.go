package release

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// StdinPrompter implements the Prompter interface by reading a single
// line from an input stream. Only a case-insensitive "y" confirms.
type StdinPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewStdinPrompter returns a new StdinPrompter
func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{
		in:  in,
		out: out,
	}
}

// Confirm prints the prompt and blocks until a line of input arrives
func (p *StdinPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.out, prompt)

	reader := bufio.NewReader(p.in)

	answer, err := reader.ReadString('\n')

	// EOF counts as a decline, not an error
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
