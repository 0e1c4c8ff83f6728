package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StdinConfirmer answers yes/no prompts from an input stream. It implements
// sync.Confirmer.
type StdinConfirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewStdinConfirmer creates a confirmer reading answers from r and writing
// prompts to w.
func NewStdinConfirmer(r io.Reader, w io.Writer) *StdinConfirmer {
	return &StdinConfirmer{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Confirm asks a yes/no question and returns true on a "y"/"yes" answer.
func (c *StdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.writer, "%s [y/N]: ", prompt)

	answer, err := c.reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
