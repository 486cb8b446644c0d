package util

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on out and reads answers from in. A single
// buffered reader is kept so consecutive prompts do not lose input.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() string {
	response, err := p.reader.ReadString('\n')
	if err != nil && response == "" {
		return ""
	}
	return strings.TrimSpace(response)
}

// String returns the answer, or def when the answer is empty or input has
// run out.
func (p *Prompter) String(prompt string, def string) string {
	fmt.Fprintf(p.out, "%s (%s): ", prompt, def)

	response := p.readLine()
	if response == "" {
		return def
	}

	return response
}

func (p *Prompter) YN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(p.out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(p.out, "%s (y/N): ", prompt)
	}

	response := p.readLine()
	if response == "" {
		return def
	}

	return strings.ToLower(response) == "y"
}

// Line prints prompt and returns the next line; ok is false once input is
// exhausted.
func (p *Prompter) Line(prompt string) (line string, ok bool) {
	fmt.Fprint(p.out, prompt)

	response, err := p.reader.ReadString('\n')
	if err != nil && response == "" {
		return "", false
	}
	return strings.TrimSpace(response), true
}
