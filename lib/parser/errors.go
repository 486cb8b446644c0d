package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/minipas/lib/token"
)

// ParseError is raised when the current token matches none of the kinds the
// grammar allows at that point.
type ParseError struct {
	Got      token.Token
	Expected []token.Kind
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Got.Pos, e.Message())
}

func (e *ParseError) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unexpected %s", e.Got.Kind)
	if e.Got.Text != "" {
		fmt.Fprintf(&b, " %q", e.Got.Text)
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		if len(names) == 1 {
			fmt.Fprintf(&b, ", expected %s", names[0])
		} else {
			fmt.Fprintf(&b, ", expected one of %s", strings.Join(names, ", "))
		}
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, " (%s)", e.Reason)
	}
	return b.String()
}

func (e *ParseError) Position() lexer.Position { return e.Got.Pos }
