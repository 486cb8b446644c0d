package token

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type Kind int

const (
	Unknown Kind = iota
	EOF

	// Literals & identifiers
	IntegerConst // 42
	RealConst    // 3.14
	ID           // identifier

	// Operators
	Plus       // +
	Minus      // -
	Mul        // *
	IntegerDiv // DIV
	FloatDiv   // /
	Assign     // :=

	// Punctuation
	LParen // (
	RParen // )
	Semi   // ;
	Dot    // .
	Colon  // :
	Comma  // ,

	// Keywords
	Program
	Var
	Integer
	Real
	Begin
	End
	Procedure
)

var names = [...]string{
	Unknown:      "UNKNOWN",
	EOF:          "EOF",
	IntegerConst: "INTEGER_CONST",
	RealConst:    "REAL_CONST",
	ID:           "ID",
	Plus:         "PLUS",
	Minus:        "MINUS",
	Mul:          "MUL",
	IntegerDiv:   "INTEGER_DIV",
	FloatDiv:     "FLOAT_DIV",
	Assign:       "ASSIGN",
	LParen:       "LPAREN",
	RParen:       "RPAREN",
	Semi:         "SEMI",
	Dot:          "DOT",
	Colon:        "COLON",
	Comma:        "COMMA",
	Program:      "PROGRAM",
	Var:          "VAR",
	Integer:      "INTEGER",
	Real:         "REAL",
	Begin:        "BEGIN",
	End:          "END",
	Procedure:    "PROCEDURE",
}

// Kinds lists every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(names))
	for k := range names {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k == IntegerDiv || (k >= Program && k <= Procedure)
}

// Token is an immutable lexeme. Int and Real are only meaningful for
// IntegerConst and RealConst respectively; Text holds the source spelling.
type Token struct {
	Kind Kind
	Text string
	Int  int64
	Real float64
	Pos  lexer.Position
}

func (t Token) String() string {
	switch t.Kind {
	case IntegerConst:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	case RealConst:
		return fmt.Sprintf("%s(%g)", t.Kind, t.Real)
	case EOF:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
}

var keywords = map[string]Kind{
	"PROGRAM":   Program,
	"VAR":       Var,
	"DIV":       IntegerDiv,
	"INTEGER":   Integer,
	"REAL":      Real,
	"BEGIN":     Begin,
	"END":       End,
	"PROCEDURE": Procedure,
}

// Lookup matches a word against the reserved-word table, ignoring case.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords[strings.ToUpper(word)]
	return k, ok
}

var singles = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Mul,
	'/': FloatDiv,
	'(': LParen,
	')': RParen,
	';': Semi,
	'.': Dot,
	':': Colon,
	',': Comma,
}

// Single returns the kind of a one-character token.
func Single(ch byte) (Kind, bool) {
	k, ok := singles[ch]
	return k, ok
}
