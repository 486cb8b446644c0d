package paslex

import (
	"fmt"
	"iter"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/minipas/lib/token"
)

// LexError reports malformed input: an unterminated comment, a numeric
// literal with more than one decimal point, or (in strict mode) a character
// that starts no token.
type LexError struct {
	Pos lexer.Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *LexError) Message() string          { return e.Msg }
func (e *LexError) Position() lexer.Position { return e.Pos }

type Option func(*Lexer)

// Strict makes unrecognized characters a LexError instead of an UNKNOWN token.
func Strict() Option {
	return func(l *Lexer) { l.strict = true }
}

// Filename sets the file name reported in token positions.
func Filename(name string) Option {
	return func(l *Lexer) { l.filename = name }
}

// Lexer produces tokens on demand. It holds a single character of
// lookahead and never buffers tokens.
type Lexer struct {
	src      string
	offset   int  // index of ch
	ch       byte // current char, 0 at end of input
	line     int
	column   int
	filename string
	strict   bool
}

func New(src string, opts ...Option) *Lexer {
	l := &Lexer{src: src, line: 1, column: 1}
	for _, opt := range opts {
		opt(l)
	}
	if len(src) > 0 {
		l.ch = src[0]
	}
	return l
}

// All returns the token sequence of src, ending with exactly one EOF token
// or at the first error. Every iteration starts a fresh scan.
func All(src string, opts ...Option) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		l := New(src, opts...)
		for {
			tok, err := l.Next()
			if !yield(tok, err) || err != nil || tok.Kind == token.EOF {
				return
			}
		}
	}
}

func (l *Lexer) eof() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.offset++
	if l.eof() {
		l.ch = 0
	} else {
		l.ch = l.src[l.offset]
	}
}

func (l *Lexer) peek() byte {
	if l.offset+1 >= len(l.src) {
		return 0
	}
	return l.src[l.offset+1]
}

func (l *Lexer) pos() lexer.Position {
	return lexer.Position{Filename: l.filename, Offset: l.offset, Line: l.line, Column: l.column}
}

// Next returns the next token. Once EOF has been returned, every further
// call returns EOF again.
func (l *Lexer) Next() (token.Token, error) {
	for {
		l.skipWhitespace()
		if l.ch != '{' || l.eof() {
			break
		}
		if err := l.skipComment(); err != nil {
			return token.Token{}, err
		}
	}

	start := l.pos()
	if l.eof() {
		return token.Token{Kind: token.EOF, Pos: start}, nil
	}

	switch {
	case isDigit(l.ch):
		return l.readNumber(start)
	case isLetter(l.ch):
		return l.readWord(start), nil
	case l.ch == ':' && l.peek() == '=':
		l.advance()
		l.advance()
		return token.Token{Kind: token.Assign, Text: ":=", Pos: start}, nil
	}

	if kind, ok := token.Single(l.ch); ok {
		text := string(l.ch)
		l.advance()
		return token.Token{Kind: kind, Text: text, Pos: start}, nil
	}

	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	if l.strict {
		return token.Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("unrecognized character %q", r)}
	}
	for i := 0; i < size; i++ {
		l.advance()
	}
	return token.Token{Kind: token.Unknown, Text: string(r), Pos: start}, nil
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() && isSpace(l.ch) {
		l.advance()
	}
}

// skipComment consumes a {...} comment. Comments do not nest.
func (l *Lexer) skipComment() error {
	start := l.pos()
	l.advance() // {
	for !l.eof() {
		if l.ch == '}' {
			l.advance()
			return nil
		}
		l.advance()
	}
	return &LexError{Pos: start, Msg: "unterminated comment"}
}

func (l *Lexer) readNumber(start lexer.Position) (token.Token, error) {
	begin := l.offset
	dots := 0
	for !l.eof() && (isDigit(l.ch) || l.ch == '.') {
		if l.ch == '.' {
			dots++
			if dots > 1 {
				return token.Token{}, &LexError{
					Pos: l.pos(),
					Msg: fmt.Sprintf("malformed number %q: second decimal point", l.src[begin:l.offset+1]),
				}
			}
		}
		l.advance()
	}
	text := l.src[begin:l.offset]

	if dots == 1 {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("malformed number %q", text)}
		}
		return token.Token{Kind: token.RealConst, Text: text, Real: v, Pos: start}, nil
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("integer literal %s out of range", text)}
	}
	return token.Token{Kind: token.IntegerConst, Text: text, Int: v, Pos: start}, nil
}

func (l *Lexer) readWord(start lexer.Position) token.Token {
	begin := l.offset
	for !l.eof() && isLetter(l.ch) {
		l.advance()
	}
	word := l.src[begin:l.offset]
	if kind, ok := token.Lookup(word); ok {
		return token.Token{Kind: kind, Text: word, Pos: start}
	}
	return token.Token{Kind: token.ID, Text: word, Pos: start}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}
