package paslex

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/minipas/lib/token"
)

// PascalLexer exposes the minipas lexer through participle's lexer API.
var PascalLexer lexer.Definition = &definition{}

// NewDefinition constructs a Definition whose lexers are created with opts.
func NewDefinition(opts ...Option) lexer.Definition {
	return &definition{opts: opts}
}

type definition struct {
	opts []Option
}

func (d *definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opts := append([]Option{Filename(filename)}, d.opts...)
	return &participleLexer{lex: New(string(src), opts...)}, nil
}

func (d *definition) Symbols() map[string]lexer.TokenType {
	symbols := map[string]lexer.TokenType{}
	for _, k := range token.Kinds() {
		symbols[k.String()] = TokenType(k)
	}
	return symbols
}

// TokenType maps a token kind onto participle's token type space.
func TokenType(k token.Kind) lexer.TokenType {
	if k == token.EOF {
		return lexer.EOF
	}
	return lexer.TokenType(k)
}

// KindOf is the inverse of TokenType.
func KindOf(t lexer.TokenType) token.Kind {
	if t == lexer.EOF {
		return token.EOF
	}
	return token.Kind(t)
}

type participleLexer struct {
	lex *Lexer
}

// LexString returns a participle lexer over a string.
func LexString(filename, s string, opts ...Option) (lexer.Lexer, error) {
	return NewDefinition(opts...).Lex(filename, strings.NewReader(s))
}

func (p *participleLexer) Next() (lexer.Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return lexer.Token{}, err
	}
	return lexer.Token{
		Type:  TokenType(tok.Kind),
		Value: tok.Text,
		Pos:   tok.Pos,
	}, nil
}
