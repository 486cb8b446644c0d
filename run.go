package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/lib/ast"
	"github.com/vyPal/minipas/lib/driver"
	paslex "github.com/vyPal/minipas/lib/lexer"
	"github.com/vyPal/minipas/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a Pascal program and print its variables",
		Category:  "interpret",
		ArgsUsage: "[file]",
		Flags: append(pipelineFlags(),
			&cli.BoolFlag{
				Name:    "dump-ast",
				Aliases: []string{"d"},
				Usage:   "Print the AST as JSON before running",
			},
			&cli.BoolFlag{
				Name:  "dump-scopes",
				Usage: "Print the resolved scopes before running",
			},
		),
		Action: runProgram,
	}, &cli.Command{
		Name:      "check",
		Usage:     "Parse a program and resolve its names without running it",
		Category:  "interpret",
		ArgsUsage: "[file]",
		Flags:     pipelineFlags(),
		Action:    check,
	}, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a program",
		Category:  "interpret",
		ArgsUsage: "[file]",
		Flags:     pipelineFlags(),
		Action:    tokens,
	}, &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate an arithmetic expression",
		Category:  "interpret",
		ArgsUsage: "<expr>",
		Flags:     pipelineFlags(),
		Action:    eval,
	})
}

func runProgram(c *cli.Context) error {
	s, err := prepare(c)
	if err != nil {
		return err
	}
	w := c.App.Writer

	res, err := driver.Run(s.src, s.opts)
	var stageErr *driver.StageError
	resolved := err == nil || (errors.As(err, &stageErr) && stageErr.Stage == driver.StageEvaluate)

	if c.Bool("dump-ast") && res != nil && res.Program != nil {
		dump, derr := ast.Dump(res.Program)
		if derr != nil {
			return cli.Exit(color.RedString("Error dumping AST: %s", derr), exitOther)
		}
		if derr := encode(w, project.FormatJSON, dump); derr != nil {
			return cli.Exit(color.RedString("Error encoding AST: %s", derr), exitOther)
		}
	}
	if c.Bool("dump-scopes") && resolved {
		if err := printScopes(w, s.format, res.Report); err != nil {
			return cli.Exit(color.RedString("Error printing scopes: %s", err), exitOther)
		}
	}
	if err != nil {
		return fail(err, s.src)
	}

	trace(c, "evaluated %s: %d variables", s.opts.Filename, len(res.Memory))
	return printMemory(w, s.format, res.Memory)
}

func check(c *cli.Context) error {
	s, err := prepare(c)
	if err != nil {
		return err
	}
	res, err := driver.Check(s.src, s.opts)
	if err != nil {
		return fail(err, s.src)
	}
	if s.format != project.FormatText {
		return encode(c.App.Writer, s.format, res.Report)
	}
	fmt.Fprintf(c.App.Writer, "%s: %s\n", s.opts.Filename, color.GreenString("OK"))
	return nil
}

type tokenInfo struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// tokens drives the participle lexer adapter, the same token source a
// participle grammar would read.
func tokens(c *cli.Context) error {
	s, err := prepare(c)
	if err != nil {
		return err
	}

	var opts []paslex.Option
	if s.opts.Strict {
		opts = append(opts, paslex.Strict())
	}
	lex, err := paslex.LexString(s.opts.Filename, s.src, opts...)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), exitOther)
	}

	var toks []tokenInfo
	for {
		tok, err := lex.Next()
		if err != nil {
			return fail(&driver.StageError{Stage: driver.StageLex, Err: err}, s.src)
		}
		if tok.Type == lexer.EOF {
			break
		}
		toks = append(toks, tokenInfo{
			Kind:   paslex.KindOf(tok.Type).String(),
			Text:   tok.Value,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}

	if s.format != project.FormatText {
		return encode(c.App.Writer, s.format, toks)
	}
	for _, t := range toks {
		fmt.Fprintf(c.App.Writer, "%d:%d\t%-13s %s\n", t.Line, t.Column, t.Kind, t.Text)
	}
	return nil
}

func eval(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	expr := strings.Join(c.Args().Slice(), " ")
	if c.String("input-str") != "" {
		expr = c.String("input-str")
	}
	if expr == "" {
		return cli.Exit(color.RedString("Error: No expression specified"), exitOther)
	}
	s.opts.Filename = "<expr>"

	v, err := driver.EvalExpression(expr, s.opts)
	if err != nil {
		return fail(err, expr)
	}
	return printValue(c.App.Writer, s.format, v)
}

func printValue(w io.Writer, format string, v fmt.Stringer) error {
	if format != project.FormatText {
		return encode(w, format, v)
	}
	_, err := fmt.Fprintln(w, v)
	return err
}
