package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/lib/analyzer"
	"github.com/vyPal/minipas/lib/driver"
	"github.com/vyPal/minipas/lib/interpreter"
	paslex "github.com/vyPal/minipas/lib/lexer"
	"github.com/vyPal/minipas/lib/parser"
)

const (
	exitOther      = 1
	exitLex        = 2
	exitParse      = 3
	exitName       = 4
	exitArithmetic = 5
)

func exitCode(err error) int {
	var (
		lexErr   *paslex.LexError
		parseErr *parser.ParseError
		nameErr  *analyzer.NameError
		arithErr *interpreter.ArithmeticError
	)
	switch {
	case errors.As(err, &lexErr):
		return exitLex
	case errors.As(err, &parseErr):
		return exitParse
	case errors.As(err, &nameErr):
		return exitName
	case errors.As(err, &arithErr):
		return exitArithmetic
	}
	return exitOther
}

// describe renders err as one line, plus the offending source line and a
// caret when the error carries a position inside src.
func describe(err error, src string) string {
	var stageErr *driver.StageError
	var posErr participle.Error
	if !errors.As(err, &stageErr) || !errors.As(err, &posErr) {
		return color.RedString("Error: %s", err)
	}

	pos := posErr.Position()
	msg := color.RedString("Error: %s error at %s: %s", stageErr.Stage, pos, posErr.Message())

	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return msg
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"
	return fmt.Sprintf("%s\n    %s\n    %s", msg, line, color.YellowString(caret))
}

// fail turns a pipeline error into the exit status for its kind.
func fail(err error, src string) error {
	return cli.Exit(describe(err, src), exitCode(err))
}

func trace(c *cli.Context, format string, args ...any) {
	if !c.Bool("verbose") {
		return
	}
	color.New(color.Faint).Fprintf(c.App.ErrWriter, format+"\n", args...)
}

func warn(c *cli.Context, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(c.App.ErrWriter, "Warning: "+format+"\n", args...)
}
