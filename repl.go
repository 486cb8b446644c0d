package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/lib/driver"
	"github.com/vyPal/minipas/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "repl",
		Usage:    "Read lines and evaluate each as a program or an expression",
		Category: "interpret",
		Flags: append(pipelineFlags(),
			&cli.StringFlag{
				Name:  "prompt",
				Value: "pas> ",
				Usage: "The prompt printed before each line",
			},
		),
		Action: repl,
	})
}

// repl evaluates one line at a time. A line starting with PROGRAM is run
// as a whole program; anything else is an expression. Errors are reported
// and the loop goes on. Nothing carries over from one line to the next.
func repl(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	w := c.App.Writer
	prompt := util.NewPrompter(c.App.Reader, w)

	for {
		line, ok := prompt.Line(c.String("prompt"))
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		opts := s.opts
		opts.Filename = "<repl>"
		if err := replLine(c, line, opts, s.format); err != nil {
			fmt.Fprintln(c.App.ErrWriter, describe(err, line))
		}
	}
}

func replLine(c *cli.Context, line string, opts driver.Options, format string) error {
	if len(line) >= 7 && strings.EqualFold(line[:7], "PROGRAM") {
		res, err := driver.Run(line, opts)
		if err != nil {
			return err
		}
		if len(res.Memory) == 0 {
			fmt.Fprintln(c.App.Writer, color.New(color.Faint).Sprint("(no variables)"))
			return nil
		}
		return printMemory(c.App.Writer, format, res.Memory)
	}

	v, err := driver.EvalExpression(line, opts)
	if err != nil {
		return err
	}
	return printValue(c.App.Writer, format, v)
}
