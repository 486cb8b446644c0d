package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

const Version = "0.3.0"

var commands []*cli.Command

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:                   "minipas",
		Usage:                  "Interpret and compile a small subset of Pascal",
		Version:                Version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Reader:                 in,
		Writer:                 out,
		ErrWriter:              errOut,
		Commands:               commands,
	}
}

func main() {
	app := newApp(os.Stdin, color.Output, color.Error)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(app.ErrWriter, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}
