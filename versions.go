package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "version",
		Usage:    "Print the minipas version",
		Category: "version",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "satisfies",
				Usage: "Exit with status 1 unless this version meets a constraint such as >=0.2.0",
			},
		},
		Action: version,
	})
}

func version(c *cli.Context) error {
	v, err := util.ParseSemver(c.App.Version)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), exitOther)
	}

	if constraint := c.String("satisfies"); constraint != "" {
		ok, err := v.Satisfies(constraint)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), exitOther)
		}
		if !ok {
			return cli.Exit(color.YellowString("minipas %s does not satisfy %s", v, constraint), exitOther)
		}
	}

	fmt.Fprintf(c.App.Writer, "minipas %s (%s %s/%s)\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
