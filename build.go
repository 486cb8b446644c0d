package main

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/lib/cache"
	"github.com/vyPal/minipas/lib/compiler"
	"github.com/vyPal/minipas/lib/driver"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Compile a Pascal program to LLVM IR",
		Category:  "compile",
		ArgsUsage: "[file]",
		Flags: append(pipelineFlags(),
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "The directory for build output (default: compiler.out_dir or build)",
			},
			&cli.BoolFlag{
				Name:    "native",
				Aliases: []string{"n"},
				Usage:   "Also link the IR into an executable with clang",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "The name for the built binary",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "The target triple passed to clang",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Recompile even if the source has not changed",
			},
			&cli.StringSliceFlag{
				Name:    "clang-args",
				Aliases: []string{"a"},
				Usage: "Pass additional arguments to clang. " +
					"Useful for passing flags like -O2 or -g.",
			},
		),
		Action: build,
	})
}

func build(c *cli.Context) error {
	s, err := prepare(c)
	if err != nil {
		return err
	}

	outDir := "build"
	if s.conf != nil {
		outDir = s.conf.Compiler.OutDir
	}
	if c.IsSet("out-dir") {
		outDir = c.String("out-dir")
	}

	llFile, err := emitIR(c, s, outDir)
	if err != nil {
		return err
	}

	if !c.Bool("native") {
		return nil
	}

	exe := c.String("output")
	if exe == "" {
		ext := ""
		if runtime.GOOS == "windows" {
			ext = ".exe"
		}
		exe = driver.OutputPath(s.path, outDir, ext)
	}

	args := []string{llFile, "-o", exe}
	target := c.String("target")
	clangFlags := ""
	if s.conf != nil {
		if target == "" {
			target = s.conf.Compiler.Target
		}
		clangFlags = s.conf.Compiler.ClangFlags
	}
	if target != "" {
		args = append(args, "-target", target)
	}
	args = append(args, strings.Fields(clangFlags)...)
	args = append(args, c.StringSlice("clang-args")...)

	trace(c, "clang %s", strings.Join(args, " "))
	var stderr bytes.Buffer
	cmd := exec.Command("clang", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return cli.Exit(color.RedString("Error linking with clang: %s\n%s", err, stderr.String()), exitOther)
	}
	fmt.Fprintln(c.App.Writer, "Wrote", exe)
	return nil
}

// emitIR writes the program's IR to outDir, reusing the previous output when
// neither the source nor the settings changed since it was written.
func emitIR(c *cli.Context, s *settings, outDir string) (string, error) {
	source := s.path
	if abs, err := filepath.Abs(s.path); err == nil {
		source = abs
	}
	sum := cache.Sum(Version, s.src, strconv.FormatBool(s.opts.Strict), string(s.opts.RealDivision))

	bc, err := cache.Open(outDir)
	if err != nil {
		warn(c, "ignoring build cache: %s", err)
		bc = nil
	}
	if bc != nil && !c.Bool("no-cache") {
		if llFile, ok := bc.Fresh(source, sum); ok {
			fmt.Fprintln(c.App.Writer, "Up to date", llFile)
			return llFile, nil
		}
	}

	m, err := driver.Compile(s.src, s.opts)
	if err != nil {
		return "", fail(err, s.src)
	}
	trace(c, "compiled %s: slots %s", s.opts.Filename, strings.Join(compiler.Globals(m), ", "))

	llFile, err := driver.WriteOutput([]byte(m.String()), s.path, outDir, ".ll")
	if err != nil {
		return "", cli.Exit(color.RedString("Error writing IR: %s", err), exitOther)
	}
	fmt.Fprintln(c.App.Writer, "Wrote", llFile)

	if bc != nil {
		bc.Record(source, sum, llFile)
		if err := bc.Save(); err != nil {
			warn(c, "could not save build cache: %s", err)
		}
	}
	return llFile, nil
}
