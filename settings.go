package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/lib/driver"
	"github.com/vyPal/minipas/lib/interpreter"
	"github.com/vyPal/minipas/lib/project"
)

// pipelineFlags are shared by every command that reads a program.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input-str",
			Aliases: []string{"s"},
			Usage:   "Use a string instead of a file",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "The path to the " + project.FileName + " file",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Reject unrecognized characters instead of passing them to the parser",
		},
		&cli.StringFlag{
			Name:  "real-division",
			Usage: "What '/' does with a zero divisor: error or ieee",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json or yaml",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Trace each pipeline stage on stderr",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}

type settings struct {
	opts   driver.Options
	format string
	conf   *project.Config
	// confDir is the directory holding the loaded config, if any.
	confDir string
	src     string
	path    string
}

// loadConfig reads --config, or pasconf.yaml in the working directory when
// one exists. It returns nil when there is no config to read.
func loadConfig(c *cli.Context) (*project.Config, string, error) {
	path := c.String("config")
	if path == "" {
		path = project.FileName
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, project.FileName)
	}

	conf, err := project.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	if ok, err := conf.SupportedBy(Version); err == nil && !ok {
		warn(c, "%s requires minipas %s, this is %s", path, conf.Requires, Version)
	}
	return &conf, filepath.Dir(path), nil
}

// loadSettings merges the config file with command-line flags; flags win.
func loadSettings(c *cli.Context) (*settings, error) {
	if c.Bool("no-color") {
		color.NoColor = true
	}

	conf, dir, err := loadConfig(c)
	if err != nil {
		return nil, cli.Exit(color.RedString("Error reading config: %s", err), exitOther)
	}
	s := &settings{conf: conf, confDir: dir, format: project.FormatText}
	if conf != nil {
		trace(c, "using config %s", filepath.Join(dir, project.FileName))
		s.opts.Strict = conf.Lexer.Strict
		s.opts.RealDivision = conf.DivisionPolicy()
		s.format = conf.Output.Format
	}

	if c.IsSet("strict") {
		s.opts.Strict = c.Bool("strict")
	}
	if c.IsSet("real-division") {
		p, err := interpreter.ParseDivisionPolicy(c.String("real-division"))
		if err != nil {
			return nil, cli.Exit(color.RedString("Error: %s", err), exitOther)
		}
		s.opts.RealDivision = p
	}
	if c.IsSet("format") {
		if err := project.ValidFormat(c.String("format")); err != nil {
			return nil, cli.Exit(color.RedString("Error: %s", err), exitOther)
		}
		s.format = c.String("format")
	}
	return s, nil
}

// loadSource picks the program text: --input-str, then the file argument,
// then the config's main file.
func (s *settings) loadSource(c *cli.Context) error {
	if str := c.String("input-str"); str != "" {
		s.src, s.path = str, "input"+driver.SourceExt
		s.opts.Filename = "<input>"
		return nil
	}

	path := c.Args().First()
	if path == "" {
		if s.conf == nil || s.conf.Main == "" {
			return cli.Exit(color.RedString("Error: No file specified"), exitOther)
		}
		path = filepath.Join(s.confDir, s.conf.Main)
	}

	src, err := driver.ReadSource(path)
	if err != nil {
		return cli.Exit(color.RedString("Error reading %s: %s", path, err), exitOther)
	}
	s.src, s.path = src, path
	s.opts.Filename = path
	return nil
}

func prepare(c *cli.Context) (*settings, error) {
	s, err := loadSettings(c)
	if err != nil {
		return nil, err
	}
	if err := s.loadSource(c); err != nil {
		return nil, err
	}
	trace(c, "read %d bytes from %s", len(s.src), s.opts.Filename)
	return s, nil
}
