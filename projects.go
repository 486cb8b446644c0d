package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/minipas/lib/project"
	"github.com/vyPal/minipas/lib/token"
	"github.com/vyPal/minipas/util"
)

const mainTemplate = `PROGRAM %s;
VAR
   a, b : INTEGER;
   y    : REAL;

BEGIN
   a := 2;
   b := 10 * a + 10 * a DIV 4;
   y := 20 / 7 + 3.14
END.
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new Pascal project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Use the default configuration without asking",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing files",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}
	prompt := util.NewPrompter(c.App.Reader, c.App.Writer)
	w := c.App.Writer

	name := c.String("name")
	if name == "" {
		name = filepath.Base(rootDir)
		if abs, err := filepath.Abs(rootDir); err == nil {
			name = filepath.Base(abs)
		}
	}

	conf := project.Config{}
	conf.CreateDefault(name)
	if !c.Bool("yes") && !prompt.YN("Use default configuration?", true) {
		conf.Name = prompt.String("Project name", conf.Name)
		conf.Description = prompt.String("Project description", conf.Description)
		conf.Version = prompt.String("Project version", conf.Version)
		conf.Main = prompt.String("Main file", conf.Main)
		conf.Interpreter.RealDivision = prompt.String("Real division by zero (error/ieee)", conf.Interpreter.RealDivision)
		conf.Output.Format = prompt.String("Output format (text/json/yaml)", conf.Output.Format)
	}
	if err := conf.Validate(); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), exitOther)
	}

	mainPath := filepath.Join(rootDir, conf.Main)
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		return cli.Exit(color.RedString("Error creating %s: %s", filepath.Dir(mainPath), err), exitOther)
	}
	if _, err := os.Stat(mainPath); os.IsNotExist(err) || c.Bool("force") {
		if err := os.WriteFile(mainPath, []byte(fmt.Sprintf(mainTemplate, programName(conf.Name))), 0o644); err != nil {
			return cli.Exit(color.RedString("Error writing %s: %s", mainPath, err), exitOther)
		}
		fmt.Fprintln(w, "Created file:", mainPath)
	}

	confPath := filepath.Join(rootDir, project.FileName)
	saved, err := conf.Save(confPath, c.Bool("force"), prompt)
	if err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", confPath, err), exitOther)
	}
	if saved {
		fmt.Fprintln(w, "Created file:", confPath)
	}

	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, "Project initialized successfully!")
	fmt.Fprintln(w, "Run 'cd", rootDir, "&& minipas run' to run the project.")
	fmt.Fprintln(w, "----------------------------------------")
	return nil
}

// programName reduces a project name to a valid identifier of letters and
// underscores that is not a keyword.
func programName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch == '_':
			out = append(out, ch)
		case ch == '-' || ch == ' ' || ch == '.':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "Main"
	}
	if _, keyword := token.Lookup(string(out)); keyword {
		return "P_" + string(out)
	}
	return string(out)
}
