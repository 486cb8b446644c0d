package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vyPal/minipas/lib/interpreter"
	"github.com/vyPal/minipas/util"
	"gopkg.in/yaml.v3"
)

const FileName = "pasconf.yaml"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Version     string            `yaml:"version"`
	Requires    string            `yaml:"requires,omitempty"`
	Main        string            `yaml:"main"`
	Lexer       LexerConfig       `yaml:"lexer"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Output      OutputConfig      `yaml:"output"`
	Compiler    CompilerConfig    `yaml:"compiler"`
}

type LexerConfig struct {
	Strict bool `yaml:"strict"`
}

type InterpreterConfig struct {
	RealDivision string `yaml:"real_division"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type CompilerConfig struct {
	Target     string `yaml:"target,omitempty"`
	OutDir     string `yaml:"out_dir"`
	ClangFlags string `yaml:"clang_flags,omitempty"`
}

func (c *Config) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new Pascal project"
	c.Version = "1.0.0"
	c.Main = "src/main.pas"
	c.Interpreter.RealDivision = string(interpreter.DivisionError)
	c.Output.Format = FormatText
	c.Compiler.OutDir = "build"
}

// applyDefaults fills the fields an older or hand-written file may omit.
func (c *Config) applyDefaults() {
	if c.Interpreter.RealDivision == "" {
		c.Interpreter.RealDivision = string(interpreter.DivisionError)
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Compiler.OutDir == "" {
		c.Compiler.OutDir = "build"
	}
}

func ValidFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := interpreter.ParseDivisionPolicy(c.Interpreter.RealDivision); err != nil {
		errs = append(errs, err)
	}
	if err := ValidFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Version != "" {
		if _, err := util.ParseSemver(c.Version); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Requires != "" {
		if _, err := (util.Semver{}).Satisfies(c.Requires); err != nil {
			errs = append(errs, fmt.Errorf("invalid requires constraint: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) DivisionPolicy() interpreter.DivisionPolicy {
	p, _ := interpreter.ParseDivisionPolicy(c.Interpreter.RealDivision)
	return p
}

// SupportedBy reports whether the tool at toolVersion meets Requires.
func (c *Config) SupportedBy(toolVersion string) (bool, error) {
	if c.Requires == "" {
		return true, nil
	}
	v, err := util.ParseSemver(toolVersion)
	if err != nil {
		return false, err
	}
	return v.Satisfies(c.Requires)
}

// Save writes the config to path. An existing file is only replaced when
// overwrite is set or prompt confirms it; saved reports whether it was written.
func (c *Config) Save(path string, overwrite bool, prompt *util.Prompter) (saved bool, err error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if !overwrite && (prompt == nil || !prompt.YN(path+" already exists. Overwrite?", false)) {
			return false, nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(path, yml, 0o644); err != nil {
		return false, err
	}

	return true, nil
}

// Load reads dir/pasconf.yaml. Unknown keys are rejected.
func Load(dir string) (Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

func LoadFile(path string) (Config, error) {
	var conf Config

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	// An empty or comment-only file decodes to io.EOF; it is an empty config.
	if err := decoder.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return conf, nil
}
