// Package driver chains the pipeline stages: lex and parse, resolve names,
// then evaluate or compile. Every stage stops at its first error, which the
// driver wraps in a StageError naming the stage.
package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/vyPal/minipas/lib/analyzer"
	"github.com/vyPal/minipas/lib/ast"
	"github.com/vyPal/minipas/lib/compiler"
	"github.com/vyPal/minipas/lib/interpreter"
	paslex "github.com/vyPal/minipas/lib/lexer"
	"github.com/vyPal/minipas/lib/parser"
)

const SourceExt = ".pas"

type Stage string

const (
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageResolve  Stage = "resolve"
	StageEvaluate Stage = "evaluate"
	StageCompile  Stage = "compile"
)

type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type Options struct {
	Filename     string
	Strict       bool
	RealDivision interpreter.DivisionPolicy
}

func (o Options) lexOptions() []paslex.Option {
	opts := []paslex.Option{paslex.Filename(o.Filename)}
	if o.Strict {
		opts = append(opts, paslex.Strict())
	}
	return opts
}

// Result holds what each completed stage produced.
type Result struct {
	Program *ast.Program
	Report  *analyzer.Report
	Memory  interpreter.Memory
}

// syntaxError attributes a parser failure to the lexer when a token could
// not be read at all.
func syntaxError(err error) error {
	var lexErr *paslex.LexError
	if errors.As(err, &lexErr) {
		return &StageError{Stage: StageLex, Err: err}
	}
	return &StageError{Stage: StageParse, Err: err}
}

func Parse(src string, opts Options) (*ast.Program, error) {
	prog, err := parser.ParseString(src, opts.lexOptions()...)
	if err != nil {
		return nil, syntaxError(err)
	}
	return prog, nil
}

// Check parses src and resolves every name in it without running anything.
func Check(src string, opts Options) (*Result, error) {
	prog, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	report, err := analyzer.Analyze(prog)
	if err != nil {
		return &Result{Program: prog}, &StageError{Stage: StageResolve, Err: err}
	}
	return &Result{Program: prog, Report: report}, nil
}

func Run(src string, opts Options) (*Result, error) {
	res, err := Check(src, opts)
	if err != nil {
		return res, err
	}
	mem, err := interpreter.New(interpreter.WithRealDivision(opts.RealDivision)).Run(res.Program)
	if err != nil {
		return res, &StageError{Stage: StageEvaluate, Err: err}
	}
	res.Memory = mem
	return res, nil
}

// EvalExpression evaluates a bare expression. With no program there is
// nothing to resolve, so any variable reference fails at evaluation.
func EvalExpression(src string, opts Options) (interpreter.Value, error) {
	expr, err := parser.ParseExpressionString(src, opts.lexOptions()...)
	if err != nil {
		return interpreter.Value{}, syntaxError(err)
	}
	v, err := interpreter.New(interpreter.WithRealDivision(opts.RealDivision)).Eval(expr)
	if err != nil {
		return interpreter.Value{}, &StageError{Stage: StageEvaluate, Err: err}
	}
	return v, nil
}

func Compile(src string, opts Options) (*ir.Module, error) {
	res, err := Check(src, opts)
	if err != nil {
		return nil, err
	}
	m, err := compiler.Compile(res.Program, compiler.Options{RealDivision: opts.RealDivision})
	if err != nil {
		return nil, &StageError{Stage: StageCompile, Err: err}
	}
	return m, nil
}

func ValidateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension", SourceExt)
	}
	return nil
}

func ReadSource(path string) (string, error) {
	if err := ValidateExtension(path); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// OutputPath places srcPath's base name, with ext in place of .pas, in outDir.
func OutputPath(srcPath, outDir, ext string) string {
	return filepath.Join(outDir, strings.TrimSuffix(filepath.Base(srcPath), SourceExt)+ext)
}

// WriteOutput writes data to OutputPath, creating outDir as needed.
func WriteOutput(data []byte, srcPath, outDir, ext string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outFile := OutputPath(srcPath, outDir, ext)
	return outFile, os.WriteFile(outFile, data, 0o644)
}
