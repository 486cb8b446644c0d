package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vyPal/minipas/lib/analyzer"
	"github.com/vyPal/minipas/lib/interpreter"
	"github.com/vyPal/minipas/lib/project"
	"gopkg.in/yaml.v3"
)

// encode writes v as indented JSON or as YAML.
func encode(w io.Writer, format string, v any) error {
	if format == project.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printMemory(w io.Writer, format string, mem interpreter.Memory) error {
	if format != project.FormatText {
		return encode(w, format, mem)
	}
	for _, name := range mem.Names() {
		fmt.Fprintf(w, "%s = %s\n", name, mem[name])
	}
	return nil
}

func printScopes(w io.Writer, format string, report *analyzer.Report) error {
	if format != project.FormatText {
		return encode(w, format, report)
	}
	for _, scope := range report.Scopes {
		fmt.Fprintf(w, "SCOPE %s (level %d", scope.Name, scope.Level)
		if scope.Parent != "" {
			fmt.Fprintf(w, ", enclosed by %s", scope.Parent)
		}
		fmt.Fprintln(w, ")")
		for _, sym := range scope.Symbols {
			fmt.Fprintf(w, "  %-9s %s\n", sym.Kind, sym.Decl)
		}
	}
	return nil
}
