package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vyPal/minipas/lib/interpreter"
	"github.com/vyPal/minipas/util"
)

func TestDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	var conf Config
	conf.CreateDefault("calc")

	saved, err := conf.Save(filepath.Join(dir, FileName), false, nil)
	if err != nil || !saved {
		t.Fatalf("expected the config to be saved, got %v (%v)", saved, err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != conf {
		t.Errorf("expected %+v, got %+v", conf, loaded)
	}
	if loaded.DivisionPolicy() != interpreter.DivisionError {
		t.Errorf("expected the error policy, got %s", loaded.DivisionPolicy())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	src := "name: tiny\nmain: prog.pas\ninterpreter:\n  real_division: ieee\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Output.Format != FormatText || conf.Compiler.OutDir != "build" {
		t.Errorf("defaults not applied: %+v", conf)
	}
	if conf.DivisionPolicy() != interpreter.DivisionIEEE {
		t.Errorf("expected the ieee policy, got %s", conf.DivisionPolicy())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown policy", "interpreter:\n  real_division: loose\n", "real division policy"},
		{"unknown format", "output:\n  format: xml\n", "output format"},
		{"bad version", "version: one\n", "invalid version"},
		{"bad requires", "requires: '>=x'\n", "requires"},
		{"unknown key", "nmae: typo\n", "nmae"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected an error mentioning %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestSaveExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("name: keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var conf Config
	conf.CreateDefault("replace")

	var out strings.Builder
	saved, err := conf.Save(path, false, util.NewPrompter(strings.NewReader("n\n"), &out))
	if err != nil || saved {
		t.Fatalf("expected the file to be kept, got %v (%v)", saved, err)
	}
	if b, _ := os.ReadFile(path); string(b) != "name: keep\n" {
		t.Errorf("file changed to %q", b)
	}

	saved, err = conf.Save(path, true, nil)
	if err != nil || !saved {
		t.Fatalf("expected the file to be overwritten, got %v (%v)", saved, err)
	}
	if loaded, err := Load(dir); err != nil || loaded.Name != "replace" {
		t.Errorf("expected name replace, got %+v (%v)", loaded, err)
	}
}

func TestSupportedBy(t *testing.T) {
	conf := Config{Requires: ">=0.2.0"}
	if ok, err := conf.SupportedBy("0.3.1"); err != nil || !ok {
		t.Errorf("expected 0.3.1 to satisfy >=0.2.0, got %v (%v)", ok, err)
	}
	if ok, _ := conf.SupportedBy("0.1.0"); ok {
		t.Error("expected 0.1.0 to fail >=0.2.0")
	}
	if ok, _ := (&Config{}).SupportedBy("0.0.1"); !ok {
		t.Error("an empty constraint accepts every version")
	}
}

func TestLoadEmpty(t *testing.T) {
	for name, src := range map[string]string{"empty": "", "comments only": "# nothing set yet\n"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(src), 0o644); err != nil {
				t.Fatal(err)
			}
			conf, err := Load(dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if conf.Output.Format != FormatText || conf.DivisionPolicy() != interpreter.DivisionError || conf.Compiler.OutDir != "build" {
				t.Errorf("expected defaults, got %+v", conf)
			}
		})
	}
}
