package analyzer

import (
	"errors"
	"testing"

	"github.com/vyPal/minipas/lib/parser"
)

func analyze(t *testing.T, src string) (*Report, error) {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	return Analyze(prog)
}

func expectNameError(t *testing.T, src, name, reason string) {
	t.Helper()
	_, err := analyze(t, src)
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected NameError, got %v", err)
	}
	if nameErr.Name != name || nameErr.Reason != reason {
		t.Errorf("expected %s %q, got %s %q", reason, name, nameErr.Reason, nameErr.Name)
	}
}

func TestValidProgram(t *testing.T) {
	src := `PROGRAM P;
VAR a, b : INTEGER;
    y    : REAL;
BEGIN
   a := 2;
   b := 10 * a + 10 * a DIV 4;
   y := 20 / 7 + 3.14
END.`
	report, err := analyze(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Scopes) != 1 {
		t.Fatalf("expected only the global scope, got %d", len(report.Scopes))
	}
	global := report.Scopes[0]
	if global.Name != GlobalScope || global.Level != 1 || global.Parent != "" {
		t.Errorf("unexpected global scope %+v", global)
	}
	want := []SymbolSummary{
		{Name: "INTEGER", Kind: "type", Decl: "INTEGER"},
		{Name: "REAL", Kind: "type", Decl: "REAL"},
		{Name: "a", Kind: "variable", Decl: "a : INTEGER"},
		{Name: "b", Kind: "variable", Decl: "b : INTEGER"},
		{Name: "y", Kind: "variable", Decl: "y : REAL"},
	}
	if len(global.Symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %d: %+v", len(want), len(global.Symbols), global.Symbols)
	}
	for i, w := range want {
		if global.Symbols[i] != w {
			t.Errorf("symbol %d: expected %+v, got %+v", i, w, global.Symbols[i])
		}
	}
}

func TestShadowingInNestedScope(t *testing.T) {
	src := `PROGRAM Main;
VAR x : INTEGER;
PROCEDURE Alpha(a : INTEGER; b : REAL);
VAR x : REAL;
   PROCEDURE Beta;
   VAR x : INTEGER;
   BEGIN
      x := a
   END;
BEGIN
   x := b + a
END;
BEGIN
   x := 1
END.`
	report, err := analyze(t, src)
	if err != nil {
		t.Fatalf("shadowing must not fail: %v", err)
	}

	want := []struct {
		name, parent string
		level        int
	}{
		{"Beta", "Alpha", 3},
		{"Alpha", "global", 2},
		{"global", "", 1},
	}
	if len(report.Scopes) != len(want) {
		t.Fatalf("expected %d scopes, got %d", len(want), len(report.Scopes))
	}
	for i, w := range want {
		got := report.Scopes[i]
		if got.Name != w.name || got.Parent != w.parent || got.Level != w.level {
			t.Errorf("scope %d: expected %s (parent %q, level %d), got %s (parent %q, level %d)",
				i, w.name, w.parent, w.level, got.Name, got.Parent, got.Level)
		}
	}

	alpha := report.Scopes[1]
	names := []string{}
	for _, sym := range alpha.Symbols {
		names = append(names, sym.Name)
	}
	wantNames := []string{"a", "b", "x", "Beta"}
	if len(names) != len(wantNames) {
		t.Fatalf("expected Alpha symbols %v, got %v", wantNames, names)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("expected Alpha symbols %v, got %v", wantNames, names)
			break
		}
	}

	global := report.Scopes[2]
	last := global.Symbols[len(global.Symbols)-1]
	if last.Kind != "procedure" || last.Decl != "PROCEDURE Alpha(a : INTEGER; b : REAL)" {
		t.Errorf("expected Alpha registered in the global scope, got %+v", last)
	}
}

func TestNameErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ident  string
		reason string
	}{
		{
			"undeclared assignment target",
			"PROGRAM p; BEGIN y := 1 END.",
			"y", ReasonUndeclared,
		},
		{
			"undeclared reference",
			"PROGRAM p; VAR x : INTEGER; BEGIN x := y + 1 END.",
			"y", ReasonUndeclared,
		},
		{
			"duplicate in one declaration block",
			"PROGRAM p; VAR x : INTEGER; x : REAL; BEGIN END.",
			"x", ReasonDuplicate,
		},
		{
			"duplicate in one identifier list",
			"PROGRAM p; VAR a, b, a : INTEGER; BEGIN END.",
			"a", ReasonDuplicate,
		},
		{
			"parameter and local share a name",
			"PROGRAM p; PROCEDURE q(a : INTEGER); VAR a : REAL; BEGIN END; BEGIN END.",
			"a", ReasonDuplicate,
		},
		{
			"duplicate procedure",
			"PROGRAM p; PROCEDURE q; BEGIN END; PROCEDURE q; BEGIN END; BEGIN END.",
			"q", ReasonDuplicate,
		},
		{
			"procedure shadows variable in same scope",
			"PROGRAM p; VAR q : INTEGER; PROCEDURE q; BEGIN END; BEGIN END.",
			"q", ReasonDuplicate,
		},
		{
			"procedure locals are not visible outside",
			"PROGRAM p; PROCEDURE q; VAR inner : INTEGER; BEGIN END; BEGIN inner := 1 END.",
			"inner", ReasonUndeclared,
		},
		{
			"nested undeclared inside procedure",
			"PROGRAM p; PROCEDURE q; BEGIN z := 1 END; BEGIN END.",
			"z", ReasonUndeclared,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectNameError(t, tt.input, tt.ident, tt.reason)
		})
	}
}

func TestOuterNamesVisibleInProcedure(t *testing.T) {
	src := `PROGRAM p;
VAR total : INTEGER;
PROCEDURE addOne(step : INTEGER);
BEGIN
   total := total + step
END;
BEGIN
   total := 0
END.`
	if _, err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Resolution only checks that a name exists somewhere in the chain, so a
// procedure name is accepted where a variable is expected.
func TestProcedureNameResolvesAsVariable(t *testing.T) {
	src := `PROGRAM p;
PROCEDURE q;
BEGIN END;
BEGIN
   q := 1;
   q := q + 1
END.`
	if _, err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScopesArena(t *testing.T) {
	s := NewScopes()
	global := s.Push("global")
	s.Insert(global, NewBuiltinType("INTEGER"))
	if !s.Insert(global, NewVarSymbol("x", NewBuiltinType("INTEGER"))) {
		t.Fatal("first insert of x failed")
	}
	if s.Insert(global, NewVarSymbol("x", NewBuiltinType("REAL"))) {
		t.Fatal("duplicate insert of x succeeded")
	}

	inner := s.Push("inner")
	if s.Level(inner) != 2 {
		t.Errorf("expected level 2, got %d", s.Level(inner))
	}
	if _, ok := s.LookupLocal("x"); ok {
		t.Error("x should not be local to the inner scope")
	}
	if sym, ok := s.Lookup("x"); !ok || sym.(*VarSymbol).Type.Name() != "INTEGER" {
		t.Errorf("expected x : INTEGER through the chain, got %v", sym)
	}
	if !s.Insert(inner, NewVarSymbol("x", NewBuiltinType("REAL"))) {
		t.Fatal("shadowing insert failed")
	}
	if sym, _ := s.Lookup("x"); sym.(*VarSymbol).Type.Name() != "REAL" {
		t.Errorf("expected inner x to shadow outer x, got %v", sym)
	}

	summary := s.Pop()
	if summary.Name != "inner" || summary.Parent != "global" {
		t.Errorf("unexpected summary %+v", summary)
	}
	if s.Current() != global {
		t.Errorf("expected global to be current again")
	}
	if sym, _ := s.Lookup("x"); sym.(*VarSymbol).Type.Name() != "INTEGER" {
		t.Errorf("expected outer x after pop, got %v", sym)
	}

	s.Pop()
	if s.Current() != NoScope {
		t.Errorf("expected no current scope after popping global")
	}
	if _, ok := s.Lookup("x"); ok {
		t.Error("lookup should fail with no scopes open")
	}
}
