package interpreter

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vyPal/minipas/lib/parser"
)

func evalString(t *testing.T, src string, opts ...Option) (Value, error) {
	t.Helper()
	expr, err := parser.ParseExpressionString(src)
	if err != nil {
		t.Fatalf("parsing %q failed: %v", src, err)
	}
	return New(opts...).Eval(expr)
}

func runString(t *testing.T, src string, opts ...Option) (Memory, error) {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	return New(opts...).Run(prog)
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"3", IntValue(3)},
		{"2 + 7 * 4", IntValue(30)},
		{"7 - 8 DIV 4", IntValue(5)},
		{"14 + 2 * 3 - 6 DIV 2", IntValue(17)},
		{"(1+2)*3", IntValue(9)},
		{"1+2*3", IntValue(7)},
		{"7 + 3 * (10 DIV (12 DIV (3 + 1) - 1))", IntValue(22)},
		{"10 - 2 - 3", IntValue(5)},
		{"- - 5", IntValue(5)},
		{"+(+5)", IntValue(5)},
		{"5 - - - + - 3", IntValue(8)},
		{"5 - - - + - (3 + 4) - +2", IntValue(10)},
		{"7 DIV 2", IntValue(3)},
		{"-7 DIV 2", IntValue(-3)},
		{"7 DIV -2", IntValue(-3)},
		{"3 DIV (2.0)", IntValue(1)},
		{"7.9 DIV 2", IntValue(3)},
		{"-7.9 DIV 2", IntValue(-3)},
		{"7 / 2", RealValue(3.5)},
		{"4 / 2", RealValue(2)},
		{"1 + 2.5", RealValue(3.5)},
		{"2 * 3.0", RealValue(6)},
		{"-2.5", RealValue(-2.5)},
		{"9223372036854775807 + 1", IntValue(math.MinInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evalString(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s %s, got %s %s", tt.want.Kind(), tt.want, got.Kind(), got)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	tests := []struct {
		input  string
		policy DivisionPolicy
		fails  bool
	}{
		{"1 DIV 0", DivisionError, true},
		{"1 DIV 0", DivisionIEEE, true},
		{"1 DIV 0.5", DivisionError, true},
		{"1 / 0", DivisionError, true},
		{"1 / 0.0", DivisionError, true},
		{"1 / 0", DivisionIEEE, false},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+string(tt.policy), func(t *testing.T) {
			v, err := evalString(t, tt.input, WithRealDivision(tt.policy))
			var arithErr *ArithmeticError
			if tt.fails {
				if !errors.As(err, &arithErr) {
					t.Fatalf("expected ArithmeticError, got value %s and error %v", v, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !math.IsInf(v.Float(), 1) {
				t.Errorf("expected +Inf, got %s", v)
			}
		})
	}
}

func TestTruncationOutOfRange(t *testing.T) {
	_, err := evalString(t, "1 / 0 DIV 1", WithRealDivision(DivisionIEEE))
	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected ArithmeticError for an infinite DIV operand, got %v", err)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := evalString(t, "x + 1")
	var undef *UndefinedError
	if !errors.As(err, &undef) || undef.Name != "x" {
		t.Fatalf("expected UndefinedError for x, got %v", err)
	}
}

func TestRunProgram(t *testing.T) {
	mem, err := runString(t, "PROGRAM P; VAR a,b:INTEGER; BEGIN a:=2; b:=10*a+10*a DIV 4; END.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Memory{"a": IntValue(2), "b": IntValue(25)}
	if len(mem) != len(want) {
		t.Fatalf("expected %v, got %v", want, mem)
	}
	for name, v := range want {
		if mem[name] != v {
			t.Errorf("%s: expected %s, got %s", name, v, mem[name])
		}
	}
}

func TestRunFullProgram(t *testing.T) {
	src := `PROGRAM PartTen;
VAR
   number     : INTEGER;
   a, b, c, x : INTEGER;
   y          : REAL;

BEGIN {PartTen}
   BEGIN
      number := 2;
      a := number;
      b := 10 * a + 10 * number DIV 4;
      c := a - - b
   END;
   x := 11;
   y := 20 / 7 + 3.14;
END.  {PartTen}`
	mem, err := runString(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ints := map[string]int64{"number": 2, "a": 2, "b": 25, "c": 27, "x": 11}
	for name, want := range ints {
		v := mem[name]
		if v.Kind() != Integer || v.Int() != want {
			t.Errorf("%s: expected INTEGER %d, got %s %s", name, want, v.Kind(), v)
		}
	}
	y := mem["y"]
	if y.Kind() != Real || math.Abs(y.Float()-(20.0/7+3.14)) > 1e-12 {
		t.Errorf("y: expected REAL %v, got %s %s", 20.0/7+3.14, y.Kind(), y)
	}
	if names := mem.Names(); len(names) != 6 || names[0] != "a" || names[5] != "y" {
		t.Errorf("unexpected sorted names %v", names)
	}
}

func TestVariableCarriesKind(t *testing.T) {
	src := `PROGRAM p;
VAR a : REAL; b, c : INTEGER;
BEGIN
   a := 1.0;
   b := a + 1;
   c := a DIV 1
END.`
	mem, err := runString(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := mem["b"]; b != RealValue(2) {
		t.Errorf("expected b to hold REAL 2.0, got %s %s", b.Kind(), b)
	}
	if c := mem["c"]; c != IntValue(1) {
		t.Errorf("expected c to hold INTEGER 1, got %s %s", c.Kind(), c)
	}
}

func TestProceduresDoNotRun(t *testing.T) {
	src := `PROGRAM p;
VAR x : INTEGER;
PROCEDURE set(v : INTEGER);
BEGIN
   x := 100
END;
BEGIN
   x := 1
END.`
	mem, err := runString(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mem) != 1 || mem["x"] != IntValue(1) {
		t.Errorf("expected only x = 1, got %v", mem)
	}
}

func TestRunStartsFresh(t *testing.T) {
	in := New()
	first, _ := parser.ParseString("PROGRAM p; VAR a : INTEGER; BEGIN a := 1 END.")
	second, _ := parser.ParseString("PROGRAM p; VAR b : INTEGER; BEGIN b := 2 END.")
	if _, err := in.Run(first); err != nil {
		t.Fatal(err)
	}
	mem, err := in.Run(second)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mem["a"]; ok {
		t.Errorf("memory leaked between runs: %v", mem)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"1", Integer},
		{"1.0", Real},
		{"-1.5", Real},
		{"1.5 DIV 1", Integer},
		{"1 / 1", Real},
		{"1 + 2 * 3", Integer},
		{"1 + 2 * 3.0", Real},
	}
	for _, tt := range tests {
		expr, err := parser.ParseExpressionString(tt.input)
		if err != nil {
			t.Fatalf("parsing %q failed: %v", tt.input, err)
		}
		got, err := New().KindOf(expr)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.want, got)
		}
		v, err := New().Eval(expr)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if v.Kind() != got {
			t.Errorf("%q: value kind %s differs from static kind %s", tt.input, v.Kind(), got)
		}
	}
}

func TestLongChains(t *testing.T) {
	const n = 50000

	v, err := evalString(t, strings.Repeat("1+", n)+"1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.Int() != n+1 {
		t.Errorf("expected INTEGER %d, got %s %s", n+1, v.Kind(), v)
	}

	v, err = evalString(t, strings.Repeat("0.5+", n)+"0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Real || v.Float() != n/2 {
		t.Errorf("expected REAL %d, got %s %s", n/2, v.Kind(), v)
	}

	v, err = evalString(t, strings.Repeat("-", n+1)+"7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.Int() != -7 {
		t.Errorf("expected INTEGER -7, got %s %s", v.Kind(), v)
	}
}

func TestMemoryEncoding(t *testing.T) {
	mem := Memory{"b": IntValue(25), "a": IntValue(2), "y": RealValue(2)}
	out, err := json.Marshal(mem)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":2,"b":25,"y":2}` {
		t.Errorf("unexpected JSON %s", out)
	}
	if s := RealValue(2).String(); s != "2.0" {
		t.Errorf("expected 2.0, got %s", s)
	}
	if s := RealValue(math.Inf(1)).String(); s != "+Inf" {
		t.Errorf("expected +Inf, got %s", s)
	}
}

func TestParseDivisionPolicy(t *testing.T) {
	for in, want := range map[string]DivisionPolicy{"": DivisionError, "error": DivisionError, "ieee": DivisionIEEE} {
		got, err := ParseDivisionPolicy(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseDivisionPolicy("loose"); err == nil {
		t.Error("expected an error for an unknown policy")
	}
}
