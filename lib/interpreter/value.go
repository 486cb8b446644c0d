package interpreter

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

type Kind int

const (
	Integer Kind = iota
	Real
)

func (k Kind) String() string {
	if k == Real {
		return "REAL"
	}
	return "INTEGER"
}

// Value is an INTEGER or a REAL.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

func IntValue(v int64) Value    { return Value{kind: Integer, i: v} }
func RealValue(v float64) Value { return Value{kind: Real, f: v} }

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload; it is 0 for a REAL.
func (v Value) Int() int64 { return v.i }

// Float returns the value as a float64, widening an INTEGER.
func (v Value) Float() float64 {
	if v.kind == Integer {
		return float64(v.i)
	}
	return v.f
}

func (v Value) String() string {
	if v.kind == Integer {
		return strconv.FormatInt(v.i, 10)
	}
	s := strconv.FormatFloat(v.f, 'f', -1, 64)
	if !math.IsInf(v.f, 0) && !math.IsNaN(v.f) && !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == Integer {
		return json.Marshal(v.i)
	}
	if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
		return json.Marshal(v.String())
	}
	return json.Marshal(v.f)
}

func (v Value) MarshalYAML() (any, error) {
	if v.kind == Integer {
		return v.i, nil
	}
	return v.f, nil
}

// Memory is the single flat store shared by every scope of a program.
type Memory map[string]Value

// Names returns the bound names in sorted order.
func (m Memory) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
