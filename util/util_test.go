package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseSemver(t *testing.T) {
	tests := []struct {
		input string
		want  Semver
		fails bool
	}{
		{"1.2.3", Semver{Major: 1, Minor: 2, Patch: 3}, false},
		{"v0.10.0", Semver{Minor: 10}, false},
		{"2.0.0-beta.1", Semver{Major: 2, Prerelease: "beta.1"}, false},
		{"1.2", Semver{}, true},
		{"1.x.0", Semver{}, true},
		{"1.2.3-", Semver{}, true},
		{"", Semver{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSemver(tt.input)
			if tt.fails {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	v, err := ParseSemver("1.4.2")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		constraint string
		want       bool
	}{
		{"1.4.2", true},
		{"=1.4.1", false},
		{">=1.4.0", true},
		{">= 1.5.0", false},
		{">1.4.2", false},
		{"<2.0.0", true},
		{"<=1.4.2", true},
		{"~1.4.0", true},
		{"~1.3.0", false},
		{"^1.0.0", true},
		{"^2.0.0", false},
		{">1.4.2-rc.1", true},
	}
	for _, tt := range tests {
		got, err := v.Satisfies(tt.constraint)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.constraint, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.constraint, tt.want, got)
		}
	}

	if _, err := v.Satisfies(">=banana"); err == nil {
		t.Error("expected an error for a malformed constraint")
	}
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("demo\n\ny\n"), &out)

	if got := p.String("Project name", "x"); got != "demo" {
		t.Errorf("expected demo, got %q", got)
	}
	if got := p.String("Description", "none"); got != "none" {
		t.Errorf("expected the default, got %q", got)
	}
	if !p.YN("Overwrite?", false) {
		t.Error("expected yes")
	}
	// Input is exhausted; defaults apply.
	if p.YN("Again?", false) {
		t.Error("expected the default no")
	}
	if !strings.Contains(out.String(), "Overwrite? (y/N): ") {
		t.Errorf("unexpected prompt output %q", out.String())
	}
}
