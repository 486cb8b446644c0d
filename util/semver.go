package util

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// ParseSemver accepts MAJOR.MINOR.PATCH with an optional -prerelease suffix,
// e.g. 1.4.0 or 0.2.0-beta.1.
func ParseSemver(semver string) (Semver, error) {
	s := Semver{}
	core, pre, hasPre := strings.Cut(strings.TrimPrefix(semver, "v"), "-")
	if hasPre {
		if pre == "" {
			return Semver{}, fmt.Errorf("invalid version %q: empty prerelease", semver)
		}
		s.Prerelease = pre
	}

	split := strings.Split(core, ".")
	if len(split) != 3 {
		return Semver{}, fmt.Errorf("invalid version %q: want MAJOR.MINOR.PATCH", semver)
	}
	parts := []*int{&s.Major, &s.Minor, &s.Patch}
	for i, p := range split {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid version %q: %q is not a number", semver, p)
		}
		*parts[i] = n
	}
	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Prerelease != "" {
		str += "-" + s.Prerelease
	}
	return str
}

// Compare orders versions by number; a prerelease sorts before its release.
func (s Semver) Compare(o Semver) int {
	if c := cmp.Compare(s.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Patch, o.Patch); c != 0 {
		return c
	}
	switch {
	case s.Prerelease == o.Prerelease:
		return 0
	case s.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	}
	return strings.Compare(s.Prerelease, o.Prerelease)
}

// Satisfies checks s against a constraint such as "1.2.0", ">=1.2.0",
// "<2.0.0", "~1.2.0" (same minor) or "^1.2.0" (same major).
func (s Semver) Satisfies(constraint string) (bool, error) {
	op := ""
	for _, prefix := range []string{">=", "<=", ">", "<", "~", "^", "="} {
		if strings.HasPrefix(constraint, prefix) {
			op = prefix
			constraint = strings.TrimSpace(constraint[len(prefix):])
			break
		}
	}

	c, err := ParseSemver(constraint)
	if err != nil {
		return false, err
	}

	d := s.Compare(c)
	switch op {
	case ">=":
		return d >= 0, nil
	case "<=":
		return d <= 0, nil
	case ">":
		return d > 0, nil
	case "<":
		return d < 0, nil
	case "~":
		return d >= 0 && s.Major == c.Major && s.Minor == c.Minor, nil
	case "^":
		return d >= 0 && s.Major == c.Major, nil
	default:
		return d == 0, nil
	}
}
