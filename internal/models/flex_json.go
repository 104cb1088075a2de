package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Patch is a game version in "major.minor" form. Minor is compared as an
// integer, so 15.10 is newer than 15.2.
type Patch struct {
	Major int
	Minor int
}

// ParsePatch parses "15.1", "15.10" or "15". Surrounding whitespace is ignored.
func ParsePatch(s string) (Patch, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Patch{}, fmt.Errorf("empty patch")
	}
	majorStr, minorStr, hasMinor := strings.Cut(s, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Patch{}, fmt.Errorf("invalid patch %q", s)
	}
	p := Patch{Major: major}
	if hasMinor {
		minor, err := strconv.Atoi(minorStr)
		if err != nil || minor < 0 {
			return Patch{}, fmt.Errorf("invalid patch %q", s)
		}
		p.Minor = minor
	}
	return p, nil
}

// MustParsePatch is ParsePatch for literals known to be valid.
func MustParsePatch(s string) Patch {
	p, err := ParsePatch(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Patch) String() string {
	return strconv.Itoa(p.Major) + "." + strconv.Itoa(p.Minor)
}

// IsZero reports whether the patch was never set.
func (p Patch) IsZero() bool { return p.Major == 0 && p.Minor == 0 }

// Compare returns -1, 0 or 1 ordering by major then minor.
func (p Patch) Compare(o Patch) int {
	switch {
	case p.Major < o.Major:
		return -1
	case p.Major > o.Major:
		return 1
	case p.Minor < o.Minor:
		return -1
	case p.Minor > o.Minor:
		return 1
	}
	return 0
}

// MarshalJSON writes the patch as a string so trailing zeros survive.
func (p Patch) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts both "15.10" and 15.1. Numbers are parsed from their
// literal text rather than through float64, so 15.10 stays distinct from 15.1.
func (p *Patch) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex unmarshal patch: %w", err)
		}
		raw = s
	}
	parsed, err := ParsePatch(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
