package passgen

import (
	"errors"
	"fmt"
	"strings"
)

// Length bounds for generated secrets.
const (
	MinLength     = 6
	MaxLength     = 15
	DefaultLength = 12

	// DefaultMinClasses is used when a policy leaves MinClasses unset. It is
	// always capped to the number of enabled classes.
	DefaultMinClasses = 4

	// DefaultMaxConsecutive is used when a policy leaves MaxConsecutive unset.
	DefaultMaxConsecutive = 2
)

var (
	ErrInvalidPolicy = errors.New("passgen: policy enables no character classes")
	ErrUnknownPreset = errors.New("passgen: unknown preset")
)

// Class is one of the four character classes a policy can require.
type Class int

const (
	Upper Class = iota
	Lower
	Digit
	Symbol
)

// Ambiguous glyphs (0/O, 1/l/I) are left out so secrets survive being read
// aloud or copied by hand.
var classSets = [...]string{
	Upper:  "ABCDEFGHJKLMNPQRSTUVWXYZ",
	Lower:  "abcdefghijkmnopqrstuvwxyz",
	Digit:  "23456789",
	Symbol: "!@#$%^&*-_+?",
}

func (c Class) String() string {
	switch c {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Charset returns the characters belonging to the class.
func (c Class) Charset() string {
	if c < Upper || c > Symbol {
		return ""
	}
	return classSets[c]
}

// Policy is the expanded form the generator understands. Zero values mean
// "use the default" for Length, MinClasses and MaxConsecutive.
type Policy struct {
	Length         int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSymbol  bool
	MinClasses     int
	MaxConsecutive int
}

// Classes returns the enabled classes in canonical order.
func (p Policy) Classes() []Class {
	var out []Class
	if p.RequireUpper {
		out = append(out, Upper)
	}
	if p.RequireLower {
		out = append(out, Lower)
	}
	if p.RequireDigit {
		out = append(out, Digit)
	}
	if p.RequireSymbol {
		out = append(out, Symbol)
	}
	return out
}

// Normalize clamps the policy into the supported range and fills defaults.
// A policy with no enabled classes cannot be normalized.
func (p Policy) Normalize() (Policy, error) {
	enabled := len(p.Classes())
	if enabled == 0 {
		return Policy{}, ErrInvalidPolicy
	}

	switch {
	case p.Length == 0:
		p.Length = DefaultLength
	case p.Length < MinLength:
		p.Length = MinLength
	case p.Length > MaxLength:
		p.Length = MaxLength
	}

	if p.MinClasses <= 0 {
		p.MinClasses = DefaultMinClasses
	}
	p.MinClasses = min(p.MinClasses, enabled)

	if p.MaxConsecutive == 0 {
		p.MaxConsecutive = DefaultMaxConsecutive
	}
	p.MaxConsecutive = max(p.MaxConsecutive, 1)

	return p, nil
}

// Satisfied reports whether s meets the (normalized) policy: exact length,
// at least MinClasses enabled classes present, no run longer than
// MaxConsecutive.
func (p Policy) Satisfied(s string) bool {
	if len(s) != p.Length {
		return false
	}

	present := 0
	for _, c := range p.Classes() {
		if strings.ContainsAny(s, c.Charset()) {
			present++
		}
	}
	if present < p.MinClasses {
		return false
	}

	return LongestRun(s) <= p.MaxConsecutive
}

// LongestRun returns the length of the longest run of one repeated byte.
func LongestRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// Preset names a shorthand that expands to a concrete class combination.
type Preset string

const (
	PresetAlpha Preset = "alpha"
	PresetAlnum Preset = "alnum"
	PresetFull  Preset = "full"
)

// ParsePreset validates a preset name. Empty input is rejected; callers pick
// their own default.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(s))); p {
	case PresetAlpha, PresetAlnum, PresetFull:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
}

// Policy expands the preset at the given length.
func (p Preset) Policy(length int) (Policy, error) {
	pol := Policy{Length: length, MaxConsecutive: DefaultMaxConsecutive}
	switch p {
	case PresetAlpha:
		pol.RequireUpper, pol.RequireLower = true, true
		pol.MinClasses = 2
	case PresetAlnum:
		pol.RequireUpper, pol.RequireLower, pol.RequireDigit = true, true, true
		pol.MinClasses = 3
	case PresetFull:
		pol.RequireUpper, pol.RequireLower, pol.RequireDigit, pol.RequireSymbol = true, true, true, true
		pol.MinClasses = 4
	default:
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPreset, string(p))
	}
	return pol, nil
}
