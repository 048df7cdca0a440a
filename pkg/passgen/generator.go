// Package passgen generates human-transcribable secrets that satisfy a
// character-class policy. All randomness comes from crypto/rand.
package passgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// DefaultMaxAttempts bounds the regenerate-and-validate loop.
const DefaultMaxAttempts = 25

var ErrGenerationExhausted = errors.New("passgen: policy could not be satisfied within the attempt limit")

// Config holds the process-wide generation defaults.
type Config struct {
	Length      int    // default length when a request leaves it unset
	Preset      Preset // default preset when a request leaves it unset
	MaxAttempts int
}

// Generator produces secrets. It is safe for concurrent use; it holds only
// read-only configuration.
type Generator struct {
	cfg Config
}

// NewGenerator validates cfg and fills defaults.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Length == 0 {
		cfg.Length = DefaultLength
	}
	if cfg.Length < MinLength || cfg.Length > MaxLength {
		return nil, fmt.Errorf("passgen: default length %d outside [%d, %d]", cfg.Length, MinLength, MaxLength)
	}
	if cfg.Preset == "" {
		cfg.Preset = PresetFull
	}
	if _, err := ParsePreset(string(cfg.Preset)); err != nil {
		return nil, err
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Generator{cfg: cfg}, nil
}

// Config returns the effective configuration.
func (g *Generator) Config() Config { return g.cfg }

// Resolve expands a (possibly empty) preset name and length into a policy,
// falling back to the configured defaults.
func (g *Generator) Resolve(preset string, length int) (Policy, error) {
	p := g.cfg.Preset
	if preset != "" {
		parsed, err := ParsePreset(preset)
		if err != nil {
			return Policy{}, err
		}
		p = parsed
	}
	if length == 0 {
		length = g.cfg.Length
	}
	return p.Policy(length)
}

// Generate returns a secret satisfying the policy or ErrGenerationExhausted.
// It never returns a secret that fails the policy.
func (g *Generator) Generate(policy Policy) (string, error) {
	p, err := policy.Normalize()
	if err != nil {
		return "", err
	}

	classes := p.Classes()
	var pool []byte
	for _, c := range classes {
		pool = append(pool, c.Charset()...)
	}

	for range g.cfg.MaxAttempts {
		out := make([]byte, 0, p.Length)

		// 1. One character from each of the first MinClasses enabled classes.
		for _, c := range classes[:p.MinClasses] {
			b, err := pick(c.Charset())
			if err != nil {
				return "", err
			}
			out = append(out, b)
		}

		// 2. Pad uniformly from the combined pool.
		for len(out) < p.Length {
			b, err := pick(string(pool))
			if err != nil {
				return "", err
			}
			out = append(out, b)
		}

		// 3. Shuffle so seeded characters don't sit at the front.
		if err := shuffle(out); err != nil {
			return "", err
		}

		if LongestRun(string(out)) <= p.MaxConsecutive {
			return string(out), nil
		}
	}

	return "", ErrGenerationExhausted
}

// Generate uses a generator with default configuration.
func Generate(policy Policy) (string, error) {
	g := &Generator{cfg: Config{Length: DefaultLength, Preset: PresetFull, MaxAttempts: DefaultMaxAttempts}}
	return g.Generate(policy)
}

func randIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("passgen: read random: %w", err)
	}
	return int(v.Int64()), nil
}

func pick(set string) (byte, error) {
	i, err := randIntn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randIntn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
