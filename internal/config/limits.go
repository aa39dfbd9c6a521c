// Package config holds the small set of tunables the core needs: primarily
// the recursion bound that guarantees termination on self-referential types.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultRecursionBound is the depth past which assignability and
// specialization short-circuit with a safe default.
const DefaultRecursionBound = 64

// Limits bundles the recursion bound and the handful of other knobs a caller
// might want to adjust when embedding the core (e.g. a test harness that
// wants to exercise the recursion guard without building deeply nested
// fixtures).
type Limits struct {
	RecursionBound int `yaml:"recursionBound"`
}

// Default returns the limits used when a caller doesn't supply their own.
func Default() Limits {
	return Limits{RecursionBound: DefaultRecursionBound}
}

// Load reads a YAML file and overlays it on Default(). A zero or missing
// recursionBound field falls back to the default rather than to zero, since
// zero would make every recursive operation short-circuit immediately.
func Load(path string) (Limits, error) {
	limits := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return limits, err
	}

	if err := yaml.Unmarshal(data, &limits); err != nil {
		return limits, err
	}

	if limits.RecursionBound <= 0 {
		limits.RecursionBound = DefaultRecursionBound
	}

	return limits, nil
}

// Exceeded reports whether a recursion level has passed the bound.
func (l Limits) Exceeded(recursionLevel int) bool {
	return recursionLevel > l.RecursionBound
}
