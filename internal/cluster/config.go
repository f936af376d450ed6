// Package cluster implements k-means clustering over fixed-dimension vectors.
package cluster

import (
	"fmt"
	"math/rand"
)

const (
	// DefaultMaxIterations is the iteration budget used when Config.MaxIterations
	// is zero. Exhausting the budget is a valid non-converged termination,
	// not an error.
	DefaultMaxIterations = 100

	// DefaultTolerance is the convergence tolerance used when Config.Tolerance
	// is zero. Refinement stops once every centroid moves less than this
	// between consecutive iterations.
	DefaultTolerance = 1e-4
)

// Config holds the parameters for a single clustering run.
type Config struct {
	// K is the number of clusters. Must satisfy 1 <= K <= len(dataset).
	K int

	// MaxIterations caps the number of refinement iterations.
	// Zero means DefaultMaxIterations.
	MaxIterations int

	// Tolerance is the per-centroid movement bound for convergence.
	// Zero means DefaultTolerance.
	Tolerance float64

	// Rand is the random source used for k-means++ seeding. It must be
	// supplied explicitly; there is no global fallback, so deterministic
	// tests and concurrent runs stay free of shared state.
	Rand *rand.Rand
}

// withDefaults returns a copy of the config with zero values replaced by
// the documented defaults.
func (c Config) withDefaults() Config {
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// Validate checks the configuration against a dataset of n points.
func (c Config) Validate(n int) error {
	if c.K < 1 || c.K > n {
		return fmt.Errorf("%w: k=%d, dataset size %d", ErrInvalidK, c.K, n)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations cannot be negative, got %d", c.MaxIterations)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %g", c.Tolerance)
	}
	if c.Rand == nil {
		return ErrNoRandSource
	}
	return nil
}
