// Package cluster implements k-means clustering over fixed-dimension vectors.
package cluster

import (
	"context"
	"fmt"
)

// Fit clusters the dataset into cfg.K groups using Lloyd's algorithm with
// k-means++ seeding. It is a pure function of its inputs: all working state
// is scoped to the call, so concurrent runs never share anything but the
// caller-provided random source.
//
// The returned centroids and assignment are always a mutually consistent
// pair: the assignment is the partition of the dataset under exactly the
// returned centroids, whether the run converged or exhausted its iteration
// budget. Non-convergence is not an error; callers can inspect
// Result.Iterations and Result.Converged to judge quality.
//
// ctx is checked between iterations, so long runs can be cancelled
// cooperatively.
func Fit(ctx context.Context, dataset []Point, cfg Config) (*Result, error) {
	if len(dataset) == 0 {
		return nil, ErrEmptyDataset
	}
	dim := len(dataset[0])
	for i, p := range dataset {
		if len(p) != dim {
			return nil, fmt.Errorf("%w: point %d has dimension %d, want %d",
				ErrDimensionMismatch, i, len(p), dim)
		}
	}
	if err := cfg.Validate(len(dataset)); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	centroids := seedCentroids(dataset, cfg.K, cfg.Rand)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assignment := assign(dataset, centroids)
		next := update(dataset, assignment, centroids)

		if converged(centroids, next, cfg.Tolerance) {
			// The assignment was computed against the pre-update centroids,
			// so return those rather than adopting next.
			return &Result{
				Centroids:  centroids,
				Assignment: assignment,
				Iterations: iter + 1,
				Converged:  true,
			}, nil
		}

		centroids = next
	}

	// Budget exhausted. Re-derive the partition against the centroids being
	// returned so the pair stays consistent.
	return &Result{
		Centroids:  centroids,
		Assignment: assign(dataset, centroids),
		Iterations: cfg.MaxIterations,
		Converged:  false,
	}, nil
}

// assign partitions the dataset by nearest centroid. Ties go to the lowest
// centroid index: centroids are scanned in order and the current best is only
// replaced on a strictly smaller distance.
func assign(dataset []Point, centroids []Point) []int {
	assignment := make([]int, len(dataset))
	for i, p := range dataset {
		best := 0
		bestDist := SquaredDistance(p, centroids[0])
		for c := 1; c < len(centroids); c++ {
			if d := SquaredDistance(p, centroids[c]); d < bestDist {
				best = c
				bestDist = d
			}
		}
		assignment[i] = best
	}
	return assignment
}

// update recomputes each centroid as the per-dimension mean of its assigned
// points. A cluster that ended the assignment step empty keeps its previous
// centroid unchanged; averaging zero points has no defined value, and the
// centroid may still be re-populated by a later assignment.
func update(dataset []Point, assignment []int, prev []Point) []Point {
	k := len(prev)
	dim := len(prev[0])

	sums := make([]Point, k)
	for c := range sums {
		sums[c] = make(Point, dim)
	}
	counts := make([]int, k)

	for i, p := range dataset {
		c := assignment[i]
		for d := 0; d < dim; d++ {
			sums[c][d] += p[d]
		}
		counts[c]++
	}

	next := make([]Point, k)
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			next[c] = prev[c].Clone()
			continue
		}
		mean := sums[c]
		for d := 0; d < dim; d++ {
			mean[d] /= float64(counts[c])
		}
		next[c] = mean
	}
	return next
}

// converged reports whether every centroid moved less than tol between the
// previous and next iteration. A single lagging centroid blocks convergence.
func converged(prev, next []Point, tol float64) bool {
	for i := range prev {
		if Distance(prev[i], next[i]) >= tol {
			return false
		}
	}
	return true
}
