// Package cluster implements k-means clustering over fixed-dimension vectors.
package cluster

import "errors"

var (
	// ErrInvalidK is returned when k is outside [1, len(dataset)].
	ErrInvalidK = errors.New("k must be between 1 and the dataset size")

	// ErrEmptyDataset is returned when the dataset contains no points.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrDimensionMismatch is returned when points in one dataset do not all
	// share the same dimension.
	ErrDimensionMismatch = errors.New("points have inconsistent dimensions")

	// ErrNoRandSource is returned when no random source was supplied.
	// Randomness is always injected so runs are reproducible under a fixed seed.
	ErrNoRandSource = errors.New("random source is required")
)
