// Package cluster implements k-means clustering over fixed-dimension vectors.
package cluster

import "math"

// Point is an ordered, fixed-length numeric vector. All points in one
// clustering run must share the same dimension.
type Point []float64

// Clone returns an independent copy of the point.
func (p Point) Clone() Point {
	c := make(Point, len(p))
	copy(c, p)
	return c
}

// Distance returns the Euclidean distance between two equal-dimension points.
// It panics if the dimensions differ; that is a caller contract violation,
// not a runtime condition.
func Distance(a, b Point) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}

// SquaredDistance returns the squared Euclidean distance between two
// equal-dimension points. It avoids the square root where only relative
// ordering matters, such as k-means++ weighting and WCSS.
// Panics if the dimensions differ.
func SquaredDistance(a, b Point) float64 {
	if len(a) != len(b) {
		panic("cluster: distance between points of different dimensions")
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
