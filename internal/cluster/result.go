// Package cluster implements k-means clustering over fixed-dimension vectors.
package cluster

// Result is the immutable outcome of one clustering run.
type Result struct {
	// Centroids holds exactly K representative vectors, in cluster order.
	// A centroid is a cluster's mean, not necessarily a dataset member.
	Centroids []Point

	// Assignment maps every dataset index to the index of its cluster in
	// [0, K). The partition is total and disjoint, and is always consistent
	// with Centroids: Assignment[i] is the nearest centroid to dataset[i].
	Assignment []int

	// Iterations is the number of refinement iterations that ran.
	Iterations int

	// Converged reports whether every centroid stabilised within the
	// tolerance before the iteration budget ran out.
	Converged bool
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Cluster returns the dataset indices assigned to cluster c, in index order.
// The slice may be empty: clusters are never deleted or reseeded.
func (r *Result) Cluster(c int) []int {
	var members []int
	for i, a := range r.Assignment {
		if a == c {
			members = append(members, i)
		}
	}
	return members
}

// WCSS returns the within-cluster sum of squared distances of the dataset
// under this result, the objective Lloyd's algorithm monotonically decreases.
// The dataset must be the one the result was fitted on.
func (r *Result) WCSS(dataset []Point) float64 {
	var sum float64
	for i, p := range dataset {
		sum += SquaredDistance(p, r.Centroids[r.Assignment[i]])
	}
	return sum
}
