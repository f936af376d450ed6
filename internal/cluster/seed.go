// Package cluster implements k-means clustering over fixed-dimension vectors.
package cluster

import "math/rand"

// seedCentroids selects k initial centroids from the dataset using the
// k-means++ strategy: the first centroid is drawn uniformly, each subsequent
// one with probability proportional to its squared distance from the nearest
// centroid chosen so far. Spreading seeds across the space in proportion to
// unexplained variance reduces the chance of poor local optima compared to
// uniform seeding.
//
// Every returned centroid is an independent copy of a dataset point, so later
// updates never write through to caller-owned data.
func seedCentroids(dataset []Point, k int, rng *rand.Rand) []Point {
	centroids := make([]Point, 0, k)
	centroids = append(centroids, dataset[rng.Intn(len(dataset))].Clone())

	weights := make([]float64, len(dataset))
	for len(centroids) < k {
		var total float64
		for i, p := range dataset {
			nearest := SquaredDistance(p, centroids[0])
			for _, c := range centroids[1:] {
				if d := SquaredDistance(p, c); d < nearest {
					nearest = d
				}
			}
			weights[i] = nearest
			total += nearest
		}

		if total == 0 {
			// Every candidate coincides with a chosen centroid; a weighted
			// draw would be undefined, so fall back to a uniform one.
			centroids = append(centroids, dataset[rng.Intn(len(dataset))].Clone())
			continue
		}

		centroids = append(centroids, dataset[weightedIndex(weights, total, rng)].Clone())
	}

	return centroids
}

// weightedIndex draws an index with probability proportional to its weight:
// a uniform value in [0, total) is walked down the weight sequence until the
// remainder is spent.
func weightedIndex(weights []float64, total float64, rng *rand.Rand) int {
	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return i
		}
	}
	// Floating-point rounding can leave a sliver of the draw unspent.
	return len(weights) - 1
}
