package cluster

import (
	"errors"
	"math"
	"math/rand"
)

const (
	DefaultSeed    = 42
	maxIterations  = 300
	convergenceTol = 1e-4
)

var ErrNoPoints = errors.New("no points to cluster")

type KMeansResult struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// KMeans partitions points into k groups with k-means++ seeding. The same seed
// and input always produce the same labels. k is clamped to [1, len(points)].
func KMeans(points [][]float32, k int, seed int64) (*KMeansResult, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrNoPoints
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	data := make([][]float64, n)
	for i, p := range points {
		data[i] = make([]float64, len(p))
		for j, v := range p {
			data[i][j] = float64(v)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(data, k, rng)
	labels := make([]int, n)

	for iter := 0; iter < maxIterations; iter++ {
		for i, p := range data {
			labels[i] = nearest(p, centroids)
		}

		next := recompute(data, labels, centroids)
		shift := 0.0
		for c := range centroids {
			shift += squaredDistance(centroids[c], next[c])
		}
		centroids = next
		if shift <= convergenceTol*convergenceTol {
			break
		}
	}

	inertia := 0.0
	for i, p := range data {
		labels[i] = nearest(p, centroids)
		inertia += squaredDistance(p, centroids[labels[i]])
	}

	return &KMeansResult{Labels: labels, Centroids: centroids, Inertia: inertia}, nil
}

func seedCentroids(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := rng.Intn(len(data))
	centroids = append(centroids, clone(data[first]))

	dist := make([]float64, len(data))
	for len(centroids) < k {
		total := 0.0
		for i, p := range data {
			dist[i] = squaredDistance(p, centroids[nearest(p, centroids)])
			total += dist[i]
		}

		pick := rng.Intn(len(data))
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range dist {
				acc += d
				if acc >= target && d > 0 {
					pick = i
					break
				}
			}
		}
		centroids = append(centroids, clone(data[pick]))
	}
	return centroids
}

// recompute averages each cluster's members; an empty cluster keeps its old centroid.
func recompute(data [][]float64, labels []int, old [][]float64) [][]float64 {
	dim := len(data[0])
	sums := make([][]float64, len(old))
	counts := make([]int, len(old))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range data {
		c := labels[i]
		counts[c]++
		for j, v := range p {
			sums[c][j] += v
		}
	}
	for c := range sums {
		if counts[c] == 0 {
			sums[c] = clone(old[c])
			continue
		}
		for j := range sums[c] {
			sums[c][j] /= float64(counts[c])
		}
	}
	return sums
}

func nearest(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(p, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
