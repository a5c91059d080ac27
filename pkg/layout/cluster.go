package layout

import (
	"errors"
	"slices"
)

// ErrNoClusters is returned by Ckmeans when asked for fewer than one cluster
var ErrNoClusters = errors.New("cluster count must be at least 1")

// Ckmeans partitions values into k groups of consecutive sorted values so
// that the sum of squared distances to each group's mean is minimal
// (optimal 1-D k-means, solved by dynamic programming).
//
// k is clamped to the number of distinct values. Clusters are returned in
// ascending order of their values. When several partitions are optimal the
// one with the leftmost split points is returned.
func Ckmeans(values []int, k int) ([][]int, error) {
	if k < 1 {
		return nil, ErrNoClusters
	}
	if len(values) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	k = min(k, distinct(sorted))
	n := len(sorted)

	// prefix sums of values and squared values
	sum := make([]float64, n+1)
	sumSq := make([]float64, n+1)
	for i, v := range sorted {
		f := float64(v)
		sum[i+1] = sum[i] + f
		sumSq[i+1] = sumSq[i] + f*f
	}

	// withinSS returns the sum of squared deviations of sorted[i..j]
	withinSS := func(i, j int) float64 {
		size := float64(j - i + 1)
		s := sum[j+1] - sum[i]
		return sumSq[j+1] - sumSq[i] - s*s/size
	}

	// cost[c][j] is the minimal cost of splitting sorted[0..j] into c+1
	// clusters; start[c][j] is where the last of those clusters begins
	cost := make([][]float64, k)
	start := make([][]int, k)
	for c := range cost {
		cost[c] = make([]float64, n)
		start[c] = make([]int, n)
	}

	for j := 0; j < n; j++ {
		cost[0][j] = withinSS(0, j)
	}

	for c := 1; c < k; c++ {
		for j := c; j < n; j++ {
			best, bestStart := -1.0, -1
			for i := c; i <= j; i++ {
				candidate := cost[c-1][i-1] + withinSS(i, j)
				if bestStart < 0 || candidate < best {
					best, bestStart = candidate, i
				}
			}
			cost[c][j] = best
			start[c][j] = bestStart
		}
	}

	clusters := make([][]int, k)
	right := n - 1
	for c := k - 1; c >= 0; c-- {
		left := start[c][right]
		clusters[c] = sorted[left : right+1]
		right = left - 1
	}

	return clusters, nil
}

// Mode returns the most frequent value. Ties go to the smallest value.
// It returns 0 for an empty slice.
func Mode(values []int) int {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	mode, best := 0, 0
	for v, count := range counts {
		if count > best || (count == best && v < mode) {
			mode, best = v, count
		}
	}
	return mode
}

// distinct counts the different values in a sorted slice
func distinct(sorted []int) int {
	if len(sorted) == 0 {
		return 0
	}
	count := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			count++
		}
	}
	return count
}
