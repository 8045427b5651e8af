// Package distance implements the string and numeric dissimilarity metrics.
package distance

import "math"

// Levenshtein returns the single-character edit distance between a and b.
// Characters are runes; comparison is case-sensitive and unnormalized.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows over the shorter string
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Normalized divides the edit distance by the longer length, giving [0, 1].
// Two empty strings are at distance 0.
func Normalized(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0.0
	}
	return float64(Levenshtein(a, b)) / float64(longest)
}

// AverageNormalized is the mean normalized distance over all i<j pairs of values.
// Fewer than two values give 0.
func AverageNormalized(values []string) float64 {
	n := len(values)
	if n < 2 {
		return 0.0
	}

	var total float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += Normalized(values[i], values[j])
		}
	}
	return total / float64(Pairs(n))
}

// Pairs is the number of unordered pairs among n items
func Pairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// SumRangeNormalized returns the sum over i<j of |a-b| / valueRange.
// The caller guarantees valueRange != 0.
func SumRangeNormalized(values []float64, valueRange float64) float64 {
	var total float64
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			total += math.Abs(values[i]-values[j]) / valueRange
		}
	}
	return total
}
