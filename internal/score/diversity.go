package score

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/gendiv/internal/distance"
	"github.com/ppiankov/gendiv/internal/model"
)

// DiversityEngine calculates the average pairwise distance of each category's inputs
type DiversityEngine struct {
	divisor model.AmountDivisor
}

// NewDiversityEngine creates an engine; an empty divisor means DivisorAllPairs
func NewDiversityEngine(divisor model.AmountDivisor) *DiversityEngine {
	if divisor == "" {
		divisor = model.DivisorAllPairs
	}
	return &DiversityEngine{divisor: divisor}
}

// Calculate returns one result per non-empty category, most diverse first
func (e *DiversityEngine) Calculate(groups map[model.Category][]string) []model.DiversityResult {
	var results []model.DiversityResult
	for _, category := range model.Categories() {
		values := groups[category]
		if len(values) == 0 {
			continue
		}
		results = append(results, e.calculateCategory(category, values))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AvgDistance != results[j].AvgDistance {
			return results[i].AvgDistance > results[j].AvgDistance
		}
		return results[i].Category < results[j].Category
	})

	return results
}

// calculateCategory dedupes values and applies the category's metric
func (e *DiversityEngine) calculateCategory(category model.Category, values []string) model.DiversityResult {
	unique := uniqueSorted(values)

	result := model.DiversityResult{
		Category:    category,
		UniqueCount: len(unique),
		Kind:        model.DistanceString,
		Pairs:       distance.Pairs(len(unique)),
	}
	if category.IsNumeric() {
		result.Kind = model.DistanceNumeric
	}

	// A single distinct value has no spread
	if len(unique) < 2 {
		return result
	}

	if category.IsNumeric() {
		result.AvgDistance, result.Numeric = e.numericDistance(unique)
	} else {
		result.AvgDistance = distance.AverageNormalized(unique)
	}

	return result
}

// numericDistance averages |a-b| / (max-min) over the parsed amounts.
// With DivisorAllPairs the sum is divided by the pair count of every unique value,
// including values that failed to parse.
func (e *DiversityEngine) numericDistance(unique []string) (float64, *model.NumericDetail) {
	amounts := parseAmounts(unique)
	detail := &model.NumericDetail{
		Parsed: len(amounts),
	}

	if len(amounts) < 2 {
		return 0.0, detail
	}

	lo, hi := slices.Min(amounts), slices.Max(amounts)
	detail.Min = lo
	detail.Max = hi
	detail.Range = hi - lo
	if detail.Range == 0 {
		return 0.0, detail
	}

	detail.Divisor = distance.Pairs(len(unique))
	detail.Formula = "sum(|a-b| / range) over parsed pairs / pairs(unique values)"
	if e.divisor == model.DivisorNumericPairs {
		detail.Divisor = distance.Pairs(len(amounts))
		detail.Formula = "sum(|a-b| / range) over parsed pairs / pairs(parsed values)"
	}

	return distance.SumRangeNormalized(amounts, detail.Range) / float64(detail.Divisor), detail
}

// parseAmounts reads the first whitespace-separated token of each value as a number.
// Values without a finite leading number are skipped.
func parseAmounts(values []string) []float64 {
	var amounts []float64
	for _, v := range values {
		fields := strings.Fields(v)
		if len(fields) == 0 {
			continue
		}
		f, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		amounts = append(amounts, f)
	}
	return amounts
}

// uniqueSorted dedupes values into ascending order
func uniqueSorted(values []string) []string {
	unique := slices.Clone(values)
	slices.Sort(unique)
	return slices.Compact(unique)
}
