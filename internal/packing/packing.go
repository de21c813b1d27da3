// Package packing expresses a continuous quantity as counts of discrete pack
// sizes using a greedy largest-first policy.
package packing

import (
	"math"
	"sort"
)

// epsilon is the tolerance under which a leftover quantity counts as covered.
const epsilon = 1e-9

// MaxPacks bounds the number of packs a single decomposition may produce.
const MaxPacks = math.MaxInt32

// Pack is a single line of a breakdown: Count packs of Size units each.
type Pack struct {
	Size  float64
	Count int
}

// Result summarises a decomposition.
type Result struct {
	PackCount int
	Breakdown []Pack
}

// Total returns the quantity covered by the breakdown.
func (r Result) Total() float64 {
	total := 0.0
	for _, p := range r.Breakdown {
		total += p.Size * float64(p.Count)
	}
	return total
}

// Optimize covers required with packs drawn from sizes. Sizes are tried
// largest first; whatever is left after the last size is topped up with one
// pack of the smallest size. The result always covers required but is not
// guaranteed to use the fewest packs for every size set. An empty result is
// returned when required cannot be covered within MaxPacks; use Fits to tell
// that case apart.
func Optimize(required float64, sizes []float64) Result {
	result := Result{Breakdown: []Pack{}}

	normalized := NormalizeSizes(sizes)
	if len(normalized) == 0 || !(required > 0) || !fits(required, normalized[len(normalized)-1]) {
		return result
	}

	remaining := required
	for _, size := range normalized {
		count := int(math.Floor(remaining / size))
		if count <= 0 {
			continue
		}
		result.Breakdown = append(result.Breakdown, Pack{Size: size, Count: count})
		result.PackCount += count
		remaining -= float64(count) * size
	}

	if remaining > epsilon {
		smallest := normalized[len(normalized)-1]
		topped := false
		for i := range result.Breakdown {
			if result.Breakdown[i].Size == smallest {
				result.Breakdown[i].Count++
				topped = true
				break
			}
		}
		if !topped {
			result.Breakdown = append(result.Breakdown, Pack{Size: smallest, Count: 1})
		}
		result.PackCount++
	}

	return result
}

// Fits reports whether required can be covered by packs of the given size
// without exceeding MaxPacks.
func Fits(required, size float64) bool {
	if !(size > 0) || math.IsInf(size, 1) {
		return false
	}
	return fits(required, size)
}

func fits(required, size float64) bool {
	if math.IsNaN(required) || math.IsInf(required, 0) {
		return false
	}
	return math.Ceil(required/size) <= MaxPacks
}

// NormalizeSizes drops non-positive and non-finite sizes, collapses
// duplicates and sorts the remainder in descending order.
func NormalizeSizes(sizes []float64) []float64 {
	unique := make(map[float64]struct{}, len(sizes))
	out := make([]float64, 0, len(sizes))
	for _, size := range sizes {
		if !(size > 0) || math.IsInf(size, 1) {
			continue
		}
		if _, seen := unique[size]; seen {
			continue
		}
		unique[size] = struct{}{}
		out = append(out, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
