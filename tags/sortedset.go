package tags

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortedKeys returns the keys of m in ascending order. Used everywhere a
// bundle map must be walked deterministically (spec.md §4.2's "sort
// element order explicitly" applied to Go's unordered map iteration,
// rather than to a Location/TargetRef set, which sorts via Sorted()
// instead since structs don't satisfy constraints.Ordered).
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
