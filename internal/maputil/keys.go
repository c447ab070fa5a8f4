// Package maputil provides small generic helpers over maps used throughout
// the generator for deterministic iteration order.
package maputil

import "sort"

// SortedKeys returns the keys of m in ascending order. Used wherever a
// map[string]any-shaped structure must be walked deterministically (e.g.
// OpenAPI extension maps, security requirement sets) without paying for an
// OrderedMap.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
