// internal/search/search.go
// Package: search
package search

import (
	"fmt"
	"math"
	"sort"
)

// NotFound is the index returned when the target is not present.
const NotFound = -1

// Absent is the target used when there is nothing to search. No element of
// an empty array can match it.
const Absent = math.MinInt

// Func is the search routine under test. It receives the array and the
// target and returns the index of a match or NotFound. The harness only
// times it; it never checks the answer.
type Func func(arr []int, target int) int

// Linear scans arr left to right and returns the first index holding target.
func Linear(arr []int, target int) int {
	for i, v := range arr {
		if v == target {
			return i
		}
	}
	return NotFound
}

var registry = map[string]Func{
	"linear": Linear,
}

// Lookup returns the registered search routine called name.
func Lookup(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown search algorithm %q (available: %v)", name, Names())
	}
	return fn, nil
}

// Names lists the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
