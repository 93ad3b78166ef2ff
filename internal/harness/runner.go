// internal/harness/runner.go
// Package: harness
package harness

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/mwiater/searchbench/internal/search"
)

// Timing is the outcome of one timed search call.
type Timing struct {
	Index  int
	Millis float64
}

// Measure performs exactly one call fn(arr, target) and returns its
// wall-clock duration in fractional milliseconds. time.Now carries a
// monotonic reading, so the duration is unaffected by clock adjustments.
func Measure(fn search.Func, arr []int, target int) Timing {
	start := time.Now()
	idx := fn(arr, target)
	elapsed := time.Since(start)
	return Timing{Index: idx, Millis: float64(elapsed) / float64(time.Millisecond)}
}

// safeMeasure is Measure with a panicking search routine turned into an
// error. The deferred recover is installed before the first timestamp.
func safeMeasure(fn search.Func, arr []int, target int) (t Timing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search routine panicked: %v", r)
		}
	}()
	return Measure(fn, arr, target), nil
}

// DefaultTarget is the worst-case target for a left-to-right scan: the last
// element, or search.Absent when arr is empty.
func DefaultTarget(arr []int) int {
	if len(arr) == 0 {
		return search.Absent
	}
	return arr[len(arr)-1]
}

// PickTarget chooses the search target for arr. A non-nil fixed value always
// wins. TargetRandom flips a coin between a random element of arr and a
// value no element can equal; anything else falls back to DefaultTarget.
func PickTarget(arr []int, mode TargetMode, fixed *int, rng *rand.Rand) int {
	if fixed != nil {
		return *fixed
	}
	if mode != TargetRandom || len(arr) == 0 || rng == nil {
		return DefaultTarget(arr)
	}
	if rng.IntN(2) == 0 {
		return arr[rng.IntN(len(arr))]
	}
	return missValue(arr, 1+rng.IntN(1000))
}

// missValue returns a value outside [min(arr), max(arr)], offset by k.
// Only an array spanning the whole int range has no such value; it gets
// its last element.
func missValue(arr []int, k int) int {
	lo, hi := arr[0], arr[0]
	for _, v := range arr[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	switch {
	case hi <= math.MaxInt-k:
		return hi + k
	case lo >= math.MinInt+k:
		return lo - k
	}
	return arr[len(arr)-1]
}

// newRand returns the generator used for TargetRandom and the seed it was
// built from. A zero seed is replaced by one derived from the clock.
func newRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}
