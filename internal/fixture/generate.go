// internal/fixture/generate.go
// Package: fixture
package fixture

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
)

// MaxValue bounds generated values to [0, MaxValue), the range of a 32-bit
// C rand().
const MaxValue = math.MaxInt32

// Job is one fixture file to generate.
type Job struct {
	Size  int
	Trial int
	Path  string
}

// Plan lists the jobs for every (size, trial) pair, sizes outermost and
// trials 1..trials within each size.
func Plan(root string, sizes []int, trials int) []Job {
	jobs := make([]Job, 0, len(sizes)*max(trials, 0))
	for _, size := range sizes {
		for trial := 1; trial <= trials; trial++ {
			jobs = append(jobs, Job{Size: size, Trial: trial, Path: Path(root, size, trial)})
		}
	}
	return jobs
}

// Values returns the deterministic contents of the fixture for
// (size, trial). The trial id seeds the generator, so a given trial id
// always produces the same sequence.
func Values(size, trial int) []int {
	r := rand.New(rand.NewPCG(uint64(trial), uint64(size)))
	out := make([]int, max(size, 0))
	for i := range out {
		out[i] = r.IntN(MaxValue)
	}
	return out
}

// Encode renders values as a single comma-separated line without a trailing
// newline.
func Encode(values []int) []byte {
	buf := make([]byte, 0, len(values)*11)
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return buf
}

// Generate writes the fixture for j. An existing file is kept unless
// overwrite is set; the returned bool reports whether a file was written.
func (j Job) Generate(overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(j.Path); err == nil {
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(j.Path), 0o755); err != nil {
		return false, fmt.Errorf("create fixture dir: %w", err)
	}
	data := Encode(Values(j.Size, j.Trial))
	if err := atomic.WriteFile(j.Path, bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("write fixture %s: %w", j.Path, err)
	}
	return true, nil
}

// GenerateStats summarizes a GenerateSet call.
type GenerateStats struct {
	Written int
	Skipped int
}

// GenerateSet generates every job in plan order, calling progress (if
// non-nil) after each one. It stops at the first error or when ctx is done.
func GenerateSet(ctx context.Context, jobs []Job, overwrite bool, progress func(done int, j Job, written bool)) (GenerateStats, error) {
	var st GenerateStats
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		written, err := j.Generate(overwrite)
		if err != nil {
			return st, err
		}
		if written {
			st.Written++
		} else {
			st.Skipped++
		}
		if progress != nil {
			progress(i+1, j, written)
		}
	}
	return st, nil
}
