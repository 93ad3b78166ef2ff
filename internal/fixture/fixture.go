// internal/fixture/fixture.go
// Package: fixture

// Package fixture locates, reads, lists and generates the integer-array
// fixture files a benchmark run consumes. Fixtures live under a data root as
// <root>/n<size:06d>/run_<trial:03d>.csv, each holding one line of
// comma-separated base-10 integers.
package fixture

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultExt is the fixture file extension used by Path.
const DefaultExt = "csv"

var (
	// ErrNotFound reports a fixture path that does not exist.
	ErrNotFound = errors.New("fixture not found")
	// ErrMalformedData reports a fixture that exists but holds no usable record.
	ErrMalformedData = errors.New("malformed fixture data")
)

// SizeDir returns the directory name for a size bucket, e.g. "n050000".
func SizeDir(size int) string {
	return fmt.Sprintf("n%06d", size)
}

// FileName returns the file name for a trial, e.g. "run_023.csv".
func FileName(trial int, ext string) string {
	return fmt.Sprintf("run_%03d.%s", trial, ext)
}

// Path maps (size, trial) to the fixture path under root. It does no I/O;
// a bad size or trial simply yields a path that does not exist.
func Path(root string, size, trial int) string {
	return PathExt(root, size, trial, DefaultExt)
}

// PathExt is Path with an explicit file extension.
func PathExt(root string, size, trial int, ext string) string {
	return filepath.Join(root, SizeDir(size), FileName(trial, ext))
}
