// internal/fixture/probe.go
// Package: fixture
package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SizeAvailability is what the probe found for one size bucket.
type SizeAvailability struct {
	Size  int      `json:"size"`
	Files []string `json:"files"` // base names, sorted
}

// Count is the number of fixture files in the bucket.
func (s SizeAvailability) Count() int { return len(s.Files) }

// Sample returns up to n file names for display.
func (s SizeAvailability) Sample(n int) []string {
	if n >= len(s.Files) {
		return s.Files
	}
	return s.Files[:n]
}

// Availability is the probe result over all configured sizes, in
// configuration order.
type Availability []SizeAvailability

// Total sums the file counts over every size.
func (a Availability) Total() int {
	total := 0
	for _, s := range a {
		total += s.Count()
	}
	return total
}

// List returns the sorted base names of run_*.<ext> files in the bucket for
// size. A missing bucket directory is not an error; it has no files.
func List(root string, size int, ext string) ([]string, error) {
	dir := filepath.Join(root, SizeDir(size))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []string
	suffix := "." + ext
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "run_") || !strings.HasSuffix(name, suffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// Probe counts the fixture files per size without reading their contents.
// A bucket that cannot be listed counts as empty and its error is joined
// into the returned error; the availability is still complete.
func Probe(root string, sizes []int, ext string) (Availability, error) {
	out := make(Availability, 0, len(sizes))
	var errs []error
	for _, size := range sizes {
		files, err := List(root, size, ext)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, SizeAvailability{Size: size, Files: files})
	}
	return out, errors.Join(errs...)
}
