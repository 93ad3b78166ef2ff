// internal/fixture/reader.go
// Package: fixture
package fixture

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// Read loads the first record of the fixture at path as an ordered slice of
// integers. A missing file yields ErrNotFound. An empty file, a file with no
// record, or any field that is not an integer yields ErrMalformedData; a bad
// field is never skipped.
func Read(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer f.Close()

	return parse(bufio.NewReader(f), path)
}

func parse(r io.Reader, path string) ([]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	record, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", ErrMalformedData, path)
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedData, path, perr)
		}
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	values := make([]int, len(record))
	for i, field := range record {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: field %d (%q) is not an integer", ErrMalformedData, path, i+1, field)
		}
		values[i] = v
	}
	return values, nil
}
