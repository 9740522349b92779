package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skyseries/lcgo/pkg/errors"
)

// RowScanner streams delimited rows from a source file. It follows the
// bufio.Scanner idiom: Scan advances to the next row, Row returns it, and
// Err reports the first failure once Scan returns false. A scanner is not
// resumable; restarting a scan means opening a fresh one.
type RowScanner struct {
	path string
	f    *os.File
	r    *csv.Reader
	row  []string
	line int
	err  error
}

// OpenRows opens path for row-by-row scanning, skipping the first skip rows.
func OpenRows(path string, skip int) (*RowScanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	s := &RowScanner{path: path, f: f, r: r}
	for i := 0; i < skip; i++ {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				break
			}
			_ = f.Close()
			return nil, errors.Wrapf(err, "skip header in %s", path)
		}
		s.line++
	}
	return s, nil
}

// Scan advances to the next row. It returns false at end of input or on the
// first read error.
func (s *RowScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	row, err := s.r.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = errors.Wrapf(err, "read %s", s.path)
		return false
	}
	s.row = row
	s.line++
	return true
}

// Row returns the most recently scanned row. Valid until the next Scan.
func (s *RowScanner) Row() []string {
	return s.row
}

// Line returns the 1-based source line of the most recently scanned row.
func (s *RowScanner) Line() int {
	return s.line
}

// Err returns the first error encountered while scanning, if any.
func (s *RowScanner) Err() error {
	return s.err
}

// Close releases the underlying file.
func (s *RowScanner) Close() error {
	return s.f.Close()
}

// Path returns the source file path.
func (s *RowScanner) Path() string {
	return s.path
}

// fieldFloat parses one numeric field of a scanned row. A missing or
// non-numeric field aborts the load with a MalformedRowError.
func fieldFloat(path string, line int, row []string, idx int, name string) (float64, error) {
	if idx >= len(row) {
		return 0, errors.NewMalformedRowError(path, line, name, nil)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, errors.NewMalformedRowError(path, line, name, err)
	}
	return v, nil
}

// readMatrix loads a whole delimited numeric file into memory, one slice per
// row. delim ' ' means any run of whitespace. Used by the formats that need
// full materialization for column-wise access (legacy OGLE3, K2); the
// streaming formats go through RowScanner instead.
func readMatrix(path string, delim rune, skip int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var rows [][]float64
	width := -1
	line := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		if line <= skip {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var fields []string
		if delim == ' ' {
			fields = strings.Fields(text)
		} else {
			fields = strings.Split(text, string(delim))
		}
		row := make([]float64, len(fields))
		for i, fv := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(fv), 64)
			if err != nil {
				return nil, errors.NewMalformedRowError(path, line, "col"+strconv.Itoa(i), err)
			}
			row[i] = v
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, errors.NewDimensionError("dataset.readMatrix", width, len(row), 1)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return rows, nil
}
