package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/csvq/query"
)

// FileColumn is added to every row read through LoadGlob
const FileColumn = "_file"

// maxGlobFiles limits the number of files a pattern may expand to
const maxGlobFiles = 1000

// IsGlob reports whether path contains glob wildcards
func IsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// LoadGlob reads every file matching pattern into one dataset.
//
// A pattern without wildcards, or one naming an existing file such as
// "sales[2024].csv", is read as a single file without the _file column.
// Otherwise columns are merged in first-seen order and each
// row is tagged with its source path in _file.
func LoadGlob(pattern string, opts ...Option) (*query.Dataset, error) {
	if !IsGlob(pattern) {
		return Load(pattern, opts...)
	}
	if _, err := os.Stat(pattern); err == nil {
		return Load(pattern, opts...)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, &SourceError{Path: pattern, Op: "glob", Err: fmt.Errorf("no files match pattern")}
	}
	if len(matches) > maxGlobFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxGlobFiles)
	}

	var columns []string
	seen := make(map[string]bool)
	addColumn := func(c string) {
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}

	var rows []query.Row
	for _, path := range matches {
		ds, err := Load(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, c := range ds.Columns() {
			addColumn(c)
		}
		for _, row := range ds.Rows() {
			rows = append(rows, tagRow(row, path))
		}
	}
	addColumn(FileColumn)

	return query.NewDataset(columns, rows), nil
}

// tagRow returns a copy of row with _file set to path
func tagRow(row query.Row, path string) query.Row {
	cells := make(map[string]query.Cell, row.Len()+1)
	for _, k := range row.Keys() {
		c, _ := row.Get(k)
		cells[k] = c
	}
	cells[FileColumn] = query.Text(path)
	return query.RowFromCells(cells, row.Extra())
}
