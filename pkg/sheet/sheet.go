// Package sheet decodes patch spreadsheets into [road.Row] records.
//
// The first row of every format is the header. Each following row becomes a
// [road.Row] keyed by header text; empty cells are left out of the row so
// that a missing value and a blank value look the same to the filter.
// Entirely blank rows are skipped.
//
// Supported formats are xlsx/xlsm (first worksheet), csv and json (an array
// of objects).
package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/road"
)

// Open reads and decodes the spreadsheet at path.
func Open(path string) ([]road.Row, error) {
	if err := errors.ValidateSheetExtension(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "sheet %s not found", path)
		}
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()
	return Decode(f, filepath.Base(path))
}

// Decode decodes r using the format implied by name's extension.
func Decode(r io.Reader, name string) ([]road.Row, error) {
	if err := errors.ValidateSheetExtension(name); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return DecodeXLSX(r)
	case ".csv":
		return DecodeCSV(r)
	case ".json":
		return DecodeJSON(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported sheet %q", name)
}

// fromRecords turns a header row plus string records into rows.
func fromRecords(header []string, records [][]string) []road.Row {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.TrimSpace(h)
	}

	rows := make([]road.Row, 0, len(records))
	for _, rec := range records {
		row := road.Row{}
		for i, cell := range rec {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			row[keys[i]] = cell
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
