package sheet

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/road"
)

// DecodeXLSX reads the first worksheet of an xlsx workbook. Cells are read
// as stored values, so number formats such as "#,##0" do not round or
// group the numbers.
func DecodeXLSX(r io.Reader) ([]road.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSheet, "workbook has no worksheets")
	}
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read worksheet %q", sheets[0])
	}
	if len(records) == 0 {
		return nil, nil
	}
	return fromRecords(records[0], records[1:]), nil
}

// DecodeCSV reads comma-separated rows. Ragged rows are accepted.
func DecodeCSV(r io.Reader) ([]road.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read csv")
	}
	if len(records) == 0 {
		return nil, nil
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return fromRecords(header, records[1:]), nil
}

// DecodeJSON reads an array of objects. Numbers are kept as json.Number so
// no precision is lost before filtering.
func DecodeJSON(r io.Reader) ([]road.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read json rows")
	}
	rows := make([]road.Row, 0, len(raw))
	for _, obj := range raw {
		row := road.Row{}
		for k, v := range obj {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			if v == nil {
				continue
			}
			row[k] = v
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
