package road

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Spreadsheet column headers recognised in a Row.
const (
	FieldStartChainage = "Patch Start Chainage"
	FieldLength        = "Patch Length"
	FieldWidth         = "Patch Width"
	FieldSide          = "Side"
)

// Row is one decoded spreadsheet record keyed by column header.
// Values may be numbers, numeric strings or strings; missing cells are
// simply absent.
type Row map[string]any

// Number returns the field as a float64. It reports false when the field
// is missing, empty, non-numeric or NaN.
func (r Row) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// String returns the field as trimmed text, or "" if it is missing.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// FilterPatches converts rows into patches lying within [chainageStart,
// chainageEnd]. A row is kept only when its start chainage is numeric and
// its length, width and side are present and non-zero. Input order is
// preserved. The number of rows dropped is returned alongside.
func FilterPatches(rows []Row, chainageStart, chainageEnd float64) ([]Patch, int) {
	patches := make([]Patch, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		p, ok := patchFromRow(row)
		if !ok || p.StartChainage < chainageStart || p.End() > chainageEnd {
			skipped++
			continue
		}
		patches = append(patches, p)
	}
	return patches, skipped
}

func patchFromRow(row Row) (Patch, bool) {
	start, ok := row.Number(FieldStartChainage)
	if !ok {
		return Patch{}, false
	}
	length, _ := row.Number(FieldLength)
	width, _ := row.Number(FieldWidth)
	side := row.String(FieldSide)
	if length == 0 || width == 0 || !present(row[FieldSide]) {
		return Patch{}, false
	}
	return Patch{
		StartChainage: start,
		Length:        length,
		Width:         width,
		Side:          ParseSide(side),
	}, true
}

// present reports whether v counts as a filled cell. Blank text, false and
// numeric zero do not.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case bool:
		return x
	case float64, float32, int, int64, json.Number:
		f, ok := Row{"": x}.Number("")
		return ok && f != 0
	}
	return true
}

// UnknownSides returns the distinct unrecognised side values among patches,
// in first-seen order.
func UnknownSides(patches []Patch) []Side {
	var out []Side
	seen := make(map[Side]bool)
	for _, p := range patches {
		if p.Side.Known() || seen[p.Side] {
			continue
		}
		seen[p.Side] = true
		out = append(out, p.Side)
	}
	return out
}
