// Package road defines the data model shared by the cost model and the
// layout mapper: the analysed road [Section], the [Patch] repairs inside it,
// the [CostParameters] used to price them, and the raw [Row] records a
// spreadsheet decoder produces.
//
// # Patch Filtering
//
// [FilterPatches] turns decoded rows into patches. A row is kept only when
// it lies fully inside the section and its length, width and side are all
// present and non-zero:
//
//	patches, skipped := road.FilterPatches(rows, section.ChainageStart, section.ChainageEnd)
//
// Excluded rows are not errors; the skipped count lets callers warn about
// them without aborting the estimate.
//
// # Validation
//
// [Validate] checks a section and its cost parameters together and returns
// every failure at once as an [errors.List]:
//
//	if err := road.Validate(section, params); err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
//
// # Spans
//
// [Span] returns the chainage interval from the first patch start to the
// last patch end. Both the alternative-method cost and its diagram rectangle
// are scoped to this interval.
//
// [errors.List]: github.com/matzehuels/roadcost/pkg/errors.List
package road
