package road

import (
	"github.com/matzehuels/roadcost/pkg/errors"
)

// Validate checks the section and cost parameters. All failures are
// collected; the returned error is an errors.List or nil.
//
// Comparisons are written so that NaN inputs fail as well.
func Validate(s Section, c CostParameters) error {
	var list errors.List
	if !(s.ChainageStart < s.ChainageEnd) {
		list.Add(errors.ErrCodeInvalidChainageRange, "chainage start must be less than chainage end")
	}
	if !(s.Width > 0) {
		list.Add(errors.ErrCodeInvalidRoadWidth, "road width must be greater than 0")
	}
	if !(c.PatchRepairRate > 0) {
		list.Add(errors.ErrCodeInvalidPatchCost, "patch repair cost must be greater than 0")
	}
	if !(c.AltMethodRate > 0) {
		list.Add(errors.ErrCodeInvalidAltMethodCost, "%s cost must be greater than 0", c.Name())
	}
	if c.PatchLayers < 0 {
		list.Add(errors.ErrCodeInvalidPatchLayers, "patch layers cannot be negative")
	}
	return list.Err()
}
