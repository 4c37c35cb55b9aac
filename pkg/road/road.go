package road

import (
	"strings"

	"github.com/matzehuels/roadcost/pkg/errors"
)

// DefaultAltMethodName labels the alternative treatment when no name is given.
const DefaultAltMethodName = "Alternative Method"

// Side is the lateral placement of a patch within the road cross-section.
type Side string

// Recognised sides.
const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideCenter Side = "center"
)

// ParseSide normalises a side value: surrounding whitespace is trimmed and
// the result is lower-cased. Unrecognised values are returned as-is so the
// caller can decide how to treat them; see [Side.Known].
func ParseSide(s string) Side {
	return Side(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether s is one of left, right or center.
func (s Side) Known() bool {
	switch s {
	case SideLeft, SideRight, SideCenter:
		return true
	}
	return false
}

// Patch is one repaired rectangle of road. Distances are in meters.
type Patch struct {
	StartChainage float64 `json:"start_chainage"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Side          Side    `json:"side"`
}

// End returns the chainage at which the patch ends.
func (p Patch) End() float64 { return p.StartChainage + p.Length }

// Area returns the patch surface in square meters.
func (p Patch) Area() float64 { return p.Length * p.Width }

// Section is the analysis window along the road.
type Section struct {
	ChainageStart float64 `json:"chainage_start"`
	ChainageEnd   float64 `json:"chainage_end"`
	Width         float64 `json:"width"`
}

// Length returns ChainageEnd - ChainageStart.
func (s Section) Length() float64 { return s.ChainageEnd - s.ChainageStart }

// Contains reports whether p lies fully within the section.
func (s Section) Contains(p Patch) bool {
	return p.StartChainage >= s.ChainageStart && p.End() <= s.ChainageEnd
}

// CostParameters holds the unit rates used to price both treatments.
// Rates are currency per square meter.
type CostParameters struct {
	PatchRepairRate float64 `json:"patch_repair_rate"`
	AltMethodRate   float64 `json:"alt_method_rate"`
	AltMethodName   string  `json:"alt_method_name"`

	// PatchLayers multiplies every patch cost. Zero is treated as one.
	PatchLayers int `json:"patch_layers,omitempty"`
}

// Layers returns the effective number of unbound layers (at least one).
func (c CostParameters) Layers() int {
	if c.PatchLayers < 1 {
		return 1
	}
	return c.PatchLayers
}

// Name returns the display name of the alternative treatment.
func (c CostParameters) Name() string {
	if name := strings.TrimSpace(c.AltMethodName); name != "" {
		return name
	}
	return DefaultAltMethodName
}

// Span returns the chainage interval from the earliest patch start to the
// latest patch end. It fails with ErrCodeNoPatches on an empty slice.
func Span(patches []Patch) (start, end float64, err error) {
	if len(patches) == 0 {
		return 0, 0, errors.New(errors.ErrCodeNoPatches, "no patches in the selected chainage range")
	}
	start, end = patches[0].StartChainage, patches[0].End()
	for _, p := range patches[1:] {
		start = min(start, p.StartChainage)
		end = max(end, p.End())
	}
	return start, end, nil
}
