package cost

import (
	"fmt"
	"strings"

	"github.com/matzehuels/roadcost/pkg/road"
)

// Comparison is the outcome of pricing both treatments.
type Comparison struct {
	Unbound   UnboundCost   `json:"unbound"`
	AltMethod AltMethodCost `json:"alt_method"`
	Cheaper   Treatment     `json:"cheaper"`
	Margin    float64       `json:"margin"`
}

// Compare prices both treatments for patches on section. The alternative
// method wins only when it is strictly cheaper; ties go to unbound pavement.
//
// Inputs are expected to have passed road.Validate. Compare fails only when
// patches is empty.
func Compare(section road.Section, patches []road.Patch, params road.CostParameters) (Comparison, error) {
	alt, err := AltMethod(patches, section.Width, params.AltMethodRate, params.Name())
	if err != nil {
		return Comparison{}, err
	}
	unbound := Unbound(patches, params.PatchRepairRate, params.Layers())

	c := Comparison{Unbound: unbound, AltMethod: alt}
	if alt.Total < unbound.Total {
		c.Cheaper = TreatmentAltMethod
		c.Margin = unbound.Total - alt.Total
	} else {
		c.Cheaper = TreatmentUnbound
		c.Margin = alt.Total - unbound.Total
	}
	return c, nil
}

// CheaperLabel returns the display name of the cheaper treatment.
func (c Comparison) CheaperLabel() string {
	if c.Cheaper == TreatmentAltMethod {
		return c.AltMethod.Name
	}
	return UnboundLabel
}

// Totals returns the cheaper and the dearer total, in that order.
func (c Comparison) Totals() (cheaper, dearer float64) {
	if c.Cheaper == TreatmentAltMethod {
		return c.AltMethod.Total, c.Unbound.Total
	}
	return c.Unbound.Total, c.AltMethod.Total
}

// Verdict is the one-line conclusion, e.g.
// "Unbound Pavement is cheaper: $238700.00 vs $450000.00".
func (c Comparison) Verdict() string {
	cheaper, dearer := c.Totals()
	return fmt.Sprintf("%s is cheaper: %s vs %s", c.CheaperLabel(), Money(cheaper), Money(dearer))
}

// Report renders the full textual comparison: one line per patch, the
// unbound total, the alternative-method line and the verdict.
func (c Comparison) Report() string {
	var b strings.Builder
	for _, l := range c.Unbound.Lines {
		fmt.Fprintf(&b, "%s\n", PatchLine(l))
	}
	if c.Unbound.Layers > 1 {
		fmt.Fprintf(&b, "Layers: %d\n", c.Unbound.Layers)
	}
	fmt.Fprintf(&b, "Total %s cost: %s\n", UnboundLabel, Money(c.Unbound.Total))
	fmt.Fprintf(&b, "%s\n", AltMethodLine(c.AltMethod))
	fmt.Fprintf(&b, "%s (saves %s)\n", c.Verdict(), Money(c.Margin))
	return b.String()
}

// PatchLine formats a single patch cost line.
func PatchLine(l Line) string {
	return fmt.Sprintf("Patch %d (%s, chainage %s-%s m): %s x %s m = %s m² -> %s",
		l.Index, l.Patch.Side,
		Fixed(l.Patch.StartChainage), Fixed(l.Patch.End()),
		Fixed(l.Patch.Length), Fixed(l.Patch.Width),
		Fixed(l.Area), Money(l.Cost))
}

// AltMethodLine formats the alternative-method cost line.
func AltMethodLine(a AltMethodCost) string {
	return fmt.Sprintf("%s (chainage %s-%s m, %s x %s m = %s m²): %s",
		a.Name, Fixed(a.SpanStart), Fixed(a.SpanEnd),
		Fixed(a.SpanLength()), Fixed(a.Width), Fixed(a.Area), Money(a.Total))
}

// Details summarises the analysed patches and the resolved road parameters.
func Details(section road.Section, params road.CostParameters, included, skipped int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patches in range: %d", included)
	if skipped > 0 {
		fmt.Fprintf(&b, " (%d rows skipped)", skipped)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Road section: chainage %s-%s m (%s m long, %s m wide)\n",
		Fixed(section.ChainageStart), Fixed(section.ChainageEnd),
		Fixed(section.Length()), Fixed(section.Width))
	fmt.Fprintf(&b, "%s rate: %s/m²", UnboundLabel, Money(params.PatchRepairRate))
	if params.Layers() > 1 {
		fmt.Fprintf(&b, " x %d layers", params.Layers())
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s rate: %s/m²\n", params.Name(), Money(params.AltMethodRate))
	return b.String()
}

// Money formats an amount with a dollar sign and two decimals.
func Money(v float64) string { return "$" + Fixed(v) }

// Fixed formats v with two decimals.
func Fixed(v float64) string { return fmt.Sprintf("%.2f", v) }
