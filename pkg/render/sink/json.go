package sink

import (
	"encoding/json"

	"github.com/matzehuels/roadcost/pkg/layout"
)

// RenderJSON exports the scene geometry as indented JSON.
func RenderJSON(s layout.Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
