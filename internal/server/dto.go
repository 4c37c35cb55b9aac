package server

import (
	"github.com/matzehuels/roadcost/pkg/config"
	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/road"
)

// Response headers.
const (
	headerCache      = "X-Roadcost-Cache"
	headerEstimateID = "X-Roadcost-Estimate-Id"
)

// EstimateRequest is the JSON body of /estimate and /render/{format}.
// Nil rate fields take the configured defaults.
type EstimateRequest struct {
	ChainageStart float64 `json:"chainage_start"`
	ChainageEnd   float64 `json:"chainage_end"`
	RoadWidth     float64 `json:"road_width"`

	PatchRepairRate *float64 `json:"patch_repair_rate,omitempty"`
	AltMethodRate   *float64 `json:"alt_method_rate,omitempty"`
	AltMethodName   *string  `json:"alt_method_name,omitempty"`
	PatchLayers     *int     `json:"patch_layers,omitempty"`

	Rows     []road.Row `json:"rows"`
	Formats  []string   `json:"formats,omitempty"`
	PNGScale float64    `json:"png_scale,omitempty"`
	Refresh  bool       `json:"refresh,omitempty"`
}

// options resolves the request against configured defaults.
func (req EstimateRequest) options(cfg config.Config) estimate.Options {
	p := road.CostParameters{
		PatchRepairRate: cfg.Rates.PatchRepairRate,
		AltMethodRate:   cfg.Rates.AltMethodRate,
		AltMethodName:   cfg.Rates.AltMethodName,
		PatchLayers:     cfg.Rates.PatchLayers,
	}
	if req.PatchRepairRate != nil {
		p.PatchRepairRate = *req.PatchRepairRate
	}
	if req.AltMethodRate != nil {
		p.AltMethodRate = *req.AltMethodRate
	}
	if req.AltMethodName != nil {
		p.AltMethodName = *req.AltMethodName
	}
	if req.PatchLayers != nil {
		p.PatchLayers = *req.PatchLayers
	}

	scale := req.PNGScale
	if scale == 0 {
		scale = cfg.Render.PNGScale
	}
	return estimate.Options{
		Section: road.Section{
			ChainageStart: req.ChainageStart,
			ChainageEnd:   req.ChainageEnd,
			Width:         req.RoadWidth,
		},
		Params:   p,
		Formats:  req.Formats,
		PNGScale: scale,
		Refresh:  req.Refresh,
	}
}

// EstimateResponse is the JSON result of an estimate. Artifacts are
// base64-encoded by encoding/json.
type EstimateResponse struct {
	ID string `json:"id"`
	*estimate.Result
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
