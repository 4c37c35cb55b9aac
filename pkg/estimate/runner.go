package estimate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadcost/pkg/cache"
	"github.com/matzehuels/roadcost/pkg/cost"
	"github.com/matzehuels/roadcost/pkg/layout"
	"github.com/matzehuels/roadcost/pkg/observability"
	"github.com/matzehuels/roadcost/pkg/road"
)

// Runner executes estimates with artifact caching.
//
// The Runner is stateless except for the cache and logger, so one Runner
// can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means cache.DefaultKeyer and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Estimate validates opts, filters rows into patches, compares both
// treatments, lays out the diagram and renders every requested format.
//
// Validation failures come back as one errors.List before any work is done.
// An empty patch set fails with errors.ErrCodeNoPatches.
func (r *Runner) Estimate(ctx context.Context, rows []road.Row, opts Options) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Estimate()
	hooks.OnEstimateStart(ctx, len(rows))
	defer func() {
		patches, cheaper := 0, ""
		if res != nil {
			patches, cheaper = len(res.Patches), string(res.Comparison.Cheaper)
		}
		hooks.OnEstimateComplete(ctx, patches, cheaper, time.Since(start), err)
	}()

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	patches, skipped := road.FilterPatches(rows, opts.Section.ChainageStart, opts.Section.ChainageEnd)
	res = &Result{
		Patches:   patches,
		Skipped:   skipped,
		Warnings:  warnings(skipped, road.UnknownSides(patches)),
		Details:   cost.Details(opts.Section, opts.Params, len(patches), skipped),
		Artifacts: make(map[string][]byte),
	}
	res.Stats.Rows = len(rows)
	res.Stats.Patches = len(patches)
	for _, w := range res.Warnings {
		r.Logger.Warn(w)
	}

	compareStart := time.Now()
	cmp, err := cost.Compare(opts.Section, patches, opts.Params)
	if err != nil {
		return nil, err
	}
	res.Comparison = cmp
	res.Report = cmp.Report()
	res.Stats.CompareTime = time.Since(compareStart)

	r.Logger.Info("compared treatments",
		"patches", len(patches),
		"skipped", skipped,
		"unbound", cost.Fixed(cmp.Unbound.Total),
		"alt_method", cost.Fixed(cmp.AltMethod.Total),
		"cheaper", cmp.CheaperLabel())

	layoutStart := time.Now()
	scene, err := layout.Compute(opts.Section, patches, opts.Params.Name())
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Scene = scene
	res.SceneHash, err = SceneHash(scene)
	if err != nil {
		return nil, err
	}
	res.Stats.LayoutTime = time.Since(layoutStart)

	if len(opts.Formats) == 0 {
		return res, nil
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.CacheInfo.RenderHit = hit
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// RenderWithCacheInfo renders scene in opts.Formats, reading and writing
// the artifact cache. The boolean reports whether every artifact was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene layout.Scene, opts Options) (map[string][]byte, bool, error) {
	for _, f := range opts.Formats {
		if err := ValidateFormat(f); err != nil {
			return nil, false, err
		}
	}
	sceneHash, err := SceneHash(scene)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Debug("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Estimate()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, scene, missing, opts.pngScale())
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// SceneHash is the content hash of a scene, used as the artifact cache key.
func SceneHash(scene layout.Scene) (string, error) {
	data, err := json.Marshal(scene)
	if err != nil {
		return "", fmt.Errorf("serialize scene for cache key: %w", err)
	}
	return cache.Hash(data), nil
}
