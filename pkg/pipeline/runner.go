package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/extract"
	"github.com/laneflow/laneflow/pkg/observability"
	"github.com/laneflow/laneflow/pkg/process"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete extract → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Extract
	hooks.OnExtractStart(ctx, opts.Mode(), opts.Model)
	extractStart := time.Now()
	res, extractHit, err := r.ExtractWithCacheInfo(ctx, opts)
	if err != nil {
		hooks.OnExtractComplete(ctx, opts.Mode(), opts.Model, 0, time.Since(extractStart), err)
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Process = res.Process
	result.Warnings = append(result.Warnings, res.Warnings...)
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.NodeCount = len(res.Process.Nodes)
	result.Stats.EdgeCount = len(res.Process.Edges)
	result.CacheInfo.ExtractHit = extractHit
	hooks.OnExtractComplete(ctx, opts.Mode(), opts.Model, result.Stats.NodeCount, result.Stats.ExtractTime, nil)

	// Compute process hash for cache keys and API responses
	if data, err := process.MarshalCanonical(res.Process); err == nil {
		result.ProcessHash = cache.Hash(data)
	}

	r.Logger.Info("extracted process",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ExtractTime)

	// Stage 2: Layout
	hooks.OnLayoutStart(ctx, diagram.TypeProcess, result.Stats.NodeCount)
	layoutStart := time.Now()
	d, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, res.Process, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, diagram.TypeProcess, time.Since(layoutStart), err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	hooks.OnLayoutComplete(ctx, diagram.TypeProcess, result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"elements", len(d.Elements),
		"lanes", len(d.Lanes),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, res.Process, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExtractWithCacheInfo extracts a process with caching and returns cache hit info.
func (r *Runner) ExtractWithCacheInfo(ctx context.Context, opts Options) (*extract.Result, bool, error) {
	if err := opts.ValidateForExtract(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key. File sources are keyed by content, so editing
	// the file invalidates prior extractions.
	doc := []byte(opts.Markdown)
	if opts.File != "" && opts.Markdown == "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", opts.File, err)
		}
		doc = data
	}
	cacheKey := r.Keyer.ExtractKey(cache.Hash(doc), opts.ExtractKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			p, err := process.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "extract")
				return &extract.Result{Process: p}, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "extract")

	// Extract
	res, err := Extract(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the canonical process. Warnings are not stored: they were
	// already surfaced on the run that produced them.
	if data, err := process.MarshalCanonical(res.Process); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLExtract)
		observability.Cache().OnCacheSet(ctx, "extract", len(data))
	}

	return res, false, nil // Cache miss
}

// Extract is a convenience wrapper that calls ExtractWithCacheInfo and discards the cache hit info.
func (r *Runner) Extract(ctx context.Context, opts Options) (*extract.Result, error) {
	res, _, err := r.ExtractWithCacheInfo(ctx, opts)
	return res, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, p *process.Process, opts Options) (diagram.Diagram, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Diagram{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	data, _ := process.MarshalCanonical(p)
	processHash := cache.Hash(data)
	cacheKey := r.Keyer.LayoutKey(processHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := diagram.UnmarshalDiagram(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Compute layout
	d, lres, err := ComputeLayout(p, opts)
	if err != nil {
		return diagram.Diagram{}, false, err
	}
	for _, e := range lres.Skipped {
		opts.Logger.Warn("edge references an unknown node; left off the diagram",
			"from", e.From, "to", e.To)
	}
	if lres.BackwardEdges > 0 {
		opts.Logger.Debug("rewrote backward edges into link pairs",
			"count", lres.BackwardEdges)
	}

	// Cache the result
	if out, err := diagram.MarshalDiagram(d); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, out, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(out))
	}

	return d, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, p *process.Process, opts Options) (diagram.Diagram, error) {
	d, _, err := r.ComputeLayoutWithCacheInfo(ctx, p, opts)
	return d, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, p *process.Process, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the diagram content
	diagramData, err := diagram.MarshalDiagram(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	diagramHash := cache.Hash(diagramData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(d, p, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d diagram.Diagram, p *process.Process, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, p, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
