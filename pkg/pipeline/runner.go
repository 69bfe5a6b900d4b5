package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stitchline/stitchline/pkg/cache"
	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/observability"
	"github.com/stitchline/stitchline/pkg/plan"
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

// Execute runs the complete balance → place → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Balance
	balanceStart := time.Now()
	b, balanced, balanceHit, err := r.BalanceWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	result.Bulletin = b
	result.Balanced = balanced
	result.Stats.BalanceTime = time.Since(balanceStart)
	result.Stats.OperationCount = len(balanced)
	result.Stats.MachineCount = plan.TotalMachines(balanced)
	result.CacheInfo.BalanceHit = balanceHit

	r.Logger.Info("balanced operations",
		"operations", len(balanced),
		"machines", result.Stats.MachineCount,
		"duration", result.Stats.BalanceTime)

	// Stage 2: Place
	placeStart := time.Now()
	p, placeHit, err := r.PlaceWithCacheInfo(ctx, b, balanced, opts)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	result.Plan = p
	result.Stats.PlaceTime = time.Since(placeStart)
	result.CacheInfo.PlaceHit = placeHit

	summary := p.Summarize()
	result.Stats.FixtureCount = summary.Fixtures

	// Hash the plan for cache keys and API responses
	if planData, err := floorplan.Marshal(p); err == nil {
		result.PlanHash = cache.Hash(planData)
	}

	r.Logger.Info("placed floor plan",
		"entities", len(p.Entities),
		"sections", summary.Sections,
		"duration", result.Stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, balanced, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BalanceWithCacheInfo balances with caching and returns cache hit info.
func (r *Runner) BalanceWithCacheInfo(ctx context.Context, opts Options) (*plan.Bulletin, []plan.BalancedOperation, bool, error) {
	if err := opts.ValidateForBalance(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	// The bulletin read is cheap; only the balancing result is cached.
	b, err := LoadBulletin(opts)
	if err != nil {
		return nil, nil, false, err
	}

	demand := opts.Demand(b)
	bulletinData, _ := json.Marshal(b)
	cacheKey := r.Keyer.BalanceKey(cache.Hash(bulletinData), opts.BalanceKeyOpts(demand))

	observability.Pipeline().OnBalanceStart(ctx, b.Style)
	start := time.Now()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var balanced []plan.BalancedOperation
			if err := json.Unmarshal(data, &balanced); err == nil {
				observability.Cache().OnCacheHit(ctx, "balance")
				observability.Pipeline().OnBalanceComplete(ctx, b.Style, len(balanced), time.Since(start), nil)
				return b, balanced, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "balance")
	}

	balanced, err := plan.Balance(b.Operations, demand)
	observability.Pipeline().OnBalanceComplete(ctx, b.Style, len(balanced), time.Since(start), err)
	if err != nil {
		return nil, nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(balanced); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLBalance)
		observability.Cache().OnCacheSet(ctx, "balance", len(data))
	}

	return b, balanced, false, nil // Cache miss
}

// Balance is a convenience wrapper that discards the cache hit info.
func (r *Runner) Balance(ctx context.Context, opts Options) (*plan.Bulletin, []plan.BalancedOperation, error) {
	b, balanced, _, err := r.BalanceWithCacheInfo(ctx, opts)
	return b, balanced, err
}

// PlaceWithCacheInfo places with caching and returns cache hit info.
func (r *Runner) PlaceWithCacheInfo(ctx context.Context, b *plan.Bulletin, balanced []plan.BalancedOperation, opts Options) (floorplan.Plan, bool, error) {
	r.applyLogger(&opts)

	g, err := resolveGeometry(opts)
	if err != nil {
		return floorplan.Plan{}, false, err
	}

	// Compute cache key
	balancedData, _ := json.Marshal(balanced)
	cacheKey := r.Keyer.LayoutKey(cache.Hash(balancedData), opts.LayoutKeyOpts(g))

	style := ""
	if b != nil {
		style = b.Style
	}
	observability.Pipeline().OnPlaceStart(ctx, style, len(balanced))
	start := time.Now()

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := floorplan.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				observability.Pipeline().OnPlaceComplete(ctx, style, len(cached.Entities), time.Since(start), nil)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	opts.Geometry = &g
	p, err := Place(b, balanced, opts)
	observability.Pipeline().OnPlaceComplete(ctx, style, len(p.Entities), time.Since(start), err)
	if err != nil {
		return floorplan.Plan{}, false, err
	}

	// Cache the result
	if data, err := floorplan.Marshal(p); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return p, false, nil // Cache miss
}

// Place is a convenience wrapper that discards the cache hit info.
func (r *Runner) Place(ctx context.Context, b *plan.Bulletin, balanced []plan.BalancedOperation, opts Options) (floorplan.Plan, error) {
	p, _, err := r.PlaceWithCacheInfo(ctx, b, balanced, opts)
	return p, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p floorplan.Plan, balanced []plan.BalancedOperation, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the plan
	planData, err := floorplan.Marshal(p)
	if err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	planHash := cache.Hash(planData)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := Render(p, balanced, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p floorplan.Plan, balanced []plan.BalancedOperation, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, balanced, opts)
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
