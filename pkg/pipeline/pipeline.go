// Package pipeline provides the core planning pipeline for Stitchline.
//
// This package implements the complete balance → place → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Balance: Load the operation bulletin and size machine allocations
//     against the demand target
//  2. Place: Lay every machine instance and fixture onto the four-lane
//     floor topology
//  3. Render: Generate output artifacts (plan JSON, flow DOT/SVG/PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    BulletinPath: "shirt.yaml",
//	    TargetPerDay: 960,
//	    Formats:      []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	planJSON := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Balance only
//	b, balanced, err := runner.Balance(ctx, opts)
//
//	// Place with existing balancing result
//	p, err := runner.Place(ctx, b, balanced, opts)
//
//	// Render with existing plan
//	artifacts, err := runner.Render(ctx, p, balanced, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stitchline/stitchline/pkg/cache"
	"github.com/stitchline/stitchline/pkg/floor"
	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWorkingMinutes is the net working time per day used when the
	// bulletin and the caller both leave it unset.
	DefaultWorkingMinutes = 480.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Balance options
	BulletinPath   string  `json:"bulletin_path,omitempty"`
	Bulletin       string  `json:"bulletin,omitempty"`        // Inline bulletin content
	BulletinFormat string  `json:"bulletin_format,omitempty"` // Required with inline content
	Style          string  `json:"style,omitempty"`           // Product style number
	TargetPerDay   int     `json:"target_per_day,omitempty"`
	WorkingMinutes float64 `json:"working_minutes,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Place options
	GeometryPath string          `json:"geometry_path,omitempty"`
	Geometry     *floor.Geometry `json:"-"` // Pre-loaded geometry (overrides GeometryPath)

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Include SMV in flow diagram labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Bulletin is the loaded operation bulletin.
	Bulletin *plan.Bulletin

	// Balanced is the machine-sized operation list.
	Balanced []plan.BalancedOperation

	// Plan is the placed floor plan.
	Plan floorplan.Plan

	// PlanHash is the content hash of the floor plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	OperationCount int
	MachineCount   int
	FixtureCount   int
	BalanceTime    time.Duration
	PlaceTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BalanceHit bool // Whether the balancing result came from cache
	PlaceHit   bool // Whether the floor plan came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBalance(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBalance checks required fields for the balancing stage.
//
// Demand completeness is not checked here: the bulletin file may carry its
// own demand block, so the merged demand is validated inside Balance.
func (o *Options) ValidateForBalance() error {
	if o.BulletinPath == "" && o.Bulletin == "" {
		return fmt.Errorf("bulletin_path or bulletin is required")
	}
	if o.Bulletin != "" && o.BulletinFormat == "" {
		return fmt.Errorf("bulletin_format is required with inline bulletin content")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Demand merges the caller's demand fields with the bulletin's demand
// block. Explicit options win over the bulletin; working minutes default
// to a full shift.
func (o *Options) Demand(b *plan.Bulletin) plan.Demand {
	d := plan.Demand{
		TargetPerDay:   float64(o.TargetPerDay),
		WorkingMinutes: o.WorkingMinutes,
	}
	if b != nil && b.Demand != nil {
		if d.TargetPerDay == 0 {
			d.TargetPerDay = b.Demand.TargetPerDay
		}
		if d.WorkingMinutes == 0 {
			d.WorkingMinutes = b.Demand.WorkingMinutes
		}
	}
	if d.WorkingMinutes == 0 {
		d.WorkingMinutes = DefaultWorkingMinutes
	}
	return d
}

// BalanceKeyOpts returns cache key options for the balancing stage.
func (o *Options) BalanceKeyOpts(d plan.Demand) cache.BalanceKeyOpts {
	return cache.BalanceKeyOpts{
		TargetPerDay:   d.TargetPerDay,
		WorkingMinutes: d.WorkingMinutes,
	}
}

// LayoutKeyOpts returns cache key options for the placement stage.
func (o *Options) LayoutKeyOpts(g floor.Geometry) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		GeometryHash: geometryHash(g),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
}
