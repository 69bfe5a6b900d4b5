package pipeline

import (
	"encoding/json"

	"github.com/stitchline/stitchline/pkg/cache"
	"github.com/stitchline/stitchline/pkg/floor"
	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/plan"
)

// =============================================================================
// Placement
// =============================================================================

// Place lays a balanced operation list onto the floor.
// The balanced list is grouped by section and every machine instance and
// fixture receives its final position.
func Place(b *plan.Bulletin, balanced []plan.BalancedOperation, opts Options) (floorplan.Plan, error) {
	g, err := resolveGeometry(opts)
	if err != nil {
		return floorplan.Plan{}, err
	}
	if err := g.Validate(); err != nil {
		return floorplan.Plan{}, err
	}

	p := floorplan.Plan{
		Demand:   opts.Demand(b),
		Entities: floor.PlaceSections(plan.GroupBySection(balanced), g),
	}
	p.Takt = p.Demand.Takt()
	if b != nil {
		p.Style = b.Style
	}
	return p, nil
}

// resolveGeometry picks the geometry source: a pre-loaded struct wins,
// then a TOML file, then built-in defaults.
func resolveGeometry(opts Options) (floor.Geometry, error) {
	if opts.Geometry != nil {
		return *opts.Geometry, nil
	}
	if opts.GeometryPath != "" {
		return floor.LoadGeometryFile(opts.GeometryPath)
	}
	return floor.DefaultGeometry(), nil
}

// geometryHash hashes the effective geometry for cache keys.
func geometryHash(g floor.Geometry) string {
	data, _ := json.Marshal(g)
	return cache.Hash(data)
}
