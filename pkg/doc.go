// Package pkg provides the core libraries for Stitchline floor planning.
//
// # Overview
//
// Stitchline turns garment operation bulletins into balanced, spatially
// placed sewing-line floor plans. The pkg directory is organized into four
// main areas:
//
//  1. [plan] - Bulletin decoding, capacity balancing, section grouping
//  2. [floor] - Deterministic 4-lane spatial placement
//  3. [floorplan] / [flowchart] - Output types and diagram rendering
//  4. [pipeline] - Orchestration (balance → place → render) with caching
//
// # Architecture
//
// The typical data flow through Stitchline:
//
//	Operation Bulletin (JSON/YAML)
//	         ↓
//	    [plan] package (balance against demand, group by section)
//	         ↓
//	    [floor] package (lane assignment, machine and fixture placement)
//	         ↓
//	    [floorplan] package (plan JSON) / [flowchart] package (DOT, SVG, PNG)
//
// # Quick Start
//
// Balance a bulletin and place the floor plan:
//
//	import (
//	    "github.com/stitchline/stitchline/pkg/floor"
//	    "github.com/stitchline/stitchline/pkg/plan"
//	)
//
//	// 1. Read and balance
//	b, _ := plan.ReadBulletinFile("bulletin.json")
//	balanced, _ := plan.Balance(b.Operations, plan.Demand{
//	    TargetPerDay:   960,
//	    WorkingMinutes: 480,
//	})
//
//	// 2. Place onto the floor
//	g := floor.DefaultGeometry()
//	entities := floor.PlaceSections(plan.GroupBySection(balanced), g)
//
// # Main Packages
//
// ## Domain Logic
//
// [plan] - Operation bulletins (JSON and YAML), demand targets and takt
// computation, per-operation machine counts, and ordered section grouping.
//
// [floor] - Spatial placement: section classification onto lane pairs,
// alternating lane cursors, fixture insertion (boards, inspection tables,
// trolleys, supermarket cabinet), and the assembly round-robin. Geometry
// constants load from TOML via [floor.LoadGeometryFile].
//
// [floorplan] - The placed-entity model and plan serialization, including
// structural validation of deserialized plans.
//
// [flowchart] - Line-flow diagrams: DOT generation from balanced sections
// and in-process SVG/PNG rendering via Graphviz.
//
// ## Orchestration
//
// [pipeline] - Complete planning pipeline (balance → place → render) used
// by CLI and API. Ensures consistent behavior across all entry points and
// caches each stage independently.
//
// [cache] - Cache backends (file, Redis, MongoDB, null) and stage-scoped
// key derivation.
//
// ## Shared
//
// [errors] - Coded errors with user-facing messages, shared by CLI exit
// handling and API status mapping.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/floor/...     # Specific package
//
// [plan]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/plan
// [floor]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/floor
// [floor.LoadGeometryFile]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/floor#LoadGeometryFile
// [floorplan]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/floorplan
// [flowchart]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/flowchart
// [pipeline]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/cache
// [errors]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/stitchline/stitchline/pkg/buildinfo
package pkg
