package floorplan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stitchline/stitchline/pkg/plan"
)

// =============================================================================
// Plan - Layout Serialization Format
// =============================================================================

// Plan is the canonical serialization format for a generated floor layout.
// Used for file output, API responses and caching.
type Plan struct {
	// Style optionally names the garment style the layout was generated for.
	Style string `json:"style,omitempty" bson:"style,omitempty"`

	// Demand is the production target the layout was balanced against.
	Demand plan.Demand `json:"demand" bson:"demand"`

	// Takt is the derived per-unit time budget in minutes.
	Takt float64 `json:"takt" bson:"takt"`

	// Entities is the flat list of placed machines and fixtures, in
	// placement order.
	Entities []Entity `json:"entities" bson:"entities"`
}

// =============================================================================
// Summary - Derived Counts
// =============================================================================

// Summary holds derived counts for display and stats.
type Summary struct {
	Machines int
	Fixtures int
	Sections int
	PerLane  map[Lane]int // machine count per lane
}

// Summarize computes entity counts for the plan.
func (p *Plan) Summarize() Summary {
	s := Summary{PerLane: make(map[Lane]int, len(Lanes))}
	sections := make(map[string]struct{})
	for i := range p.Entities {
		e := &p.Entities[i]
		sections[e.Section] = struct{}{}
		if e.IsMachine() {
			s.Machines++
			s.PerLane[e.Lane]++
		} else {
			s.Fixtures++
		}
	}
	s.Sections = len(sections)
	return s
}

// Validate checks structural invariants of a deserialized plan.
func (p *Plan) Validate() error {
	seen := make(map[string]struct{}, len(p.Entities))
	for i := range p.Entities {
		e := &p.Entities[i]
		if e.ID == "" {
			return fmt.Errorf("entity %d has no id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate entity id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		if !e.Kind.Valid() {
			return fmt.Errorf("entity %s has unknown kind %q", e.ID, e.Kind)
		}
		if !e.Lane.Valid() {
			return fmt.Errorf("entity %s has unknown lane %q", e.ID, e.Lane)
		}
		if e.IsMachine() {
			if e.Operation == nil {
				return fmt.Errorf("machine %s has no source operation", e.ID)
			}
			if e.Seq < 0 {
				return fmt.Errorf("machine %s has fixture sequence index", e.ID)
			}
		} else if e.Seq != FixtureSeq {
			return fmt.Errorf("fixture %s has sequence index %d, want %d", e.ID, e.Seq, FixtureSeq)
		}
	}
	return nil
}

// =============================================================================
// Plan Serialization API
// =============================================================================

// Marshal serializes a Plan to pretty-printed JSON bytes.
func Marshal(p Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Plan and validates it.
func Unmarshal(data []byte) (Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("invalid plan: %w", err)
	}
	return p, nil
}

// WriteFile writes a Plan to a JSON file.
func WriteFile(p Plan, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Plan from a JSON file.
func ReadFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
