package floor

import (
	"strings"

	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/plan"
)

// =============================================================================
// Section Classification
// =============================================================================

// SectionClass decides which lanes a section occupies.
type SectionClass string

// Section classes. AB and CD sections each occupy one lane pair; the
// assembly section spreads across all four lanes.
const (
	SectionAB       SectionClass = "ab"
	SectionCD       SectionClass = "cd"
	SectionAssembly SectionClass = "assembly"
)

// sectionRule maps a section-label keyword to a class. Rules are evaluated
// in order; the first match wins, which makes precedence auditable (assembly
// keywords must outrank part keywords that could co-occur in a label like
// "Front assembly").
type sectionRule struct {
	keyword string
	class   SectionClass
}

var sectionRules = []sectionRule{
	{"assembly", SectionAssembly},
	{"assemble", SectionAssembly},
	{"front", SectionCD},
	{"back", SectionCD},
	{"yoke", SectionCD},
	{"pocket", SectionCD},
	{"panel", SectionCD},
	{"collar", SectionAB},
	{"cuff", SectionAB},
	{"sleeve", SectionAB},
	{"placket", SectionAB},
}

// ClassifySection maps a section label to its lane class using
// case-insensitive substring matching. Unmatched labels default to AB, so an
// unrecognized section still gets a deterministic home.
func ClassifySection(label string) SectionClass {
	lower := strings.ToLower(label)
	for _, r := range sectionRules {
		if strings.Contains(lower, r.keyword) {
			return r.class
		}
	}
	return SectionAB
}

// =============================================================================
// Machine Facing
// =============================================================================

// frontFacingTypes lists machine-type keywords whose stations are read from
// one side only and therefore always face front, regardless of lane.
// Evaluated in order, first match wins.
var frontFacingTypes = []string{
	"iron",
	"press",
	"inspect",
}

// ForcesFront reports whether a machine type always faces the canonical
// front direction. Free-text matching; unmatched types fall back to the
// generic lane facing.
func ForcesFront(machineType string) bool {
	lower := strings.ToLower(machineType)
	for _, kw := range frontFacingTypes {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// yawFor resolves the facing of one machine instance.
func yawFor(g Geometry, machineType string, lane floorplan.Lane) float64 {
	if ForcesFront(machineType) {
		return g.Yaw.Front
	}
	return g.LaneYaw(lane)
}

// =============================================================================
// Buttoning Split
// =============================================================================

// IsButtoning reports whether an assembly operation belongs to the buttoning
// sub-flow (isolated on lane D). Matches the machine type or the operation
// name, case-insensitively.
func IsButtoning(op plan.Operation) bool {
	if strings.Contains(strings.ToLower(op.MachineType), "button") {
		return true
	}
	return strings.Contains(strings.ToLower(op.Name), "button")
}
