package floorplan

import (
	"github.com/stitchline/stitchline/pkg/plan"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Lane identifies one of the four fixed parallel paths on the floor.
type Lane string

// The four lanes, paired {A,B} and {C,D} across two aisles.
const (
	LaneA Lane = "A"
	LaneB Lane = "B"
	LaneC Lane = "C"
	LaneD Lane = "D"
)

// Lanes lists all lanes in canonical order.
var Lanes = []Lane{LaneA, LaneB, LaneC, LaneD}

// Valid reports whether l is one of the four fixed lanes.
func (l Lane) Valid() bool {
	switch l {
	case LaneA, LaneB, LaneC, LaneD:
		return true
	}
	return false
}

// Kind is the tagged variant discriminator for placed entities.
type Kind string

// Entity kinds. Machines come from balanced operations; everything else is a
// fixture inserted by placement policy.
const (
	KindMachine    Kind = "machine"
	KindBoard      Kind = "board"
	KindInspection Kind = "inspection"
	KindTrolley    Kind = "trolley"
	KindCabinet    Kind = "cabinet"
)

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindMachine, KindBoard, KindInspection, KindTrolley, KindCabinet:
		return true
	}
	return false
}

// FixtureSeq is the sequence-index sentinel for non-machine entities.
const FixtureSeq = -1

// =============================================================================
// Vec3 - Floor Coordinates
// =============================================================================

// Vec3 is a 3D vector. Used for both positions (metres) and rotations
// (degrees).
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// =============================================================================
// Entity - Unified Placed Entity Type
// =============================================================================

// Entity is one placed object on the floor: a machine station or a fixture.
// Created once per generation call and immutable thereafter.
type Entity struct {
	// ID is unique within a plan. It carries a random component, so two
	// generations of the same input differ only in IDs.
	ID string `json:"id" bson:"id"`

	// Kind discriminates machines from policy fixtures.
	Kind Kind `json:"kind" bson:"kind"`

	// Lane the entity is assigned to. Boards and cabinets sit centred over
	// their lane group and carry the group's inner lane.
	Lane Lane `json:"lane" bson:"lane"`

	// Position on the floor: X along-line, Y height, Z across-line.
	Position Vec3 `json:"position" bson:"position"`

	// Rotation in degrees; only Y (yaw) is ever non-zero.
	Rotation Vec3 `json:"rotation" bson:"rotation"`

	// Section is the garment section this entity belongs to.
	Section string `json:"section" bson:"section"`

	// Seq is the instance ordinal within its operation's run, or FixtureSeq
	// for fixtures.
	Seq int `json:"seq" bson:"seq"`

	// Operation is the source operation. Machines only; nil for fixtures.
	Operation *plan.Operation `json:"operation,omitempty" bson:"operation,omitempty"`
}

// IsMachine returns true for production stations derived from operations.
func (e *Entity) IsMachine() bool { return e.Kind == KindMachine }

// IsFixture returns true for policy-inserted entities (boards, inspection
// tables, trolleys, cabinets).
func (e *Entity) IsFixture() bool { return e.Kind != KindMachine }

// Label returns a short display label for the entity.
func (e *Entity) Label() string {
	if e.IsMachine() && e.Operation != nil {
		if e.Operation.Name != "" {
			return e.Operation.Name
		}
		return e.Operation.OpNo
	}
	return string(e.Kind)
}
