// Package floorplan defines the serialization contract between layout
// generation and its consumers (visualization, persistence, API clients).
//
// The contract is a flat list of placed entities with 3D coordinates inside
// a [Plan]. Consumers must not assume any ordering beyond "stable for a given
// input", and must not treat fixture entities (boards, inspection tables,
// trolleys, cabinets) as production stations: fixtures are a separate tagged
// kind, not machines with dummy operation data.
//
// # Coordinate System
//
// Positions are metres on the factory floor:
//   - X: along-line offset (direction of garment flow)
//   - Y: height above the floor (only section boards are elevated)
//   - Z: across-line offset (which lane)
//
// Rotations are Euler angles in degrees; only yaw (rotation about Y) is ever
// non-zero.
//
// # Serialization
//
// The format is JSON with BSON tags for document-store caching:
//
//	data, err := floorplan.Marshal(p)
//	p, err := floorplan.ReadFile("plan.json")
//	err := floorplan.WriteFile(p, "plan.json")
//
// Round-trip fidelity is guaranteed: write → read produces an identical plan.
package floorplan
