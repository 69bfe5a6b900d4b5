// Package floor places balanced operations into the fixed four-lane floor
// topology of a sewing line.
//
// # Physical Model
//
// Four parallel lanes (A, B, C, D) run along the direction of garment flow,
// paired into groups {A,B} and {C,D}. Paired lanes face each other across a
// narrow aisle so operators can pass work directly. Pressing, ironing and
// inspection stations are the exception: they are read from one side only and
// always face the canonical front direction.
//
// Parts-preparation sections occupy one lane pair each (which pair is decided
// by an ordered keyword table over the section label); the assembly section
// spreads across all four lanes, with the main flow running as three parallel
// sub-lines on A, B and C and buttoning work isolated on lane D.
//
// Between sections the placer inserts policy fixtures: an elevated section
// board at each section start, an inspection table and a material trolley at
// each section end, and a supermarket cabinet between the last preparation
// section and assembly.
//
// # Determinism
//
// Placement is a pure function of the operation list and the geometry
// configuration: iteration follows first-seen input order and no randomness
// affects positions. Only entity identifiers carry a random component. The
// per-lane cursor state is an explicit value threaded through the placement
// functions, so concurrent generations never share state.
package floor
