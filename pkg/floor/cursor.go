package floor

import (
	"github.com/stitchline/stitchline/pkg/floorplan"
)

// lanePair groups two facing lanes. First is the pair's inner lane, which
// anchors the shared end-of-section fixtures.
type lanePair struct {
	first, second floorplan.Lane
}

var (
	pairAB = lanePair{floorplan.LaneA, floorplan.LaneB}
	pairCD = lanePair{floorplan.LaneC, floorplan.LaneD}
)

// cursors is the per-lane "next free along-line offset" state, monotonically
// non-decreasing within one generation. It is a plain value passed and
// returned explicitly, so concurrent generations never share state.
type cursors struct {
	a, b, c, d float64
}

// at returns the cursor of a lane.
func (c cursors) at(l floorplan.Lane) float64 {
	switch l {
	case floorplan.LaneA:
		return c.a
	case floorplan.LaneB:
		return c.b
	case floorplan.LaneC:
		return c.c
	default:
		return c.d
	}
}

// with returns a copy of the cursors with one lane moved to x.
func (c cursors) with(l floorplan.Lane, x float64) cursors {
	switch l {
	case floorplan.LaneA:
		c.a = x
	case floorplan.LaneB:
		c.b = x
	case floorplan.LaneC:
		c.c = x
	default:
		c.d = x
	}
	return c
}

// pairMax returns the furthest-advanced cursor of a lane pair.
func (c cursors) pairMax(p lanePair) float64 {
	return max(c.at(p.first), c.at(p.second))
}

// max returns the furthest-advanced cursor of all four lanes.
func (c cursors) max() float64 {
	return max(max(c.a, c.b), max(c.c, c.d))
}
