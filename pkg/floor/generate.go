package floor

import (
	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/plan"
)

// Generate is the published entry point: it balances the operation list
// against the demand, groups the result by section and places every machine
// instance and fixture onto the floor.
//
// Generate is pure and deterministic (entity identifiers aside). A
// precondition failure - invalid demand, malformed operation, unusable
// geometry - aborts the whole call with no partial layout. An empty
// operation list yields an empty plan, not an error.
func Generate(ops []plan.Operation, demand plan.Demand, g Geometry) (floorplan.Plan, error) {
	if err := g.Validate(); err != nil {
		return floorplan.Plan{}, err
	}

	balanced, err := plan.Balance(ops, demand)
	if err != nil {
		return floorplan.Plan{}, err
	}

	groups := plan.GroupBySection(balanced)

	return floorplan.Plan{
		Demand:   demand,
		Takt:     demand.Takt(),
		Entities: PlaceSections(groups, g),
	}, nil
}
