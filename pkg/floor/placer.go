package floor

import (
	"github.com/google/uuid"

	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/plan"
)

// PlaceSections walks the grouped sections in order and emits every machine
// and fixture with its final floor position.
//
// Parts-preparation sections alternate operations across their lane pair;
// the assembly section spreads across all four lanes. See the package
// documentation for the full topology.
func PlaceSections(groups []plan.SectionGroup, g Geometry) []floorplan.Entity {
	entities := make([]floorplan.Entity, 0)
	cur := cursors{}
	prepPlaced := false
	cabinetPlaced := false

	for _, grp := range groups {
		var ents []floorplan.Entity
		switch ClassifySection(grp.Section) {
		case SectionAssembly:
			withCabinet := g.SupermarketCabinet && prepPlaced && !cabinetPlaced
			cur, ents = placeAssembly(g, cur, grp, withCabinet)
			if withCabinet {
				cabinetPlaced = true
			}
		case SectionCD:
			cur, ents = placePairSection(g, cur, grp, pairCD)
			prepPlaced = true
		default:
			cur, ents = placePairSection(g, cur, grp, pairAB)
			prepPlaced = true
		}
		entities = append(entities, ents...)
	}
	return entities
}

// placePairSection lays one parts-preparation section onto a lane pair.
//
// Both lane cursors first synchronize to max(pair)+sectionGap so the section
// starts flush across the aisle. Operations then alternate lanes (the whole
// run of one operation stays in one lane); each lane cursor advances
// independently by count×pitch. The section closes with an inspection table
// and a material trolley anchored off the inner lane, and both cursors
// advance past them.
func placePairSection(g Geometry, cur cursors, grp plan.SectionGroup, pair lanePair) (cursors, []floorplan.Entity) {
	start := cur.pairMax(pair) + g.SectionGap

	boardZ := (g.LaneOffset(pair.first) + g.LaneOffset(pair.second)) / 2
	ents := []floorplan.Entity{
		fixtureEntity(floorplan.KindBoard, grp.Section, pair.first,
			floorplan.Vec3{X: start, Y: g.BoardHeight, Z: boardZ}, g.Yaw.Front),
	}

	start += g.BoardClearance
	cur = cur.with(pair.first, start).with(pair.second, start)

	for i, b := range grp.Operations {
		lane := pair.first
		if i%2 == 1 {
			lane = pair.second
		}
		x := cur.at(lane)
		for j := 0; j < b.Machines; j++ {
			ents = append(ents, machineEntity(g, b.Operation, grp.Section, lane,
				x+float64(j)*g.MachinePitch, j))
		}
		cur = cur.with(lane, x+float64(b.Machines)*g.MachinePitch)
	}

	// Shared end-of-section fixtures, offset across-line from the inner lane.
	end := cur.pairMax(pair)
	innerZ := g.LaneOffset(pair.first)
	ents = append(ents, fixtureEntity(floorplan.KindInspection, grp.Section, pair.first,
		floorplan.Vec3{X: end, Z: innerZ - g.InspectionOffset}, g.Yaw.Front))
	end += g.InspectionAdvance
	ents = append(ents, fixtureEntity(floorplan.KindTrolley, grp.Section, pair.first,
		floorplan.Vec3{X: end, Z: innerZ - g.TrolleyOffset}, g.Yaw.Front))
	end += g.TrolleyAdvance

	cur = cur.with(pair.first, end).with(pair.second, end)
	return cur, ents
}

// placeAssembly lays the assembly section across all four lanes.
//
// Main operations run as three parallel identical sub-lines on A, B and C:
// machine instances go round-robin across those lanes (index mod 3 picks the
// lane, index div 3 the row), all facing front since the sub-lines assemble
// complete garments rather than passing work across an aisle. Buttoning
// operations are isolated sequentially on lane D. Afterwards all four
// cursors resynchronize to the furthest-advanced sub-flow.
func placeAssembly(g Geometry, cur cursors, grp plan.SectionGroup, withCabinet bool) (cursors, []floorplan.Entity) {
	start := cur.max() + g.SectionGap
	centerZ := (g.Lanes.A + g.Lanes.D) / 2

	ents := make([]floorplan.Entity, 0)
	if withCabinet {
		ents = append(ents, fixtureEntity(floorplan.KindCabinet, grp.Section, floorplan.LaneA,
			floorplan.Vec3{X: start, Z: centerZ}, g.Yaw.Front))
		start += g.CabinetClearance
	}

	ents = append(ents, fixtureEntity(floorplan.KindBoard, grp.Section, floorplan.LaneA,
		floorplan.Vec3{X: start, Y: g.BoardHeight, Z: centerZ}, g.Yaw.Front))
	start += g.BoardClearance

	mainLanes := []floorplan.Lane{floorplan.LaneA, floorplan.LaneB, floorplan.LaneC}
	mainIdx := 0
	btnIdx := 0

	for _, b := range grp.Operations {
		if IsButtoning(b.Operation) {
			for j := 0; j < b.Machines; j++ {
				e := machineEntity(g, b.Operation, grp.Section, floorplan.LaneD,
					start+float64(btnIdx)*g.MachinePitch, j)
				e.Rotation.Y = g.Yaw.Front
				ents = append(ents, e)
				btnIdx++
			}
			continue
		}
		for j := 0; j < b.Machines; j++ {
			lane := mainLanes[mainIdx%len(mainLanes)]
			row := mainIdx / len(mainLanes)
			e := machineEntity(g, b.Operation, grp.Section, lane,
				start+float64(row)*g.MachinePitch, j)
			e.Rotation.Y = g.Yaw.Front
			ents = append(ents, e)
			mainIdx++
		}
	}

	mainRows := (mainIdx + len(mainLanes) - 1) / len(mainLanes)
	end := max(start+float64(mainRows)*g.MachinePitch, start+float64(btnIdx)*g.MachinePitch)
	return cursors{a: end, b: end, c: end, d: end}, ents
}

// machineEntity builds one placed machine instance. seq is the run-local
// ordinal within the operation's machine group.
func machineEntity(g Geometry, op plan.Operation, section string, lane floorplan.Lane, x float64, seq int) floorplan.Entity {
	src := op
	return floorplan.Entity{
		ID:        uuid.NewString(),
		Kind:      floorplan.KindMachine,
		Lane:      lane,
		Position:  floorplan.Vec3{X: x, Z: g.LaneOffset(lane)},
		Rotation:  floorplan.Vec3{Y: yawFor(g, op.MachineType, lane)},
		Section:   section,
		Seq:       seq,
		Operation: &src,
	}
}

// fixtureEntity builds one policy fixture.
func fixtureEntity(kind floorplan.Kind, section string, lane floorplan.Lane, pos floorplan.Vec3, yaw float64) floorplan.Entity {
	return floorplan.Entity{
		ID:       uuid.NewString(),
		Kind:     kind,
		Lane:     lane,
		Position: pos,
		Rotation: floorplan.Vec3{Y: yaw},
		Section:  section,
		Seq:      floorplan.FixtureSeq,
	}
}
