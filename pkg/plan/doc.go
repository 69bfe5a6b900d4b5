// Package plan implements line balancing for sewing-line layout generation.
//
// Given a normalized operation list (produced upstream by spreadsheet
// ingestion) and a daily production target, the planner sizes the number of
// physical machines each operation needs so that no station becomes a
// bottleneck relative to the line's takt time, then groups the balanced
// operations by garment section for spatial placement.
//
// # Takt Time
//
// Takt time is the per-unit time budget the line must meet:
//
//	takt = workingMinutesPerDay / targetOutputPerDay
//
// An operation whose standard minute value (SMV) exceeds the takt time needs
// parallel machines:
//
//	machines = ceil(SMV / takt) = ceil(SMV × target / workingMinutes)
//
// Operations without timing data still get exactly one machine - a station
// must exist even when the SMV is unknown.
//
// # Usage
//
//	balanced, err := plan.Balance(ops, 480, 480)
//	if err != nil {
//	    return err
//	}
//	groups := plan.GroupBySection(balanced)
//
// Balance validates demand (both values must be positive) and rejects
// malformed operations at the boundary rather than propagating them into
// placement. Both functions are pure: input order is preserved and no
// operation is ever dropped or merged.
package plan
