package plan

import (
	"math"

	"github.com/stitchline/stitchline/pkg/errors"
)

// Demand is a daily production target.
type Demand struct {
	// TargetPerDay is the required output in units per day.
	TargetPerDay float64 `json:"target_per_day" yaml:"target_per_day" bson:"target_per_day"`

	// WorkingMinutes is the available working time per day in minutes.
	WorkingMinutes float64 `json:"working_minutes" yaml:"working_minutes" bson:"working_minutes"`
}

// Validate checks that both demand values are positive.
func (d Demand) Validate() error {
	if d.TargetPerDay <= 0 {
		return errors.New(errors.ErrCodeInvalidDemand, "target output must be positive, got %g", d.TargetPerDay)
	}
	if d.WorkingMinutes <= 0 {
		return errors.New(errors.ErrCodeInvalidDemand, "working minutes must be positive, got %g", d.WorkingMinutes)
	}
	return nil
}

// Takt returns the per-unit time budget in minutes.
func (d Demand) Takt() float64 {
	return d.WorkingMinutes / d.TargetPerDay
}

// Balance sizes the machine count for every operation against the demand.
//
// The result preserves input order and contains every input operation; the
// machine count is ceil(SMV / takt), but never below one - a station must
// exist even without timing data.
//
// Balance fails with INVALID_DEMAND when either demand value is not positive
// and with MALFORMED_OPERATION when an operation is missing required fields.
// On failure no partial result is returned.
func Balance(ops []Operation, demand Demand) ([]BalancedOperation, error) {
	if err := demand.Validate(); err != nil {
		return nil, err
	}

	balanced := make([]BalancedOperation, 0, len(ops))
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}
		balanced = append(balanced, BalancedOperation{
			Operation: op,
			Machines:  machinesFor(op.SMV, demand),
		})
	}
	return balanced, nil
}

// machinesFor computes ceil(smv × target / workingMinutes) with a floor of 1.
func machinesFor(smv float64, d Demand) int {
	n := int(math.Ceil(smv * d.TargetPerDay / d.WorkingMinutes))
	if n < 1 {
		return 1
	}
	return n
}

// Utilization returns how much of the station capacity an operation consumes:
// SMV / (machines × takt). A value near 1.0 means the stations run flat out;
// values well below 1.0 indicate slack introduced by the ceiling.
func Utilization(b BalancedOperation, d Demand) float64 {
	takt := d.Takt()
	if takt <= 0 || b.Machines == 0 {
		return 0
	}
	return b.Operation.SMV / (float64(b.Machines) * takt)
}

// TotalMachines sums the machine counts of a balanced plan.
func TotalMachines(balanced []BalancedOperation) int {
	total := 0
	for _, b := range balanced {
		total += b.Machines
	}
	return total
}
