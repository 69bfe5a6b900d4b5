package plan

import (
	"github.com/stitchline/stitchline/pkg/errors"
)

// DefaultSection is the bucket for operations without a section label.
const DefaultSection = "Unknown"

// Operation is one manufacturing operation from the normalized operation
// list. Produced by the ingestion collaborator; never mutated here.
type Operation struct {
	// OpNo is the operation identifier from the operation bulletin.
	OpNo string `json:"op_no" yaml:"op_no" bson:"op_no"`

	// Name is the human-readable operation description.
	Name string `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`

	// MachineType is a free-text machine class label (e.g. "SNLS", "Overlock",
	// "Iron"). Never validated against a closed vocabulary.
	MachineType string `json:"machine_type" yaml:"machine_type" bson:"machine_type"`

	// SMV is the standard minute value: minutes one unit spends at this
	// operation. Zero means no timing data.
	SMV float64 `json:"smv" yaml:"smv" bson:"smv"`

	// Section is the garment-construction grouping (e.g. "Collar", "Cuff",
	// "Assembly"). May be empty; defaulting is the planner's responsibility.
	Section string `json:"section,omitempty" yaml:"section,omitempty" bson:"section,omitempty"`
}

// Validate checks the fields the ingestion boundary guarantees. It exists so
// a malformed operation fails loudly here instead of producing an undefined
// layout downstream.
func (op Operation) Validate() error {
	if err := errors.ValidateOperationName(op.OpNo); err != nil {
		return err
	}
	if op.MachineType == "" {
		return errors.New(errors.ErrCodeMalformedOp, "operation %s has no machine type", op.OpNo)
	}
	if op.SMV < 0 {
		return errors.New(errors.ErrCodeMalformedOp, "operation %s has negative SMV %g", op.OpNo, op.SMV)
	}
	return nil
}

// BalancedOperation pairs an operation with its required machine count.
// Transient: recomputed per layout generation, never persisted independently.
type BalancedOperation struct {
	Operation Operation `json:"operation" yaml:"operation" bson:"operation"`

	// Machines is the number of parallel stations this operation needs to
	// keep up with takt time. Always >= 1.
	Machines int `json:"machines" yaml:"machines" bson:"machines"`
}
