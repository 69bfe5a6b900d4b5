package plan

import (
	"testing"

	"github.com/stitchline/stitchline/pkg/errors"
)

func TestBalanceMachineCounts(t *testing.T) {
	demand := Demand{TargetPerDay: 480, WorkingMinutes: 480} // takt = 1.0

	tests := []struct {
		name string
		smv  float64
		want int
	}{
		{"smv equals takt", 1.0, 1},
		{"smv below takt", 0.5, 1},
		{"smv double takt", 2.0, 2},
		{"smv just above takt", 1.01, 2},
		{"zero smv still needs a station", 0, 1},
		{"large smv", 7.3, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := []Operation{{OpNo: "1", MachineType: "SNLS", SMV: tt.smv, Section: "Cuff"}}
			balanced, err := Balance(ops, demand)
			if err != nil {
				t.Fatalf("Balance error: %v", err)
			}
			if got := balanced[0].Machines; got != tt.want {
				t.Errorf("Machines = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBalanceNonUnitTakt(t *testing.T) {
	// takt = 420/600 = 0.7 min; smv 1.5 needs ceil(1.5/0.7) = 3 machines
	demand := Demand{TargetPerDay: 600, WorkingMinutes: 420}
	ops := []Operation{{OpNo: "1", MachineType: "SNLS", SMV: 1.5}}

	balanced, err := Balance(ops, demand)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if balanced[0].Machines != 3 {
		t.Errorf("Machines = %d, want 3", balanced[0].Machines)
	}
}

func TestBalancePreservesOrder(t *testing.T) {
	demand := Demand{TargetPerDay: 480, WorkingMinutes: 480}
	ops := []Operation{
		{OpNo: "30", MachineType: "Overlock", SMV: 0.8, Section: "Sleeve"},
		{OpNo: "10", MachineType: "SNLS", SMV: 1.2, Section: "Collar"},
		{OpNo: "20", MachineType: "DNLS", SMV: 0.4, Section: "Collar"},
	}

	balanced, err := Balance(ops, demand)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if len(balanced) != len(ops) {
		t.Fatalf("len = %d, want %d", len(balanced), len(ops))
	}
	for i := range ops {
		if balanced[i].Operation.OpNo != ops[i].OpNo {
			t.Errorf("position %d: OpNo = %s, want %s", i, balanced[i].Operation.OpNo, ops[i].OpNo)
		}
	}
}

func TestBalanceInvalidDemand(t *testing.T) {
	ops := []Operation{{OpNo: "1", MachineType: "SNLS", SMV: 1}}

	tests := []struct {
		name   string
		demand Demand
	}{
		{"zero target", Demand{TargetPerDay: 0, WorkingMinutes: 480}},
		{"negative target", Demand{TargetPerDay: -5, WorkingMinutes: 480}},
		{"zero working minutes", Demand{TargetPerDay: 480, WorkingMinutes: 0}},
		{"negative working minutes", Demand{TargetPerDay: 480, WorkingMinutes: -60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balanced, err := Balance(ops, tt.demand)
			if !errors.Is(err, errors.ErrCodeInvalidDemand) {
				t.Errorf("error = %v, want INVALID_DEMAND", err)
			}
			if balanced != nil {
				t.Error("no partial result expected on failure")
			}
		})
	}
}

func TestBalanceMalformedOperation(t *testing.T) {
	demand := Demand{TargetPerDay: 480, WorkingMinutes: 480}

	tests := []struct {
		name string
		op   Operation
	}{
		{"missing op number", Operation{MachineType: "SNLS", SMV: 1}},
		{"missing machine type", Operation{OpNo: "1", SMV: 1}},
		{"negative smv", Operation{OpNo: "1", MachineType: "SNLS", SMV: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Balance([]Operation{tt.op}, demand)
			if !errors.Is(err, errors.ErrCodeMalformedOp) {
				t.Errorf("error = %v, want MALFORMED_OPERATION", err)
			}
		})
	}
}

func TestBalanceEmptyInput(t *testing.T) {
	balanced, err := Balance(nil, Demand{TargetPerDay: 480, WorkingMinutes: 480})
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if len(balanced) != 0 {
		t.Errorf("len = %d, want 0", len(balanced))
	}
}

func TestUtilization(t *testing.T) {
	demand := Demand{TargetPerDay: 480, WorkingMinutes: 480}

	// 1.5 SMV on 2 machines at takt 1.0 → 0.75
	b := BalancedOperation{Operation: Operation{SMV: 1.5}, Machines: 2}
	if got := Utilization(b, demand); got != 0.75 {
		t.Errorf("Utilization = %g, want 0.75", got)
	}

	// Zero machines never divides by zero
	if got := Utilization(BalancedOperation{}, demand); got != 0 {
		t.Errorf("Utilization = %g, want 0", got)
	}
}

func TestTotalMachines(t *testing.T) {
	balanced := []BalancedOperation{{Machines: 2}, {Machines: 1}, {Machines: 3}}
	if got := TotalMachines(balanced); got != 6 {
		t.Errorf("TotalMachines = %d, want 6", got)
	}
}
