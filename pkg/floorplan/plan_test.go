package floorplan

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stitchline/stitchline/pkg/plan"
)

func machine(id string, lane Lane, x float64) Entity {
	return Entity{
		ID:        id,
		Kind:      KindMachine,
		Lane:      lane,
		Position:  Vec3{X: x},
		Section:   "Cuff",
		Seq:       0,
		Operation: &plan.Operation{OpNo: "10", MachineType: "SNLS", SMV: 1},
	}
}

func fixture(id string, kind Kind, lane Lane) Entity {
	return Entity{ID: id, Kind: kind, Lane: lane, Section: "Cuff", Seq: FixtureSeq}
}

func TestPlanRoundTrip(t *testing.T) {
	in := Plan{
		Style:  "MS-100",
		Demand: plan.Demand{TargetPerDay: 480, WorkingMinutes: 480},
		Takt:   1.0,
		Entities: []Entity{
			fixture("b1", KindBoard, LaneA),
			machine("m1", LaneA, 2.1),
			machine("m2", LaneB, 2.1),
			fixture("t1", KindTrolley, LaneA),
		},
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := WriteFile(in, path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	if out.Style != in.Style || out.Takt != in.Takt {
		t.Errorf("header mismatch: %+v", out)
	}
	if len(out.Entities) != len(in.Entities) {
		t.Fatalf("entities = %d, want %d", len(out.Entities), len(in.Entities))
	}
	for i := range in.Entities {
		if out.Entities[i].ID != in.Entities[i].ID ||
			out.Entities[i].Kind != in.Entities[i].Kind ||
			out.Entities[i].Lane != in.Entities[i].Lane ||
			out.Entities[i].Position != in.Entities[i].Position {
			t.Errorf("entity %d mismatch: got %+v want %+v", i, out.Entities[i], in.Entities[i])
		}
	}
	// Machine keeps its source operation; fixture has none
	if out.Entities[1].Operation == nil || out.Entities[1].Operation.OpNo != "10" {
		t.Error("machine lost its source operation")
	}
	if out.Entities[0].Operation != nil {
		t.Error("fixture should not carry an operation")
	}
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr string
	}{
		{"empty plan is valid", Plan{}, ""},
		{
			"missing id",
			Plan{Entities: []Entity{{Kind: KindBoard, Lane: LaneA, Seq: FixtureSeq}}},
			"no id",
		},
		{
			"duplicate id",
			Plan{Entities: []Entity{fixture("x", KindBoard, LaneA), fixture("x", KindTrolley, LaneA)}},
			"duplicate",
		},
		{
			"unknown kind",
			Plan{Entities: []Entity{{ID: "x", Kind: "robot", Lane: LaneA, Seq: FixtureSeq}}},
			"unknown kind",
		},
		{
			"unknown lane",
			Plan{Entities: []Entity{{ID: "x", Kind: KindBoard, Lane: "E", Seq: FixtureSeq}}},
			"unknown lane",
		},
		{
			"machine without operation",
			Plan{Entities: []Entity{{ID: "x", Kind: KindMachine, Lane: LaneA, Seq: 0}}},
			"no source operation",
		},
		{
			"fixture with machine seq",
			Plan{Entities: []Entity{{ID: "x", Kind: KindBoard, Lane: LaneA, Seq: 2}}},
			"sequence index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	p := Plan{
		Entities: []Entity{
			fixture("b1", KindBoard, LaneA),
			machine("m1", LaneA, 1),
			machine("m2", LaneA, 2),
			machine("m3", LaneB, 1),
			fixture("i1", KindInspection, LaneA),
		},
	}

	s := p.Summarize()
	if s.Machines != 3 {
		t.Errorf("Machines = %d, want 3", s.Machines)
	}
	if s.Fixtures != 2 {
		t.Errorf("Fixtures = %d, want 2", s.Fixtures)
	}
	if s.Sections != 1 {
		t.Errorf("Sections = %d, want 1", s.Sections)
	}
	if s.PerLane[LaneA] != 2 || s.PerLane[LaneB] != 1 {
		t.Errorf("PerLane = %v", s.PerLane)
	}
}

func TestEntityLabel(t *testing.T) {
	m := machine("m1", LaneA, 0)
	if m.Label() != "10" {
		t.Errorf("Label = %s, want op number fallback", m.Label())
	}
	m.Operation.Name = "Attach cuff"
	if m.Label() != "Attach cuff" {
		t.Errorf("Label = %s", m.Label())
	}
	f := fixture("f1", KindTrolley, LaneA)
	if f.Label() != "trolley" {
		t.Errorf("Label = %s", f.Label())
	}
}
