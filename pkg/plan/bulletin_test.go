package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stitchline/stitchline/pkg/errors"
)

func TestReadBulletinJSON(t *testing.T) {
	input := `{
  "style": "MS-100 shirt",
  "operations": [
    {"op_no": "10", "name": "Run stitch collar", "machine_type": "SNLS", "smv": 0.55, "section": "Collar"},
    {"op_no": "20", "name": "Turn collar", "machine_type": "Manual", "smv": 0.35, "section": "Collar"}
  ],
  "demand": {"target_per_day": 800, "working_minutes": 480}
}`

	b, err := ReadBulletin(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("ReadBulletin error: %v", err)
	}
	if b.Style != "MS-100 shirt" {
		t.Errorf("Style = %s", b.Style)
	}
	if len(b.Operations) != 2 {
		t.Fatalf("operations = %d, want 2", len(b.Operations))
	}
	if b.Operations[1].MachineType != "Manual" {
		t.Errorf("MachineType = %s", b.Operations[1].MachineType)
	}
	if b.Demand == nil || b.Demand.TargetPerDay != 800 {
		t.Errorf("Demand = %+v", b.Demand)
	}
}

func TestReadBulletinYAML(t *testing.T) {
	input := `
operations:
  - op_no: "10"
    machine_type: Overlock
    smv: 0.8
    section: Sleeve
`
	b, err := ReadBulletin(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("ReadBulletin error: %v", err)
	}
	if len(b.Operations) != 1 || b.Operations[0].MachineType != "Overlock" {
		t.Errorf("unexpected operations: %+v", b.Operations)
	}
	if b.Demand != nil {
		t.Error("Demand should be nil when absent")
	}
}

func TestReadBulletinInvalidFormat(t *testing.T) {
	_, err := ReadBulletin(strings.NewReader("{}"), "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}

	_, err = ReadBulletin(strings.NewReader("not json"), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadBulletinFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.json")

	in := &Bulletin{
		Operations: []Operation{
			{OpNo: "10", MachineType: "SNLS", SMV: 1.1, Section: "Cuff"},
		},
	}
	if err := WriteBulletinFile(in, path); err != nil {
		t.Fatalf("WriteBulletinFile error: %v", err)
	}

	out, err := ReadBulletinFile(path)
	if err != nil {
		t.Fatalf("ReadBulletinFile error: %v", err)
	}
	if len(out.Operations) != 1 || out.Operations[0] != in.Operations[0] {
		t.Errorf("round trip mismatch: %+v", out.Operations)
	}
}

func TestReadBulletinFileErrors(t *testing.T) {
	if _, err := ReadBulletinFile("does-not-exist.json"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "ops.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBulletinFile(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}
