package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stitchline/stitchline/pkg/cache"
	"github.com/stitchline/stitchline/pkg/plan"
)

const testBulletinJSON = `{
  "style": "MS-104",
  "operations": [
    {"op_no": "1", "name": "Run stitch collar", "machine_type": "SNLS", "smv": 2.0, "section": "Collar"},
    {"op_no": "2", "name": "Hem cuff", "machine_type": "SNLS", "smv": 1.0, "section": "Cuff"},
    {"op_no": "3", "name": "Attach collar", "machine_type": "SNLS", "smv": 1.0, "section": "Assembly"},
    {"op_no": "4", "name": "Buttonhole", "machine_type": "Buttonhole", "smv": 1.0, "section": "Assembly"}
  ],
  "demand": {"target_per_day": 480, "working_minutes": 480}
}`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidation(t *testing.T) {
	// Neither path nor content
	opts := Options{}
	if err := opts.ValidateForBalance(); err == nil {
		t.Error("Options without bulletin should fail")
	}

	// Inline content without format
	opts = Options{Bulletin: testBulletinJSON}
	if err := opts.ValidateForBalance(); err == nil {
		t.Error("Inline bulletin without format should fail")
	}

	// Inline content with format
	opts = Options{Bulletin: testBulletinJSON, BulletinFormat: plan.FormatJSON}
	if err := opts.ValidateForBalance(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("ValidateForBalance should set a default logger")
	}
}

func TestOptionsRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should default to [json], got %v", opts.Formats)
	}
}

func TestOptionsDemandMerging(t *testing.T) {
	bulletin := &plan.Bulletin{
		Demand: &plan.Demand{TargetPerDay: 600, WorkingMinutes: 420},
	}

	// Bulletin demand used when options are empty
	opts := Options{}
	d := opts.Demand(bulletin)
	if d.TargetPerDay != 600 || d.WorkingMinutes != 420 {
		t.Errorf("Demand should come from bulletin, got %+v", d)
	}

	// Options win over bulletin
	opts = Options{TargetPerDay: 960, WorkingMinutes: 480}
	d = opts.Demand(bulletin)
	if d.TargetPerDay != 960 || d.WorkingMinutes != 480 {
		t.Errorf("Options should win over bulletin, got %+v", d)
	}

	// Working minutes default to a full shift
	opts = Options{TargetPerDay: 480}
	d = opts.Demand(nil)
	if d.WorkingMinutes != DefaultWorkingMinutes {
		t.Errorf("WorkingMinutes should default to %g, got %g", DefaultWorkingMinutes, d.WorkingMinutes)
	}
}

func TestBalanceInline(t *testing.T) {
	opts := Options{Bulletin: testBulletinJSON, BulletinFormat: plan.FormatJSON}

	b, balanced, err := Balance(opts)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if b.Style != "MS-104" {
		t.Errorf("Style = %q, want MS-104", b.Style)
	}
	if len(balanced) != 4 {
		t.Fatalf("balanced = %d operations, want 4", len(balanced))
	}
	// takt 1.0: 2.0 SMV → 2 machines
	if balanced[0].Machines != 2 {
		t.Errorf("op 1 machines = %d, want 2", balanced[0].Machines)
	}
}

func TestBalanceStyleOverride(t *testing.T) {
	opts := Options{
		Bulletin:       testBulletinJSON,
		BulletinFormat: plan.FormatJSON,
		Style:          "MS-205",
	}

	b, _, err := Balance(opts)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if b.Style != "MS-205" {
		t.Errorf("Style = %q, want caller override MS-205", b.Style)
	}
}

func TestExecuteEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bulletin.json")
	if err := os.WriteFile(path, []byte(testBulletinJSON), 0644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		BulletinPath: path,
		Formats:      []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.OperationCount != 4 {
		t.Errorf("OperationCount = %d, want 4", result.Stats.OperationCount)
	}
	// 2 + 1 + 1 + 1 machines
	if result.Stats.MachineCount != 5 {
		t.Errorf("MachineCount = %d, want 5", result.Stats.MachineCount)
	}
	if result.Plan.Style != "MS-104" {
		t.Errorf("Plan.Style = %q, want MS-104", result.Plan.Style)
	}
	if result.PlanHash == "" {
		t.Error("PlanHash should be set")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("JSON artifact should not be empty")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph flow") {
		t.Error("DOT artifact should contain the flow digraph")
	}
	if err := result.Plan.Validate(); err != nil {
		t.Errorf("placed plan should validate: %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bulletin.json")
	if err := os.WriteFile(path, []byte(testBulletinJSON), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{BulletinPath: path, Formats: []string{FormatJSON, FormatDOT}}

	// First run populates the cache
	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheInfo.BalanceHit || first.CacheInfo.PlaceHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere, got %+v", first.CacheInfo)
	}

	// Second run hits every stage
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.BalanceHit || !second.CacheInfo.PlaceHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere, got %+v", second.CacheInfo)
	}
	if second.PlanHash != first.PlanHash {
		t.Error("cached run should produce the same plan hash")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.CacheInfo.BalanceHit || third.CacheInfo.PlaceHit {
		t.Errorf("refresh run should bypass the cache, got %+v", third.CacheInfo)
	}
}

func TestExecuteInvalidDemand(t *testing.T) {
	bulletinNoDemand := `{"operations": [{"op_no": "1", "machine_type": "SNLS", "smv": 1.0}]}`

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Bulletin:       bulletinNoDemand,
		BulletinFormat: plan.FormatJSON,
	})
	if err == nil {
		t.Fatal("Execute should fail without a demand target")
	}
}

func TestExecuteMissingBulletin(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		BulletinPath: filepath.Join(t.TempDir(), "nope.json"),
	})
	if err == nil {
		t.Fatal("Execute should fail for a missing bulletin file")
	}
}
