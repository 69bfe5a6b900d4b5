package flowchart

import (
	"strings"
	"testing"

	"github.com/stitchline/stitchline/pkg/plan"
)

func bal(opNo, name, machineType, section string, machines int) plan.BalancedOperation {
	return plan.BalancedOperation{
		Operation: plan.Operation{OpNo: opNo, Name: name, MachineType: machineType, Section: section},
		Machines:  machines,
	}
}

func TestToDOT_Basic(t *testing.T) {
	groups := []plan.SectionGroup{
		{Section: "Collar", Operations: []plan.BalancedOperation{
			bal("1", "Run stitch collar", "SNLS", "Collar", 2),
			bal("2", "Turn collar", "Manual", "Collar", 1),
		}},
	}

	dot := ToDOT(groups, Options{})

	if !strings.Contains(dot, "digraph flow") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"1"`) || !strings.Contains(dot, `"2"`) {
		t.Error("ToDOT() output missing operation nodes")
	}
	if !strings.Contains(dot, `"1" -> "2"`) {
		t.Error("ToDOT() output missing flow edge")
	}
	if !strings.Contains(dot, `label="Collar"`) {
		t.Error("ToDOT() output missing section cluster label")
	}
}

func TestToDOT_EdgesCrossSections(t *testing.T) {
	groups := []plan.SectionGroup{
		{Section: "Collar", Operations: []plan.BalancedOperation{
			bal("1", "Run stitch", "SNLS", "Collar", 1),
		}},
		{Section: "Assembly", Operations: []plan.BalancedOperation{
			bal("2", "Attach collar", "SNLS", "Assembly", 1),
		}},
	}

	dot := ToDOT(groups, Options{})

	if !strings.Contains(dot, `"1" -> "2"`) {
		t.Error("ToDOT() should connect last operation of one section to first of the next")
	}
}

func TestToDOT_MachineCountLabel(t *testing.T) {
	groups := []plan.SectionGroup{
		{Section: "Cuff", Operations: []plan.BalancedOperation{
			bal("1", "Hem cuff", "SNLS", "Cuff", 3),
			bal("2", "Press cuff", "Iron", "Cuff", 1),
		}},
	}

	dot := ToDOT(groups, Options{})

	if !strings.Contains(dot, "SNLS x3 machines") {
		t.Error("ToDOT() label missing pluralized machine count")
	}
	if !strings.Contains(dot, "Iron x1 machine") {
		t.Error("ToDOT() label missing singular machine count")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	op := bal("1", "Hem cuff", "SNLS", "Cuff", 1)
	op.Operation.SMV = 0.85
	groups := []plan.SectionGroup{{Section: "Cuff", Operations: []plan.BalancedOperation{op}}}

	dot := ToDOT(groups, Options{Detailed: true})

	if !strings.Contains(dot, "SMV 0.85") {
		t.Error("ToDOT() detailed output missing SMV")
	}
}

func TestToDOT_Title(t *testing.T) {
	dot := ToDOT(nil, Options{Title: "MS-104"})
	if !strings.Contains(dot, `label="MS-104"`) {
		t.Error("ToDOT() output missing title label")
	}
}

func TestToDOT_FallbackLabelWithoutName(t *testing.T) {
	groups := []plan.SectionGroup{
		{Section: "Cuff", Operations: []plan.BalancedOperation{
			bal("OP-7", "", "SNLS", "Cuff", 1),
		}},
	}

	dot := ToDOT(groups, Options{})

	if !strings.Contains(dot, "OP-7\\nSNLS x1 machine") {
		t.Error("ToDOT() should fall back to operation number when the name is empty")
	}
}
