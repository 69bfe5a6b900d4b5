package flowchart

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/stitchline/stitchline/pkg/plan"
)

// Options configures flow diagram rendering.
type Options struct {
	// Detailed includes SMV and utilization hints in node labels.
	// When false, only operation name and machine allocation are shown.
	Detailed bool

	// Title is rendered as the graph label, typically the style number.
	Title string
}

// ToDOT converts grouped, balanced operations to Graphviz DOT format.
// Each section becomes a cluster, each operation a node, and edges
// follow the bulletin's operation order. The resulting DOT string can
// be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(groups []plan.SectionGroup, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("\n")

	for i, grp := range groups {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", grp.Section)
		buf.WriteString("    style=dashed;\n")
		for _, op := range grp.Operations {
			label := fmtLabel(op, opts.Detailed)
			fmt.Fprintf(&buf, "    %q [label=%q];\n", op.Operation.OpNo, label)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	var prev string
	for _, grp := range groups {
		for _, op := range grp.Operations {
			if prev != "" {
				fmt.Fprintf(&buf, "  %q -> %q;\n", prev, op.Operation.OpNo)
			}
			prev = op.Operation.OpNo
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b plan.BalancedOperation, detailed bool) string {
	machines := "machine"
	if b.Machines != 1 {
		machines = "machines"
	}
	name := b.Operation.Name
	if name == "" {
		name = b.Operation.OpNo
	}
	label := fmt.Sprintf("%s\n%s x%d %s", name, b.Operation.MachineType, b.Machines, machines)
	if detailed {
		label += fmt.Sprintf("\nSMV %.2f", b.Operation.SMV)
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the view box starts
// at the origin, which keeps browser embedding predictable.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
