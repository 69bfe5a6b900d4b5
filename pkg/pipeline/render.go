package pipeline

import (
	"fmt"

	"github.com/stitchline/stitchline/pkg/floorplan"
	"github.com/stitchline/stitchline/pkg/flowchart"
	"github.com/stitchline/stitchline/pkg/plan"
)

// Render generates output artifacts in the requested formats.
//
// The JSON artifact serializes the placed floor plan; DOT, SVG and PNG
// artifacts render the line-flow diagram from the balanced operation
// list. Formats that only need the flow diagram still work with a zero
// floor plan.
func Render(p floorplan.Plan, balanced []plan.BalancedOperation, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	// The DOT string is shared by dot, svg and png outputs.
	var dot string
	needsFlow := false
	for _, format := range opts.Formats {
		if format != FormatJSON {
			needsFlow = true
		}
	}
	if needsFlow {
		dot = flowchart.ToDOT(plan.GroupBySection(balanced), flowchart.Options{
			Detailed: opts.Detailed,
			Title:    p.Style,
		})
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = floorplan.Marshal(p)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = flowchart.RenderSVG(dot)
		case FormatPNG:
			data, err = flowchart.RenderPNG(dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
