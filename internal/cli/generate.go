package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stitchline/stitchline/pkg/pipeline"
)

// generateCommand creates the generate command: bulletin in, floor plan out.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [bulletin.json|bulletin.yaml]",
		Short: "Generate a floor plan from an operation bulletin",
		Long: `Generate a floor plan from an operation bulletin.

The generate command balances the bulletin's operations against the demand
target, places every machine and fixture onto the four-lane floor topology,
and writes the result. The default output is the plan JSON; flow diagram
formats (dot, svg, png) can be requested alongside it.

The demand target comes from --target, or from the bulletin's demand block
when the flag is omitted. Results are cached locally for faster subsequent
runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.BulletinPath = args[0]
			opts.Formats = parseFormats(formatsStr, pipeline.FormatJSON)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Balance flags
	cmd.Flags().IntVar(&opts.TargetPerDay, "target", 0, "demand target in units per day (overrides the bulletin)")
	cmd.Flags().Float64Var(&opts.WorkingMinutes, "minutes", 0, "net working minutes per day (default 480)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "style number (overrides the bulletin)")

	// Place flags
	cmd.Flags().StringVar(&opts.GeometryPath, "geometry", "", "geometry TOML file (default: built-in geometry)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include SMV in flow diagram labels")

	return cmd
}

// runGenerate executes the full pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Placing floor plan...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	summary := result.Plan.Summarize()
	printSuccess("Floor plan complete")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.BulletinPath,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(summary.Machines, summary.Fixtures, summary.Sections, result.CacheInfo.PlaceHit)
	printNewline()
	printNextStep("Preview", "stitchline preview "+artifactPath(opts.BulletinPath, output, pipeline.FormatJSON, len(opts.Formats) > 1))

	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles everything needed to write rendered outputs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to disk and prints the paths.
// With one format the output flag names the file directly; with several it
// acts as a base path and each format gets its own extension.
func writeArtifacts(p artifactWriteParams) error {
	multi := len(p.formats) > 1
	for _, format := range p.formats {
		path := artifactPath(p.input, p.output, format, multi)
		if err := os.WriteFile(path, p.artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath derives the output path for one format.
func artifactPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input)) + ".plan"
	}
	return base + "." + format
}
