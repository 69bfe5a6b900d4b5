package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitchline/stitchline/pkg/errors"
	"github.com/stitchline/stitchline/pkg/pipeline"
)

// flowCommand creates the flow command: render an operation flow diagram
// without placing machines.
func (c *CLI) flowCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "flow [bulletin.json|bulletin.yaml]",
		Short: "Render an operation flow diagram",
		Long: `Render an operation flow diagram from a bulletin.

The flow command balances the bulletin and draws the operation sequence as a
diagram, grouped by section, without computing machine positions. Useful for
reviewing the bulletin before committing to a floor plan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.BulletinPath = args[0]
			opts.Formats = parseFormats(formatsStr, pipeline.FormatSVG)
			for _, f := range opts.Formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
				if f == pipeline.FormatJSON {
					return errors.New(errors.ErrCodeInvalidFormat, "flow diagrams support dot, svg, and png only")
				}
			}
			return c.runFlow(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include SMV in node labels")
	cmd.Flags().IntVar(&opts.TargetPerDay, "target", 0, "demand target in units per day (overrides the bulletin)")
	cmd.Flags().Float64Var(&opts.WorkingMinutes, "minutes", 0, "net working minutes per day (default 480)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "style number (overrides the bulletin)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runFlow(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering flow diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Flow diagram complete")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.BulletinPath,
		output:    output,
	}); err != nil {
		return err
	}
	printDetail("%d operations · %s", result.Stats.OperationCount, result.Bulletin.Style)

	return nil
}
