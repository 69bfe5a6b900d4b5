package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/stitchline/stitchline/pkg/pipeline"
	"github.com/stitchline/stitchline/pkg/plan"
)

// balanceCommand creates the balance command: show the capacity balance
// without placing anything.
func (c *CLI) balanceCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "balance [bulletin.json|bulletin.yaml]",
		Short: "Balance a bulletin against demand and show station counts",
		Long: `Balance a bulletin against demand and show station counts.

For every operation the balance command shows the machine count required to
meet the demand target and the utilization of those stations (SMV over
machines times takt). Utilization well below 1.0 means the ceiling to whole
machines introduced slack at that operation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.BulletinPath = args[0]
			return c.runBalance(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().IntVar(&opts.TargetPerDay, "target", 0, "demand target in units per day (overrides the bulletin)")
	cmd.Flags().Float64Var(&opts.WorkingMinutes, "minutes", 0, "net working minutes per day (default 480)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "style number (overrides the bulletin)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runBalance(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	b, balanced, err := runner.Balance(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Balance complete")

	demand := opts.Demand(b)
	printSuccess("Balanced %d operations", len(balanced))
	printDetail("target %.0f/day over %.0f min · takt %.2f min", demand.TargetPerDay, demand.WorkingMinutes, demand.Takt())
	printNewline()
	fmt.Println(balanceTable(balanced, demand))
	printNewline()
	printDetail("%d machines total", plan.TotalMachines(balanced))

	return nil
}

// balanceTable renders the per-operation balance as a lipgloss table.
func balanceTable(balanced []plan.BalancedOperation, demand plan.Demand) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, b := range balanced {
		rows = append(rows, []string{
			b.Operation.OpNo,
			b.Operation.Name,
			b.Operation.Section,
			b.Operation.MachineType,
			fmt.Sprintf("%.2f", b.Operation.SMV),
			fmt.Sprintf("%d", b.Machines),
			fmt.Sprintf("%.0f%%", plan.Utilization(b, demand)*100),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Op", "Operation", "Section", "Machine", "SMV", "Stations", "Util").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return listNormalStyle
		}).
		Render()
}
