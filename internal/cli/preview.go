package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/stitchline/stitchline/pkg/floorplan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command: browse a generated plan in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [plan.json]",
		Short: "Browse a generated floor plan interactively",
		Long: `Browse a generated floor plan interactively.

The preview command opens a plan JSON file in a terminal browser: the top
level lists garment sections with their machine counts, and selecting a
section shows every placed machine and fixture with its lane, position, and
facing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := floorplan.ReadFile(args[0])
			if err != nil {
				return err
			}
			model := NewPlanModel(p)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// PlanModel - Interactive plan browser
// =============================================================================

// sectionRow is one top-level entry in the browser.
type sectionRow struct {
	Name     string
	Machines int
	Fixtures int
	Lanes    string
}

// PlanModel is the bubbletea model for browsing a floor plan. It has two
// levels: the section list, and the entity table of the selected section.
type PlanModel struct {
	Plan     floorplan.Plan
	Sections []sectionRow
	Cursor   int
	Height   int
	Offset   int

	// Drilled holds the currently opened section, or "" at the top level.
	Drilled string
}

// NewPlanModel creates a plan browser over p.
func NewPlanModel(p floorplan.Plan) PlanModel {
	m := PlanModel{Plan: p, Height: 15}

	byName := map[string]*sectionRow{}
	var order []string
	for i := range p.Entities {
		e := &p.Entities[i]
		row, ok := byName[e.Section]
		if !ok {
			row = &sectionRow{Name: e.Section}
			byName[e.Section] = row
			order = append(order, e.Section)
		}
		if e.IsMachine() {
			row.Machines++
			if !strings.Contains(row.Lanes, string(e.Lane)) {
				row.Lanes += string(e.Lane)
			}
		} else {
			row.Fixtures++
		}
	}
	for _, name := range order {
		m.Sections = append(m.Sections, *byName[name])
	}
	return m
}

func (m PlanModel) Init() tea.Cmd {
	return nil
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Drilled != "" {
				m.Drilled = ""
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Drilled == "" && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Drilled == "" && m.Cursor < len(m.Sections)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Drilled == "" && len(m.Sections) > 0 {
				m.Drilled = m.Sections[m.Cursor].Name
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlanModel) View() string {
	if m.Drilled != "" {
		return m.sectionView()
	}
	return m.listView()
}

func (m PlanModel) listView() string {
	var b strings.Builder

	title := "Floor Plan"
	if m.Plan.Style != "" {
		title = "Floor Plan · " + m.Plan.Style
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("target %.0f/day · takt %.2f min", m.Plan.Demand.TargetPerDay, m.Plan.Takt)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Sections) {
		end = len(m.Sections)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Sections[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, s.Name, s.Lanes,
			fmt.Sprintf("%d", s.Machines),
			fmt.Sprintf("%d", s.Fixtures),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Section", "Lanes", "Machines", "Fixtures").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sections))))

	return b.String()
}

func (m PlanModel) sectionView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Section · " + m.Drilled))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i := range m.Plan.Entities {
		e := &m.Plan.Entities[i]
		if e.Section != m.Drilled {
			continue
		}
		machineType := ""
		if e.Operation != nil {
			machineType = e.Operation.MachineType
		}
		rows = append(rows, []string{
			e.Label(),
			machineType,
			string(e.Lane),
			fmt.Sprintf("%.1f", e.Position.X),
			fmt.Sprintf("%.0f°", e.Rotation.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Entity", "Machine", "Lane", "X", "Facing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	return b.String()
}
