package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadcost/pkg/cost"
	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/sheet"
)

var (
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listSelectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	listDetailStyle   = lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(2)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts sectionOpts

	cmd := &cobra.Command{
		Use:   "inspect [sheet]",
		Short: "Browse priced patches interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eopts := estimate.Options{
				Section: opts.section(),
				Params:  c.params(cmd, opts),
			}
			return c.runInspect(cmd.Context(), args[0], eopts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, eopts estimate.Options) error {
	rows, err := sheet.Open(input)
	if err != nil {
		return err
	}
	res, err := estimate.NewRunner(nil, nil, c.Logger).Estimate(ctx, rows, eopts)
	if err != nil {
		return err
	}

	m := NewPatchListModel(res)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// =============================================================================
// PatchListModel - Interactive patch browser
// =============================================================================

// PatchListModel is the bubbletea model for browsing priced patches.
type PatchListModel struct {
	Lines    []cost.Line
	Result   *estimate.Result
	Cursor   int
	Offset   int
	Height   int
	Detailed bool
}

// NewPatchListModel creates a browser over the patches of res.
func NewPatchListModel(res *estimate.Result) PatchListModel {
	return PatchListModel{
		Lines:  res.Comparison.Unbound.Lines,
		Result: res,
		Height: 15,
	}
}

func (m PatchListModel) Init() tea.Cmd {
	return nil
}

func (m PatchListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Lines)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Lines)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter", " ":
			m.Detailed = !m.Detailed
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PatchListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Patches"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Lines))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.Lines[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(l.Index),
			string(l.Patch.Side),
			cost.Fixed(l.Patch.StartChainage) + "-" + cost.Fixed(l.Patch.End()),
			cost.Fixed(l.Area),
			cost.Money(l.Cost),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Side", "Chainage (m)", "Area (m²)", "Cost").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if !m.Lines[m.Offset+row].Patch.Side.Known() {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Lines))))
	b.WriteString("\n\n")

	if m.Detailed && m.Cursor < len(m.Lines) {
		b.WriteString(listDetailStyle.Render(cost.PatchLine(m.Lines[m.Cursor])))
		b.WriteString("\n\n")
	}

	cmp := m.Result.Comparison
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("Unbound total:"), StyleNumber.Render(cost.Money(cmp.Unbound.Total)))
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render(cmp.AltMethod.Name+":"), StyleNumber.Render(cost.Money(cmp.AltMethod.Total)))
	b.WriteString("  " + StyleSuccess.Render(cmp.Verdict()))
	b.WriteString("\n")

	return b.String()
}
