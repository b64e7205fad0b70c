package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/idef0/pkg/idef0"
)

// linesCommand creates the lines command, which lists every arrow the
// layout derived from a model.
func (c *CLI) linesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lines [file|-]",
		Short: "List the classified lines of a model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDiagram(cmd, args)
			if err != nil {
				return err
			}
			return writeLinesTable(cmd.OutOrStdout(), d)
		},
	}
}

// writeLinesTable prints one row per line in drawing order.
func writeLinesTable(w io.Writer, d *idef0.Diagram) error {
	rows := make([][]string, 0, len(d.Lines()))
	for i, l := range d.Lines() {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			l.Kind().String(),
			l.Source().Name(),
			l.Target().Name(),
			l.Label(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Kind", "Source", "Target", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 1:
				return styleKind.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}
