package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	panelKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Field is one row of a summary panel.
type Field struct {
	Key   string
	Value string
}

// SummaryPanel renders a titled key/value panel. In plain mode it
// degrades to aligned key: value lines.
func (w *Writer) SummaryPanel(title string, fields []Field) {
	if !w.pretty {
		fmt.Fprintln(w.out, title)
		for _, f := range fields {
			if f.Value != "" {
				fmt.Fprintf(w.out, "  %-10s %s\n", f.Key+":", f.Value)
			}
		}
		return
	}

	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render(title))
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(panelKeyStyle.Render(fmt.Sprintf("%-10s", f.Key+":")))
		sb.WriteString(" " + f.Value)
	}
	fmt.Fprintln(w.out, panelStyle.Render(sb.String()))
}
