package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// Render returns the full help page shown in the pager
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("78")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	var help strings.Builder

	help.WriteString(titleStyle.Render("herbalsearch Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Searching"))
	help.WriteString("\n")
	help.WriteString("  Type at least two characters. The search runs once typing pauses.\n")
	r.writeBindings(&help, r.keys.ViewAll, r.keys.BrowseCategory, r.keys.CycleSort)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Categories"))
	help.WriteString("\n")
	r.writeBindings(&help, r.keys.NextCategory, r.keys.PrevCategory)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("History"))
	help.WriteString("\n")
	r.writeBindings(&help, r.keys.HistoryUp, r.keys.HistoryDown)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	r.writeBindings(&help, r.keys.Help, r.keys.Quit)

	return help.String()
}

func (r *HelpRenderer) writeBindings(b *strings.Builder, bindings ...key.Binding) {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	for _, k := range bindings {
		h := k.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", h.Key)), descStyle.Render(h.Desc)))
	}
}
