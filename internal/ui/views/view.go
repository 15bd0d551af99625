package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"herbalsearch/internal/domain"
	"herbalsearch/internal/search"
	"herbalsearch/internal/ui/logic"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width              int
	Height             int
	Input              string
	Results            search.View
	InFlight           int
	Pending            bool
	Category           string
	Categories         []string
	History            []string
	HistoryIndex       int
	ShowHistory        bool
	ShowScientificName bool
	SortMode           logic.SortMode
	StatusMessage      string
	Help               string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("herbalsearch")
	var indicators []string
	if state.InFlight > 0 {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Searching", spinner[frame]))
	} else if state.Pending {
		indicators = append(indicators, "…")
	}
	if state.SortMode != logic.SortByCatalog {
		indicators = append(indicators, "sort: "+state.SortMode.String())
	}

	titleLine := logo
	if len(indicators) > 0 {
		right := r.styles.Dim.Render(strings.Join(indicators, " | "))
		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80
		}
		padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + right
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(r.styles.Prompt.Render("Search: "))
	content.WriteString(state.Input)
	content.WriteString("\n\n")

	if cats := r.RenderCategories(state.Categories, state.Category); cats != "" {
		content.WriteString(cats)
		content.WriteString("\n\n")
	}

	content.WriteString(r.RenderResults(state.Results, state.Category, state.ShowScientificName))

	if state.ShowHistory && len(state.History) > 0 {
		content.WriteString("\n\n")
		content.WriteString(r.RenderHistory(state.History, state.HistoryIndex))
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if state.Help != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		available := state.Height - 2
		if available <= 0 {
			available = 22
		}
		if pad := available - currentLines - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		} else {
			content.WriteString("\n")
		}
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	return r.styles.Main.Render(content.String())
}

// RenderResults renders the results area for a view. Rows outside category are hidden.
func (r *Renderer) RenderResults(v search.View, category string, showScientific bool) string {
	switch v.Kind {
	case search.KindNoResults:
		return r.styles.NoResults.Render(v.Message())
	case search.KindError:
		return r.styles.Error.Render(v.Message())
	case search.KindResults:
	default:
		return ""
	}

	var b strings.Builder
	rows := logic.FilterByCategory(v.Preview, category)
	for i, p := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.renderRow(p, showScientific))
	}
	if hidden := len(v.Preview) - len(rows); hidden > 0 {
		if len(rows) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%d hidden by category %q", hidden, category)))
	}
	if v.HasMore() {
		b.WriteString("\n")
		b.WriteString(r.styles.ViewAll.Render(v.ViewAllLabel()))
		b.WriteString(r.styles.Dim.Render("  (enter)"))
	}
	return b.String()
}

// RenderCategories renders the category bar; the selected entry is bracketed
func (r *Renderer) RenderCategories(categories []string, selected string) string {
	if len(categories) <= 1 {
		return ""
	}
	if selected == "" {
		selected = logic.AllCategories
	}
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == selected {
			parts = append(parts, r.styles.CategoryActive.Render("["+c+"]"))
		} else {
			parts = append(parts, r.styles.Category.Render(c))
		}
	}
	return strings.Join(parts, " ")
}

// RenderHistory renders the recent search list; active is the highlighted index or -1
func (r *Renderer) RenderHistory(entries []string, active int) string {
	var b strings.Builder
	b.WriteString(r.styles.HistoryTitle.Render("Recent searches"))
	for i, term := range entries {
		b.WriteString("\n")
		if i == active {
			b.WriteString(r.styles.HistoryActive.Render("> " + term))
		} else {
			b.WriteString(r.styles.HistoryItem.Render("  " + term))
		}
	}
	return b.String()
}

// RenderAll renders every result of v, one block per plant, for the pager
func (r *Renderer) RenderAll(v search.View, category string, mode logic.SortMode) string {
	plants := logic.SortPlants(logic.FilterByCategory(v.All, category), mode)

	var b strings.Builder
	header := fmt.Sprintf("%d results for %q", v.Total, v.Term)
	if category != "" && category != logic.AllCategories {
		header = fmt.Sprintf("%s (%d in %s)", header, len(plants), category)
	}
	if mode != logic.SortByCatalog {
		header = fmt.Sprintf("%s, sorted by %s", header, mode)
	}
	b.WriteString(r.styles.Title.Render(header))
	b.WriteString("\n")
	for _, p := range plants {
		b.WriteString("\n")
		b.WriteString(r.renderDetail(p))
	}
	return b.String()
}

func (r *Renderer) renderRow(p domain.Plant, showScientific bool) string {
	line := r.styles.ResultName.Render(p.Name)
	if showScientific && p.ScientificName != "" {
		line += "  " + r.styles.ScientificName.Render(p.ScientificName)
	}
	return line
}

func (r *Renderer) renderDetail(p domain.Plant) string {
	var b strings.Builder
	b.WriteString(r.renderRow(p, true))
	if p.Category != "" {
		b.WriteString(r.styles.Dim.Render("  [" + p.Category + "]"))
	}
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString("  " + p.Description + "\n")
	}
	if len(p.Benefits) > 0 {
		b.WriteString("  Benefits: " + strings.Join(p.Benefits, ", ") + "\n")
	}
	if p.Usage != "" {
		b.WriteString("  Usage: " + p.Usage + "\n")
	}
	return b.String()
}
