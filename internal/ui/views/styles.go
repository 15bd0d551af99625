package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Prompt         lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Main           lipgloss.Style
	ResultName     lipgloss.Style
	ScientificName lipgloss.Style
	ViewAll        lipgloss.Style
	NoResults      lipgloss.Style
	Error          lipgloss.Style
	Category       lipgloss.Style
	CategoryActive lipgloss.Style
	HistoryTitle   lipgloss.Style
	HistoryItem    lipgloss.Style
	HistoryActive  lipgloss.Style
	Help           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("78")).
			MarginBottom(1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		ResultName:     lipgloss.NewStyle().Bold(true),
		ScientificName: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ViewAll:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Underline(true), // green
		NoResults:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Category:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		CategoryActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")). // yellow
			Padding(0, 1),
		HistoryTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		HistoryItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HistoryActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Help:          lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}

// Plain returns styles that render text unchanged, used for pager output and tests
func Plain() *Styles {
	s := lipgloss.NewStyle()
	return &Styles{
		Title: s, Prompt: s, Dim: s, Status: s, Main: s,
		ResultName: s, ScientificName: s, ViewAll: s, NoResults: s, Error: s,
		Category: s, CategoryActive: s,
		HistoryTitle: s, HistoryItem: s, HistoryActive: s, Help: s,
	}
}
