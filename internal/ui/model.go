package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"herbalsearch/internal/config"
	"herbalsearch/internal/debounce"
	"herbalsearch/internal/domain"
	"herbalsearch/internal/eventbus"
	"herbalsearch/internal/history"
	"herbalsearch/internal/search"
	"herbalsearch/internal/ui/logic"
	"herbalsearch/internal/ui/views"
)

// Scheduler accepts raw input and decides when it is searched
type Scheduler interface {
	Schedule(term string)
}

// CategoryBrowser lists every plant of a category
type CategoryBrowser interface {
	PlantsInCategory(ctx context.Context, category string) (*domain.PlantsResponse, error)
}

// Pager displays long text outside the TUI
type Pager interface {
	Show(content string) error
}

// Model represents the UI state
type Model struct {
	config   *config.Config
	pipeline *search.Pipeline
	history  *history.History
	browser  CategoryBrowser
	ctx      context.Context

	// UI-specific state
	width  int
	height int
	input  textinput.Model
	help   help.Model
	keys   keyMap

	results        search.View
	inFlight       int
	category       string
	sortMode       logic.SortMode
	categories     []string
	historyEntries []string
	historyIndex   int // -1 while the input is not taken from history
	statusMessage  string
	inPagerMode    bool // tracks if we're currently in pager mode

	// Handlers
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	scheduler    Scheduler
	gate         *debounce.Gate
	pager        Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. hist may be nil when history is disabled.
func NewModel(cfg *config.Config, pipeline *search.Pipeline, hist *history.History) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search plants and remedies"
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.Focus()

	keys := defaultKeyMap()
	m := &Model{
		config:       cfg,
		pipeline:     pipeline,
		history:      hist,
		ctx:          context.Background(),
		input:        ti,
		help:         help.New(),
		keys:         keys,
		category:     logic.AllCategories,
		categories:   []string{logic.AllCategories},
		historyIndex: -1,
		renderer:     views.NewRenderer(views.NewStyles()),
		helpRenderer: NewHelpRenderer(keys),
	}
	if hist != nil {
		m.historyEntries = hist.Entries()
	}
	return m
}

// SetProgram sets the program reference for terminal management and starts
// the debounce gate, which delivers due searches to the program
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager == nil {
		m.pager = NewPagerOps(p)
	}
	if m.scheduler == nil {
		m.gate = debounce.New(m.config.Debounce(), func(term string) {
			p.Send(searchDueMsg{term: term})
		})
		m.scheduler = m.gate
	}
}

// SetScheduler replaces the debounce gate
func (m *Model) SetScheduler(s Scheduler) {
	m.scheduler = s
}

// SetPager replaces the ov pager
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// SetCategoryBrowser enables browsing whole categories
func (m *Model) SetCategoryBrowser(b CategoryBrowser) {
	m.browser = b
}

// SetContext sets the context searches run under
func (m *Model) SetContext(ctx context.Context) {
	m.ctx = ctx
}

// Close cancels a search that has been scheduled but not started
func (m *Model) Close() {
	if m.gate != nil {
		m.gate.Stop()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 14
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchDueMsg:
		return m, m.runSearch(msg.term)

	case resultsMsg:
		m.applyView(msg.view)
		return m, nil

	case categoryPlantsMsg:
		if msg.err != nil {
			log.Printf("Failed to load category %q: %v", msg.category, msg.err)
			m.statusMessage = fmt.Sprintf("Could not load category %s", msg.category)
			return m, clearStatusAfter(3 * time.Second)
		}
		if len(msg.plants) == 0 {
			m.statusMessage = fmt.Sprintf("No plants in category %s", msg.category)
			return m, clearStatusAfter(3 * time.Second)
		}
		v := search.View{Kind: search.KindResults, Term: msg.category, All: msg.plants, Total: len(msg.plants)}
		return m, m.showInPager("category", m.renderer.RenderAll(v, logic.AllCategories, m.sortMode))

	case EventMsg:
		if e, ok := msg.Event.(eventbus.HistoryUpdatedEvent); ok {
			m.historyEntries = e.Entries
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("%s pager failed: %v", msg.what, msg.err)
		}
		m.inPagerMode = false
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tickMsg:
		// Keep ticking only while the spinner is visible
		if m.inFlight > 0 {
			return m, tick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.showInPager("help", m.helpRenderer.Render())

	case key.Matches(msg, m.keys.ViewAll):
		if m.results.Kind != search.KindResults {
			return m, nil
		}
		return m, m.showInPager("results", m.renderer.RenderAll(m.results, m.category, m.sortMode))

	case key.Matches(msg, m.keys.CycleSort):
		m.sortMode = m.sortMode.Next()
		return m, nil

	case key.Matches(msg, m.keys.BrowseCategory):
		return m, m.browseCategory()

	case key.Matches(msg, m.keys.NextCategory):
		m.category = logic.NextCategory(m.categories, m.category, 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevCategory):
		m.category = logic.NextCategory(m.categories, m.category, -1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryUp):
		return m, m.stepHistory(1)

	case key.Matches(msg, m.keys.HistoryDown):
		return m, m.stepHistory(-1)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.historyIndex = -1
		m.schedule(value)
	}
	return m, cmd
}

// stepHistory moves through recent searches; positive steps go to older entries
func (m *Model) stepHistory(step int) tea.Cmd {
	if len(m.historyEntries) == 0 {
		return nil
	}
	next := m.historyIndex + step
	if next < -1 {
		next = -1
	}
	if next >= len(m.historyEntries) {
		next = len(m.historyEntries) - 1
	}
	if next == m.historyIndex {
		return nil
	}
	m.historyIndex = next

	term := ""
	if next >= 0 {
		term = m.historyEntries[next]
	}
	m.input.SetValue(term)
	m.input.CursorEnd()
	m.schedule(term)
	return nil
}

func (m *Model) schedule(term string) {
	if m.scheduler == nil {
		return
	}
	m.scheduler.Schedule(term)
}

// runSearch executes the pipeline off the update loop
func (m *Model) runSearch(term string) tea.Cmd {
	m.inFlight++
	ctx := m.ctx
	pipeline := m.pipeline
	return tea.Batch(tick(), func() tea.Msg {
		return resultsMsg{view: pipeline.Execute(ctx, term)}
	})
}

// applyView replaces the results area. Views arrive in the order executions
// finish, so the last one to finish stays on screen.
func (m *Model) applyView(v search.View) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	if v.Kind == search.KindStale {
		return
	}
	m.results = v

	m.categories = logic.Categories(v.All)
	found := false
	for _, c := range m.categories {
		if c == m.category {
			found = true
			break
		}
	}
	if !found {
		m.category = logic.AllCategories
	}

	if m.history != nil {
		m.historyEntries = m.history.Entries()
	}
}

func (m *Model) browseCategory() tea.Cmd {
	if m.browser == nil || m.category == logic.AllCategories {
		return nil
	}
	category := m.category
	ctx := m.ctx
	browser := m.browser
	m.statusMessage = fmt.Sprintf("Loading %s...", category)
	return func() tea.Msg {
		resp, err := browser.PlantsInCategory(ctx, category)
		msg := categoryPlantsMsg{category: category, err: err}
		if resp != nil {
			msg.plants = resp.Plants
		}
		return msg
	}
}

// showInPager returns a command that pages content with ov, pausing and resuming rendering
func (m *Model) showInPager(what, content string) tea.Cmd {
	if m.pager == nil {
		return nil
	}
	m.statusMessage = ""
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}

		err := pager.Show(content)

		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{what: what, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:              m.width,
		Height:             m.height,
		Input:              m.input.View(),
		Results:            m.results,
		InFlight:           m.inFlight,
		Category:           m.category,
		Categories:         m.categories,
		History:            m.historyEntries,
		HistoryIndex:       m.historyIndex,
		ShowHistory:        m.config.UISettings.ShowHistory,
		ShowScientificName: m.config.UISettings.ShowScientificName,
		SortMode:           m.sortMode,
		StatusMessage:      m.statusMessage,
		Help:               m.help.View(m.keys),
	}
	if m.gate != nil {
		state.Pending = m.gate.Pending()
	}
	return m.renderer.Render(state)
}

// Results returns the view currently on screen
func (m *Model) Results() search.View {
	return m.results
}

// SortMode returns the order used when listing all results
func (m *Model) SortMode() logic.SortMode {
	return m.sortMode
}

// Category returns the selected category
func (m *Model) Category() string {
	return m.category
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
