package ui

import (
	"time"

	"herbalsearch/internal/domain"
	"herbalsearch/internal/eventbus"
	"herbalsearch/internal/search"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// searchDueMsg is sent by the debounce gate once typing pauses
type searchDueMsg struct {
	term string
}

// resultsMsg carries the view rendered by one pipeline execution
type resultsMsg struct {
	view search.View
}

// categoryPlantsMsg contains the plants of one category, fetched for browsing
type categoryPlantsMsg struct {
	category string
	plants   []domain.Plant
	err      error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
