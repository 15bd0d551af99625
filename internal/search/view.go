package search

import (
	"fmt"

	"herbalsearch/internal/domain"
)

// Kind says what a View shows
type Kind int

const (
	// KindCleared is an empty results area, shown for terms that are too short
	KindCleared Kind = iota
	// KindNoResults echoes the term back with a "no results" message
	KindNoResults
	// KindResults lists the preview rows
	KindResults
	// KindError is the generic failure message
	KindError
	// KindStale is a response that lost to a newer search; it is never rendered
	KindStale
)

func (k Kind) String() string {
	switch k {
	case KindCleared:
		return "cleared"
	case KindNoResults:
		return "no-results"
	case KindResults:
		return "results"
	case KindError:
		return "error"
	case KindStale:
		return "stale"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrorMessage is shown when a search fails for any reason
const ErrorMessage = "Error searching. Please try again."

// View is one complete rendering of the results area
type View struct {
	Kind Kind
	Term string
	Seq  uint64
	// Preview holds the rows to display, at most the preview limit
	Preview []domain.Plant
	// All holds every plant the catalog returned
	All   []domain.Plant
	Total int
	Err   error
}

// HasMore reports whether the catalog returned more plants than the preview shows
func (v View) HasMore() bool {
	return v.Kind == KindResults && v.Total > len(v.Preview)
}

// ViewAllLabel is the text of the "view all" affordance
func (v View) ViewAllLabel() string {
	return fmt.Sprintf("View all %d results", v.Total)
}

// Message is the single line shown for views without rows
func (v View) Message() string {
	switch v.Kind {
	case KindNoResults:
		return "No results found for " + v.Term
	case KindError:
		return ErrorMessage
	default:
		return ""
	}
}

// Surface is a rendering target whose content is fully replaced by each View
type Surface interface {
	Render(v View)
}

// SurfaceFunc adapts a function to Surface
type SurfaceFunc func(View)

func (f SurfaceFunc) Render(v View) { f(v) }
