// Package search runs a catalog search for a term, renders the outcome and
// records successful terms in the search history.
package search

import (
	"context"
	"log"
	"sync/atomic"
	"unicode/utf8"

	"herbalsearch/internal/domain"
	"herbalsearch/internal/eventbus"
	"herbalsearch/internal/history"
)

const (
	// DefaultMinTermLength is the shortest term that reaches the network
	DefaultMinTermLength = 2
	// DefaultPreviewLimit is the number of rows shown before "view all"
	DefaultPreviewLimit = 5
)

// Searcher fetches plants matching a term
type Searcher interface {
	SearchPlants(ctx context.Context, term string) (*domain.PlantsResponse, error)
}

// Pipeline executes searches. It is safe to call Execute from several
// goroutines; executions are independent and none cancels another.
//
// By default the display follows whichever execution renders last. With
// LatestOnly every execution takes a sequence number and a response is
// dropped unless its number is still the latest one issued.
type Pipeline struct {
	searcher   Searcher
	history    *history.History
	surface    Surface
	bus        eventbus.EventBus
	minLen     int
	limit      int
	latestOnly bool
	seq        atomic.Uint64
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithSurface renders every view on s
func WithSurface(s Surface) Option {
	return func(p *Pipeline) { p.surface = s }
}

// WithBus publishes search lifecycle events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(p *Pipeline) { p.bus = bus }
}

// WithMinTermLength sets the guard length
func WithMinTermLength(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.minLen = n
		}
	}
}

// WithPreviewLimit sets the number of preview rows
func WithPreviewLimit(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.limit = n
		}
	}
}

// WithLatestOnly turns on discarding of out-of-order responses
func WithLatestOnly(on bool) Option {
	return func(p *Pipeline) { p.latestOnly = on }
}

// NewPipeline creates a pipeline. hist may be nil to disable history.
func NewPipeline(searcher Searcher, hist *history.History, opts ...Option) *Pipeline {
	p := &Pipeline{
		searcher: searcher,
		history:  hist,
		minLen:   DefaultMinTermLength,
		limit:    DefaultPreviewLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute searches for term, renders the outcome and returns the rendered view.
// Failures are logged and rendered as an error view; they are never returned.
func (p *Pipeline) Execute(ctx context.Context, term string) View {
	seq := p.seq.Add(1)

	if utf8.RuneCountInString(term) < p.minLen {
		v := View{Kind: KindCleared, Term: term, Seq: seq}
		p.render(v)
		p.publish(eventbus.SearchSkippedEvent{Term: term})
		return v
	}

	p.publish(eventbus.SearchStartedEvent{Term: term, Seq: seq})
	resp, err := p.searcher.SearchPlants(ctx, term)

	if p.latestOnly {
		if latest := p.seq.Load(); latest != seq {
			p.publish(eventbus.SearchDiscardedEvent{Term: term, Seq: seq, Latest: latest})
			return View{Kind: KindStale, Term: term, Seq: seq}
		}
	}

	if err != nil {
		log.Printf("Error performing search for %q: %v", term, err)
		v := View{Kind: KindError, Term: term, Seq: seq, Err: err}
		p.render(v)
		p.publish(eventbus.SearchFailedEvent{Term: term, Seq: seq, Err: err})
		return v
	}

	var plants []domain.Plant
	if resp != nil {
		plants = resp.Plants
	}
	if len(plants) == 0 {
		v := View{Kind: KindNoResults, Term: term, Seq: seq}
		p.render(v)
		p.publish(eventbus.SearchCompletedEvent{Term: term, Seq: seq})
		return v
	}

	v := View{
		Kind:    KindResults,
		Term:    term,
		Seq:     seq,
		Preview: plants[:min(p.limit, len(plants))],
		All:     plants,
		Total:   len(plants),
	}
	p.render(v)
	p.record(term)
	p.publish(eventbus.SearchCompletedEvent{Term: term, Seq: seq, Total: v.Total})
	return v
}

// Latest returns the sequence number of the most recently started execution
func (p *Pipeline) Latest() uint64 {
	return p.seq.Load()
}

func (p *Pipeline) record(term string) {
	if p.history == nil {
		return
	}
	added, err := p.history.Record(term)
	if err != nil {
		log.Printf("Failed to update search history: %v", err)
	}
	if added {
		p.publish(eventbus.HistoryUpdatedEvent{Entries: p.history.Entries()})
	}
}

func (p *Pipeline) render(v View) {
	if p.surface != nil {
		p.surface.Render(v)
	}
}

func (p *Pipeline) publish(e eventbus.DomainEvent) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}
