package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchSkipped   EventType = "SearchSkipped"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventHistoryUpdated  EventType = "HistoryUpdated"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a search request goes out
type SearchStartedEvent struct {
	Term string
	Seq  uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchSkippedEvent is emitted when a term is too short to search
type SearchSkippedEvent struct {
	Term string
}

func (e SearchSkippedEvent) Type() EventType { return EventSearchSkipped }

// SearchCompletedEvent is emitted after a response was rendered
type SearchCompletedEvent struct {
	Term  string
	Seq   uint64
	Total int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the request or decoding failed
type SearchFailedEvent struct {
	Term string
	Seq  uint64
	Err  error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a response arrives after a newer search was issued
type SearchDiscardedEvent struct {
	Term   string
	Seq    uint64
	Latest uint64
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// HistoryUpdatedEvent is emitted when a term was added to the search history
type HistoryUpdatedEvent struct {
	Entries []string
}

func (e HistoryUpdatedEvent) Type() EventType { return EventHistoryUpdated }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
