package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"herbalsearch/internal/catalogapi"
	"herbalsearch/internal/config"
	"herbalsearch/internal/eventbus"
	"herbalsearch/internal/history"
	"herbalsearch/internal/kvstore"
	"herbalsearch/internal/render"
	"herbalsearch/internal/search"
	"herbalsearch/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		baseURL    string
		latestOnly bool
		htmlOut    string
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&baseURL, "url", "", "Catalog base URL (overrides api.base_url)")
	flag.BoolVar(&latestOnly, "latest-only", false, "Drop responses that arrive after a newer search was issued")
	flag.StringVar(&htmlOut, "html", "", "Also write the results markup to this file after every search")
	flag.Parse()

	// Hold log lines until the configured log file is known
	startupLog := &deferredWriter{}
	log.SetOutput(startupLog)

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	// Load configuration with event bus support
	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg := loadOrCreateConfig(configSvc)
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if latestOnly {
		cfg.Search.LatestOnly = true
	}

	// Set up logging
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		_ = startupLog.Attach(os.Stderr)
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		if err := startupLog.Attach(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write log file: %v\n", err)
		}
	}
	log.Printf("Using config %s, catalog %s", configSvc.Path(), cfg.API.BaseURL)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	store, closeStore, err := kvstore.Open(cfg.History.Backend, cfg.History.Path)
	if err != nil {
		fmt.Printf("Error opening history store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("Failed to close history store: %v", err)
		}
	}()
	hist, err := history.Load(store,
		history.WithKey(cfg.History.Key),
		history.WithCapacity(cfg.History.Capacity),
	)
	if err != nil {
		fmt.Printf("Error loading search history: %v\n", err)
		os.Exit(1)
	}

	client, err := catalogapi.NewClient(cfg.API.BaseURL, catalogapi.WithTimeout(cfg.RequestTimeout()))
	if err != nil {
		fmt.Printf("Error creating catalog client: %v\n", err)
		os.Exit(1)
	}

	opts := []search.Option{
		search.WithBus(bus),
		search.WithMinTermLength(cfg.Search.MinTermLength),
		search.WithPreviewLimit(cfg.Search.PreviewLimit),
		search.WithLatestOnly(cfg.Search.LatestOnly),
	}
	if htmlOut != "" {
		surface := render.NewHTMLSurface()
		surface.OnChange = func(markup string) {
			if err := os.WriteFile(htmlOut, []byte(markup), 0644); err != nil {
				log.Printf("Failed to write %s: %v", htmlOut, err)
			}
		}
		opts = append(opts, search.WithSurface(surface))
	}
	pipeline := search.NewPipeline(client, hist, opts...)

	// Create UI model
	uiModel := ui.NewModel(cfg, pipeline, hist)
	uiModel.SetContext(ctx)
	uiModel.SetCategoryBrowser(client)

	// Create Bubble Tea program
	var progOpts []tea.ProgramOption
	if cfg.UISettings.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	progOpts = append(progOpts, tea.WithContext(ctx))
	p := tea.NewProgram(uiModel, progOpts...)
	uiModel.SetProgram(p)

	// Forward history changes to the UI
	bus.Subscribe(eventbus.EventHistoryUpdated, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Cleanup
	uiModel.Close()
	cancel()
}

// subscribeLogging writes config and search lifecycle events to the log
func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("Config saved to %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventSearchStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchStartedEvent); ok {
			log.Printf("Search #%d started: %q", event.Seq, event.Term)
		}
	})
	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchCompletedEvent); ok {
			log.Printf("Search #%d for %q returned %d plants", event.Seq, event.Term, event.Total)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Search #%d for %q failed: %v", event.Seq, event.Term, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventSearchDiscarded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchDiscardedEvent); ok {
			log.Printf("Search #%d for %q discarded, #%d is newer", event.Seq, event.Term, event.Latest)
		}
	})
	bus.Subscribe(eventbus.EventHistoryUpdated, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.HistoryUpdatedEvent); ok {
			log.Printf("Search history now %v", event.Entries)
		}
	})
}

// loadOrCreateConfig loads the config file, writing the defaults out when there is none
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		cfg, err := configSvc.Load()
		if err == nil {
			return cfg
		}
		fmt.Fprintf(os.Stderr, "Ignoring invalid config %s: %v\n", configSvc.Path(), err)
		return config.DefaultConfig()
	}

	cfg := config.DefaultConfig()
	if err := configSvc.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
	}
	return cfg
}
