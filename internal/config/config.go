package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"herbalsearch/internal/eventbus"
)

// Defaults used when the config file leaves a value unset
const (
	DefaultBaseURL         = "http://localhost:5000"
	DefaultDebounceMS      = 300
	DefaultMinTermLength   = 2
	DefaultPreviewLimit    = 5
	DefaultHistoryCapacity = 5
	DefaultHistoryKey      = "searchHistory"
	DefaultLogFile         = "herbalsearch.log"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	LogFile    string          `toml:"log_file"`
	API        APISettings     `toml:"api"`
	Search     SearchSettings  `toml:"search"`
	History    HistorySettings `toml:"history"`
	UISettings UISettings      `toml:"ui"`
}

// APISettings configures the catalog API client
type APISettings struct {
	BaseURL string `toml:"base_url"`
	// 0 means no timeout
	RequestTimeoutMS int `toml:"request_timeout_ms"`
}

// SearchSettings configures the debounce gate and the search pipeline
type SearchSettings struct {
	DebounceMS    int  `toml:"debounce_ms"`
	MinTermLength int  `toml:"min_term_length"`
	PreviewLimit  int  `toml:"preview_limit"`
	LatestOnly    bool `toml:"latest_only"`
}

// HistorySettings configures the persisted search history
type HistorySettings struct {
	// "file" (JSON object file) or "bolt"
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	Key      string `toml:"key"`
	Capacity int    `toml:"capacity"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowScientificName bool `toml:"show_scientific_name"`
	ShowHistory        bool `toml:"show_history"`
	AltScreen          bool `toml:"alt_screen"`
}

// Debounce returns the quiet interval as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the API timeout, 0 when requests may run forever
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.RequestTimeoutMS) * time.Millisecond
}

// Normalize fills unset values with defaults and rejects values that make no sense
func (c *Config) Normalize() error {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Search.DebounceMS == 0 {
		c.Search.DebounceMS = DefaultDebounceMS
	}
	if c.Search.MinTermLength == 0 {
		c.Search.MinTermLength = DefaultMinTermLength
	}
	if c.Search.PreviewLimit == 0 {
		c.Search.PreviewLimit = DefaultPreviewLimit
	}
	if c.History.Key == "" {
		c.History.Key = DefaultHistoryKey
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = DefaultHistoryCapacity
	}
	if c.History.Backend == "" {
		c.History.Backend = "file"
	}
	if c.History.Path == "" {
		name := "history.json"
		if c.History.Backend == "bolt" {
			name = "history.db"
		}
		c.History.Path = filepath.Join(defaultDir(), name)
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}

	var errs []error
	if c.Search.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("search.debounce_ms must not be negative, got %d", c.Search.DebounceMS))
	}
	if c.Search.MinTermLength < 0 {
		errs = append(errs, fmt.Errorf("search.min_term_length must not be negative, got %d", c.Search.MinTermLength))
	}
	if c.Search.PreviewLimit < 0 {
		errs = append(errs, fmt.Errorf("search.preview_limit must not be negative, got %d", c.Search.PreviewLimit))
	}
	if c.History.Capacity < 0 {
		errs = append(errs, fmt.Errorf("history.capacity must not be negative, got %d", c.History.Capacity))
	}
	if c.History.Backend != "file" && c.History.Backend != "bolt" {
		errs = append(errs, fmt.Errorf("history.backend must be file or bolt, got %q", c.History.Backend))
	}
	if c.API.RequestTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("api.request_timeout_ms must not be negative, got %d", c.API.RequestTimeoutMS))
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user's config directory
func NewConfigService() ConfigService {
	return &configService{
		filePath: filepath.Join(defaultDir(), "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := &configService{bus: bus, filePath: path}
	if path == "" {
		cs.filePath = filepath.Join(defaultDir(), "config.toml")
	}
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		loaded, err := cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			BaseURL: cfg.API.BaseURL,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		UISettings: UISettings{
			ShowScientificName: true,
			ShowHistory:        true,
			AltScreen:          true,
		},
	}
	_ = cfg.Normalize()
	return cfg
}

// defaultDir is where the config and history files live unless configured otherwise
func defaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "herbalsearch")
}
