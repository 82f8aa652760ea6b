package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Generation defaults
	Model   string `yaml:"model"`
	Size    string `yaml:"size"`
	Quality string `yaml:"quality"`
	Style   string `yaml:"style"`

	// Batch behavior
	MaxWorkers     int `yaml:"max_workers"`
	RequestTimeout int `yaml:"request_timeout_seconds"`

	// Gallery
	GalleryTitle    string `yaml:"gallery_title"`
	GallerySubtitle string `yaml:"gallery_subtitle"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`

	// Workflow
	PromptsFile       string `yaml:"prompts_file"`
	OpenAfterGenerate bool   `yaml:"open_after_generate"`
	KeepRuns          int    `yaml:"keep_runs"`
	Browser           string `yaml:"browser"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Model:             "dall-e-3",
		Size:              "1024x1024",
		Quality:           "hd",
		Style:             "vivid",
		MaxWorkers:        4,
		RequestTimeout:    300,
		GalleryTitle:      "Logo Exploration",
		GallerySubtitle:   "Generated concepts for review.",
		ColorTheme:        "auto",
		PromptsFile:       "prompts.json",
		OpenAfterGenerate: false,
		KeepRuns:          0,
		Browser:           "",
		WatchDebounceMS:   500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.Model == "" {
		cfg.Model = "dall-e-3"
	}
	if cfg.Size == "" {
		cfg.Size = "1024x1024"
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 300
	}
	if cfg.PromptsFile == "" {
		cfg.PromptsFile = "prompts.json"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Timeout returns the per-request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// WatchDebounce returns the watch debounce interval as a duration
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// APIKey loads the OpenAI API key. A .env file at envPath is merged into
// the environment first so keys do not have to be exported manually.
func APIKey(envPath string) (string, error) {
	// Missing .env is fine, the key may already be exported
	_ = godotenv.Load(envPath)

	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is required (set it in the environment or in %s)", envPath)
	}
	return key, nil
}
