package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Cache     CacheConfig     `yaml:"cache"`
	AI        AIConfig        `yaml:"ai"`
	Email     EmailConfig     `yaml:"email"`
	Watcher   WatcherConfig   `yaml:"watcher"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port                   int `yaml:"port" env:"PORT"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

type YouTubeConfig struct {
	APIKey            string  `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	PageSize          int64   `yaml:"page_size"`
	MaxPages          int     `yaml:"max_pages"` // 0 = no cap
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type SentimentConfig struct {
	Engine            string  `yaml:"engine"` // "vader" or "lexicon"
	VaderLexicon      string  `yaml:"vader_lexicon"`
	VaderEmojiLexicon string  `yaml:"vader_emoji_lexicon"`
	WindowMonths      int     `yaml:"window_months"`
	HighlightCount    int     `yaml:"highlight_count"`
	MinAbsPolarity    float64 `yaml:"min_abs_polarity"` // 0 = no highlight filter
}

type CacheConfig struct {
	TTLMinutes              int `yaml:"ttl_minutes"`
	EvictionIntervalMinutes int `yaml:"eviction_interval_minutes"`
}

type AIConfig struct {
	Enabled      bool   `yaml:"enabled"`
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type EmailConfig struct {
	SMTPServer string   `yaml:"smtp_server"`
	SMTPPort   int      `yaml:"smtp_port"`
	Username   string   `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string   `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string   `yaml:"from_email"`
	ToEmails   []string `yaml:"to_emails"`
	Template   string   `yaml:"template"`
}

type WatcherConfig struct {
	Schedule          string   `yaml:"schedule"`
	VideoURLs         []string `yaml:"video_urls"`
	HealthPort        int      `yaml:"health_port"`
	HistoryFile       string   `yaml:"history_file"`
	HistoryMaxAgeDays int      `yaml:"history_max_age_days"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = os.Getenv("LOG_LEVEL")
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = os.Getenv("LOG_FORMAT")
	}
	if cfg.Server.Port == 0 {
		if port := os.Getenv("PORT"); port != "" {
			p, err := strconv.Atoi(port)
			if err != nil {
				return nil, fmt.Errorf("invalid PORT value %q: %w", port, err)
			}
			cfg.Server.Port = p
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}
	if c.YouTube.PageSize == 0 {
		c.YouTube.PageSize = 100
	}
	if c.YouTube.RequestsPerSecond == 0 {
		c.YouTube.RequestsPerSecond = 5
	}
	if c.Sentiment.Engine == "" {
		c.Sentiment.Engine = "vader"
	}
	if c.Sentiment.VaderLexicon == "" {
		c.Sentiment.VaderLexicon = "data/vader_lexicon.txt"
	}
	if c.Sentiment.VaderEmojiLexicon == "" {
		c.Sentiment.VaderEmojiLexicon = "data/emoji_utf8_lexicon.txt"
	}
	if c.Sentiment.WindowMonths == 0 {
		c.Sentiment.WindowMonths = 6
	}
	if c.Sentiment.HighlightCount == 0 {
		c.Sentiment.HighlightCount = 5
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 60
	}
	if c.Cache.EvictionIntervalMinutes == 0 {
		c.Cache.EvictionIntervalMinutes = 10
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Email.Template == "" {
		c.Email.Template = "web/templates/digest_email.html"
	}
	if c.Watcher.Schedule == "" {
		c.Watcher.Schedule = "0 0 9 * * *" // Daily at 9 AM, seconds field included
	}
	if c.Watcher.HealthPort == 0 {
		c.Watcher.HealthPort = 8081
	}
	if c.Watcher.HistoryFile == "" {
		c.Watcher.HistoryFile = "watch_history.json"
	}
	if c.Watcher.HistoryMaxAgeDays == 0 {
		c.Watcher.HistoryMaxAgeDays = 90
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > 100 {
		return fmt.Errorf("youtube.page_size must be between 1 and 100, got %d", c.YouTube.PageSize)
	}
	if c.YouTube.MaxPages < 0 {
		return fmt.Errorf("youtube.max_pages must not be negative, got %d", c.YouTube.MaxPages)
	}
	if c.Sentiment.Engine != "vader" && c.Sentiment.Engine != "lexicon" {
		return fmt.Errorf("sentiment.engine must be \"vader\" or \"lexicon\", got %q", c.Sentiment.Engine)
	}
	if c.Sentiment.WindowMonths < 1 {
		return fmt.Errorf("sentiment.window_months must be positive, got %d", c.Sentiment.WindowMonths)
	}
	if c.Sentiment.HighlightCount < 1 {
		return fmt.Errorf("sentiment.highlight_count must be positive, got %d", c.Sentiment.HighlightCount)
	}
	if c.Sentiment.MinAbsPolarity < 0 || c.Sentiment.MinAbsPolarity > 1 {
		return fmt.Errorf("sentiment.min_abs_polarity must be within [0, 1], got %g", c.Sentiment.MinAbsPolarity)
	}
	if c.AI.Enabled && c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required when ai.enabled is set (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	return nil
}

// EmailConfigured reports whether the digest sender has everything it needs.
func (c *Config) EmailConfigured() bool {
	return c.Email.SMTPServer != "" && c.Email.Username != "" && c.Email.Password != "" && len(c.Email.ToEmails) > 0
}
