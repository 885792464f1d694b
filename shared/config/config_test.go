package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig points CONFIG_FILE at a temp file and clears the env vars Load
// falls back to, so the host environment cannot leak into a test.
func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	for _, key := range []string{"YOUTUBE_API_KEY", "GEMINI_API_KEY", "EMAIL_USERNAME", "EMAIL_PASSWORD", "LOG_LEVEL", "LOG_FORMAT", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	writeConfig(t, "youtube:\n  api_key: test-key\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeoutSeconds != 10 {
		t.Errorf("Server.ShutdownTimeoutSeconds = %d, want 10", cfg.Server.ShutdownTimeoutSeconds)
	}
	if cfg.YouTube.PageSize != 100 {
		t.Errorf("YouTube.PageSize = %d, want 100", cfg.YouTube.PageSize)
	}
	if cfg.YouTube.RequestsPerSecond != 5 {
		t.Errorf("YouTube.RequestsPerSecond = %g, want 5", cfg.YouTube.RequestsPerSecond)
	}
	if cfg.Sentiment.Engine != "vader" {
		t.Errorf("Sentiment.Engine = %q, want vader", cfg.Sentiment.Engine)
	}
	if cfg.Sentiment.WindowMonths != 6 {
		t.Errorf("Sentiment.WindowMonths = %d, want 6", cfg.Sentiment.WindowMonths)
	}
	if cfg.Sentiment.HighlightCount != 5 {
		t.Errorf("Sentiment.HighlightCount = %d, want 5", cfg.Sentiment.HighlightCount)
	}
	if cfg.Cache.TTLMinutes != 60 {
		t.Errorf("Cache.TTLMinutes = %d, want 60", cfg.Cache.TTLMinutes)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("AI.Model = %q, want gemini-2.5-flash", cfg.AI.Model)
	}
	if cfg.Email.Template != "web/templates/digest_email.html" {
		t.Errorf("Email.Template = %q, want default template path", cfg.Email.Template)
	}
	if cfg.Watcher.Schedule != "0 0 9 * * *" {
		t.Errorf("Watcher.Schedule = %q, want daily 9 AM cron", cfg.Watcher.Schedule)
	}
	if cfg.Watcher.HealthPort != 8081 {
		t.Errorf("Watcher.HealthPort = %d, want 8081", cfg.Watcher.HealthPort)
	}
	if cfg.Watcher.HistoryMaxAgeDays != 90 {
		t.Errorf("Watcher.HistoryMaxAgeDays = %d, want 90", cfg.Watcher.HistoryMaxAgeDays)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %s/%s, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadReadsFile(t *testing.T) {
	writeConfig(t, `server:
  port: 9000
  shutdown_timeout_seconds: 30
youtube:
  api_key: test-key
  page_size: 50
  max_pages: 20
  requests_per_second: 2.5
sentiment:
  engine: lexicon
  window_months: 12
  highlight_count: 3
  min_abs_polarity: 0.2
cache:
  ttl_minutes: 15
watcher:
  schedule: "0 30 7 * * *"
  video_urls:
    - https://www.youtube.com/watch?v=abc123
  history_file: /tmp/history.json
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.YouTube.PageSize != 50 || cfg.YouTube.MaxPages != 20 {
		t.Errorf("YouTube paging = %d/%d, want 50/20", cfg.YouTube.PageSize, cfg.YouTube.MaxPages)
	}
	if cfg.YouTube.RequestsPerSecond != 2.5 {
		t.Errorf("YouTube.RequestsPerSecond = %g, want 2.5", cfg.YouTube.RequestsPerSecond)
	}
	if cfg.Sentiment.Engine != "lexicon" {
		t.Errorf("Sentiment.Engine = %q, want lexicon", cfg.Sentiment.Engine)
	}
	if cfg.Sentiment.MinAbsPolarity != 0.2 {
		t.Errorf("Sentiment.MinAbsPolarity = %g, want 0.2", cfg.Sentiment.MinAbsPolarity)
	}
	if cfg.Cache.TTLMinutes != 15 {
		t.Errorf("Cache.TTLMinutes = %d, want 15", cfg.Cache.TTLMinutes)
	}
	if len(cfg.Watcher.VideoURLs) != 1 {
		t.Errorf("Watcher.VideoURLs length = %d, want 1", len(cfg.Watcher.VideoURLs))
	}
	if cfg.Watcher.HistoryFile != "/tmp/history.json" {
		t.Errorf("Watcher.HistoryFile = %q, want /tmp/history.json", cfg.Watcher.HistoryFile)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	writeConfig(t, "ai:\n  enabled: true\n")
	t.Setenv("YOUTUBE_API_KEY", "env-yt-key")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("EMAIL_USERNAME", "bot@example.com")
	t.Setenv("EMAIL_PASSWORD", "env-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.YouTube.APIKey != "env-yt-key" {
		t.Errorf("YouTube.APIKey = %q, want env value", cfg.YouTube.APIKey)
	}
	if cfg.AI.GeminiAPIKey != "env-gemini-key" {
		t.Errorf("AI.GeminiAPIKey = %q, want env value", cfg.AI.GeminiAPIKey)
	}
	if cfg.Email.Username != "bot@example.com" || cfg.Email.Password != "env-secret" {
		t.Errorf("Email credentials = %s/%s, want env values", cfg.Email.Username, cfg.Email.Password)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from PORT", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %s/%s, want debug/text", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadFileWinsOverEnv(t *testing.T) {
	writeConfig(t, "youtube:\n  api_key: file-key\n")
	t.Setenv("YOUTUBE_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.YouTube.APIKey != "file-key" {
		t.Errorf("YouTube.APIKey = %q, want file value to win", cfg.YouTube.APIKey)
	}
}

func TestLoadInvalidPortEnv(t *testing.T) {
	writeConfig(t, "youtube:\n  api_key: test-key\n")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with bad PORT should fail")
	}
	if !strings.Contains(err.Error(), "invalid PORT") {
		t.Errorf("Load() error = %v, want invalid PORT", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with missing file should fail")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	writeConfig(t, "youtube: [not a mapping")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with malformed YAML should fail")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Load() error = %v, want parse failure", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "Missing API key",
			yaml:    "server:\n  port: 8080\n",
			wantErr: "YouTube API key is required",
		},
		{
			name:    "Page size too large",
			yaml:    "youtube:\n  api_key: k\n  page_size: 200\n",
			wantErr: "page_size must be between 1 and 100",
		},
		{
			name:    "Negative max pages",
			yaml:    "youtube:\n  api_key: k\n  max_pages: -1\n",
			wantErr: "max_pages must not be negative",
		},
		{
			name:    "Unknown sentiment engine",
			yaml:    "youtube:\n  api_key: k\nsentiment:\n  engine: bert\n",
			wantErr: "sentiment.engine must be",
		},
		{
			name:    "Negative window months",
			yaml:    "youtube:\n  api_key: k\nsentiment:\n  window_months: -2\n",
			wantErr: "window_months must be positive",
		},
		{
			name:    "Negative highlight count",
			yaml:    "youtube:\n  api_key: k\nsentiment:\n  highlight_count: -1\n",
			wantErr: "highlight_count must be positive",
		},
		{
			name:    "Polarity floor out of range",
			yaml:    "youtube:\n  api_key: k\nsentiment:\n  min_abs_polarity: 1.5\n",
			wantErr: "min_abs_polarity must be within [0, 1]",
		},
		{
			name:    "AI enabled without key",
			yaml:    "youtube:\n  api_key: k\nai:\n  enabled: true\n",
			wantErr: "Gemini API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.yaml)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail validation")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestEmailConfigured(t *testing.T) {
	complete := EmailConfig{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		Username:   "bot@example.com",
		Password:   "secret",
		FromEmail:  "bot@example.com",
		ToEmails:   []string{"team@example.com"},
	}

	tests := []struct {
		name     string
		mutate   func(*EmailConfig)
		expected bool
	}{
		{"Fully configured", func(e *EmailConfig) {}, true},
		{"Missing server", func(e *EmailConfig) { e.SMTPServer = "" }, false},
		{"Missing username", func(e *EmailConfig) { e.Username = "" }, false},
		{"Missing password", func(e *EmailConfig) { e.Password = "" }, false},
		{"No recipients", func(e *EmailConfig) { e.ToEmails = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := complete
			tt.mutate(&email)
			cfg := &Config{Email: email}

			if got := cfg.EmailConfigured(); got != tt.expected {
				t.Errorf("EmailConfigured() = %v, want %v", got, tt.expected)
			}
		})
	}
}
