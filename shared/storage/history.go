// Package storage persists the watch agent's view of previously analyzed
// videos so consecutive runs can report sentiment and engagement deltas.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// WatchRecord is the retained summary of one video's last analysis.
type WatchRecord struct {
	Title          string    `json:"title"`
	LastAnalyzedAt time.Time `json:"last_analyzed_at"`
	CommentCount   int       `json:"comment_count"`
	PositiveShare  float64   `json:"positive_share"`
	EngagementRate float64   `json:"engagement_rate"`
}

// History is a file-backed map of video ID to its last analysis summary.
// Entries older than maxAge are dropped on load and on save.
type History struct {
	filePath string
	records  map[string]WatchRecord
	mu       sync.RWMutex
	maxAge   time.Duration
}

// NewHistory opens or creates the history file.
func NewHistory(filePath string, maxAge time.Duration) (*History, error) {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	history := &History{
		filePath: filePath,
		records:  make(map[string]WatchRecord),
		maxAge:   maxAge,
	}

	if err := history.load(); err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}

	history.prune()

	return history, nil
}

// Previous returns the record from the last time this video was analyzed.
func (h *History) Previous(videoID string) (WatchRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	record, ok := h.records[videoID]
	return record, ok
}

// Update stores the latest analysis summary for a video and persists the
// whole history.
func (h *History) Update(videoID string, record WatchRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records[videoID] = record
	h.prune()
	return h.save()
}

// Len returns the number of tracked videos.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// prune removes entries older than maxAge. Callers hold the write lock, or
// own the history exclusively during construction.
func (h *History) prune() {
	if h.maxAge <= 0 {
		return
	}

	cutoff := time.Now().Add(-h.maxAge)
	for videoID, record := range h.records {
		if record.LastAnalyzedAt.Before(cutoff) {
			delete(h.records, videoID)
		}
	}
}

func (h *History) load() error {
	file, err := os.Open(h.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet, start with empty history
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&h.records); err != nil {
		return fmt.Errorf("failed to decode history data: %w", err)
	}

	return nil
}

func (h *History) save() error {
	file, err := os.Create(h.filePath)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(h.records)
}
