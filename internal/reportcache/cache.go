// Package reportcache holds finished analysis reports in memory so the
// report page, the JSON API and the CSV export can serve the same run
// without re-fetching anything. Entries expire after a TTL.
package reportcache

import (
	"log/slog"
	"sync"
	"time"

	"tubepulse/internal/metrics"
	"tubepulse/internal/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type cacheEntry struct {
	report    *models.Report
	expiresAt time.Time
}

// New creates a report cache with the given TTL.
func New(ttl time.Duration, clock clockwork.Clock) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Put stores a finished report and returns its ID. A report without an ID is
// assigned a fresh one.
func (c *Cache) Put(report *models.Report) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	c.entries[report.ID] = &cacheEntry{
		report:    report,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	return report.ID
}

// Get retrieves a cached report if present and not expired. An expired entry
// counts as a miss even before the eviction timer reaps it.
func (c *Cache) Get(id string) (*models.Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		metrics.ReportCacheMisses.Inc()
		return nil, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		// Not deleted here (read lock only); eviction happens periodically.
		metrics.ReportCacheMisses.Inc()
		return nil, false
	}

	metrics.ReportCacheHits.Inc()
	return entry.report, true
}

// Invalidate explicitly removes a report from the cache.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Size returns the current number of entries in the cache, expired included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EvictExpired removes all expired entries and returns the count evicted.
// This keeps the cache from growing without bound.
func (c *Cache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0

	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
			evicted++
		}
	}

	return evicted
}

// StartEvictionTimer starts a background goroutine that periodically evicts
// expired entries. The returned stop function cleans up the goroutine.
func (c *Cache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-ticker.Chan():
				evicted := c.EvictExpired()
				if evicted > 0 {
					slog.Debug("Evicted expired reports",
						"count", evicted,
						"remaining", c.Size(),
					)
					metrics.ReportCacheEvictions.Add(float64(evicted))
				}
				metrics.ReportCacheSize.Set(float64(c.Size()))

			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
