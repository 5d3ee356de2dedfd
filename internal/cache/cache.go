// Package cache provides file-based caching of monthly prayer schedules,
// so repeated invocations within the same month avoid the network.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/solatku/solatku/internal/api"
)

const scheduleFile = "solat_%s_%04d-%02d.json"

// Cache stores monthly schedules under a directory, one file per
// zone/year/month combination.
type Cache struct {
	dir string
}

// scheduleEntry wraps a cached schedule with the parameters it was
// fetched for, so a stale or mismatched file is never served.
type scheduleEntry struct {
	Zone     string              `json:"zone"`
	Year     int                 `json:"year"`
	Month    int                 `json:"month"`
	CachedAt time.Time           `json:"cached_at"`
	Schedule api.MonthlySchedule `json:"schedule"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/solatku/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "solatku")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

func (c *Cache) schedulePath(zone string, year int, month time.Month) string {
	zone = strings.ToUpper(zone)
	return filepath.Join(c.dir, fmt.Sprintf(scheduleFile, zone, year, int(month)))
}

// LoadSchedule attempts to read a cached schedule for the given parameters.
// Returns nil if the cache is missing, unreadable, or for different
// parameters than requested.
func (c *Cache) LoadSchedule(zone string, year int, month time.Month) *api.MonthlySchedule {
	data, err := os.ReadFile(c.schedulePath(zone, year, month))
	if err != nil {
		return nil
	}

	var entry scheduleEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if !strings.EqualFold(entry.Zone, zone) || entry.Year != year || entry.Month != int(month) {
		return nil
	}

	if err := entry.Schedule.Validate(); err != nil {
		return nil
	}

	return &entry.Schedule
}

// SaveSchedule writes a schedule to the cache.
func (c *Cache) SaveSchedule(sched *api.MonthlySchedule, zone string, year int, month time.Month) error {
	entry := scheduleEntry{
		Zone:     strings.ToUpper(zone),
		Year:     year,
		Month:    int(month),
		CachedAt: time.Now(),
		Schedule: *sched,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(c.schedulePath(zone, year, month), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}
