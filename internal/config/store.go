package config

import (
	"os"
	"sync"
	"time"
)

// Preference is the broadcast unit: the active zone/district/theme triple.
// It is always replaced as a whole, never partially updated.
type Preference struct {
	Zone     string
	District string
	Theme    string
}

// PreferenceOf extracts the broadcastable subset of a Config, applying
// defaults for unset zone/district.
func PreferenceOf(c *Config) Preference {
	return Preference{
		Zone:     c.ZoneOrDefault(),
		District: c.DistrictOrDefault(),
		Theme:    c.Theme,
	}
}

// Store is a read-mostly, broadcast-on-change preference value. Dependents
// subscribe to be re-run whenever the active zone/district changes (for
// example, solatku watch recomputes the next prayer on every change).
type Store struct {
	mu     sync.RWMutex
	cur    Preference
	subs   map[chan Preference]struct{}
	closed bool
}

// NewStore creates a store holding the given initial preference.
func NewStore(initial Preference) *Store {
	return &Store{
		cur:  initial,
		subs: make(map[chan Preference]struct{}),
	}
}

// Current returns the active preference.
func (s *Store) Current() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Set replaces the active preference atomically and notifies all
// subscribers. Setting an unchanged value is a no-op.
func (s *Store) Set(p Preference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || p == s.cur {
		return
	}
	s.cur = p

	for ch := range s.subs {
		// Latest-wins: drop a stale pending value rather than block.
		select {
		case ch <- p:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- p:
			default:
			}
		}
	}
}

// Subscribe registers a new subscriber channel. Each subscriber receives
// at most the latest value; slow consumers never block Set.
func (s *Store) Subscribe() <-chan Preference {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Preference, 1)
	if !s.closed {
		s.subs[ch] = struct{}{}
	} else {
		close(ch)
	}
	return ch
}

// Close ends broadcasting and closes all subscriber channels.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// Watch polls the config file at path and pushes a new preference into the
// store whenever the file changes on disk. It returns when stop closes.
// This is what lets `solatku config set zone ...` in another terminal
// re-trigger a running watch session.
func (s *Store) Watch(path string, interval time.Duration, stop <-chan struct{}) {
	var lastMod time.Time
	if fi, err := os.Stat(path); err == nil {
		lastMod = fi.ModTime()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		fi, err := os.Stat(path)
		if err != nil || !fi.ModTime().After(lastMod) {
			continue
		}
		lastMod = fi.ModTime()

		cfg, err := LoadFrom(path)
		if err != nil {
			continue
		}
		s.Set(PreferenceOf(cfg))
	}
}
